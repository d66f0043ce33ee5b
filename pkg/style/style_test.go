package style

import (
	"testing"

	"github.com/arthur-debert/configma/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestMarkupRender(t *testing.T) {
	out := Render("switched to [profile]work[/profile]")
	assert.Contains(t, out, "work")
	assert.NotContains(t, out, "[profile]")

	out = Render("[wrong-link]x[/wrong-link] and [bold]y[/bold]")
	assert.NotContains(t, out, "[wrong-link]")
	assert.NotContains(t, out, "[/bold]")
}

func TestOutcomeText(t *testing.T) {
	assert.Equal(t, "linked", OutcomeText(types.OutcomeLinked, false))
	assert.Equal(t, "would link", OutcomeText(types.OutcomeLinked, true))
	assert.Equal(t, "mystery", OutcomeText(types.Outcome("mystery"), false))

	for outcome := range OutcomeVerbs {
		assert.NotEmpty(t, OutcomeText(outcome, false))
		assert.NotEmpty(t, OutcomeText(outcome, true))
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Count"},
		[][]string{{"work", "3"}, {"home"}},
		[]ColumnAlignment{AlignLeft, AlignRight},
	)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "╭")

	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestMarkupStrip(t *testing.T) {
	assert.Equal(t, "Switched from work to home at /x",
		Strip("Switched from [profile]work[/profile] to [profile]home[/profile] at [path]/x[/path]"))
	assert.Equal(t, "[unknown]kept[/unknown]", Strip("[unknown]kept[/unknown]"))
}

func TestMarkupNestingAndUnclosedTags(t *testing.T) {
	assert.Equal(t, "moved /a to backup", Strip("moved [path][bold]/a[/bold][/path] to backup"))
	assert.Equal(t, "[path]open only", Strip("[path]open only"))
	assert.Equal(t, "[/path] stray closer", Strip("[/path] stray closer"))
	assert.Equal(t, "conflict", Strip("[occupied]conflict[/occupied]"))
}

func TestLinkStateStyle(t *testing.T) {
	assert.True(t, LinkStateStyle(types.StateOccupied).GetBold())
	assert.False(t, LinkStateStyle(types.StateLinked).GetBold())
	assert.Equal(t, MutedStyle, LinkStateStyle(types.LinkState("unknown")))
}
