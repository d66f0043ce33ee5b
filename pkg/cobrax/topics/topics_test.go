package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"profiles.md":      {Data: []byte("# Profiles\n\nA profile is a top-level directory.")},
		"option-force.txt": {Data: []byte("Force moves conflicts to a backup.")},
		"nested/stubs.txt": {Data: []byte("Stub directories are linked whole.")},
		"notes.json":       {Data: []byte("{}")},
		"config.txxt":      {Data: []byte("Configuration Guide")},
	}
}

func TestLoad(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		m, err := Load(testFS(), Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"option-force", "profiles", "stubs"}, m.Names())

		topic, ok := m.Get("profiles")
		require.True(t, ok)
		assert.Equal(t, ".md", topic.Ext)
		assert.Contains(t, topic.Content, "top-level directory")

		_, ok = m.Get("notes")
		assert.False(t, ok)
		_, ok = m.Get("config")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		m, err := Load(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"config"}, m.Names())
	})
}

func TestGetFlagStyle(t *testing.T) {
	m, err := Load(testFS(), Options{})
	require.NoError(t, err)

	for _, name := range []string{"--force", "-force", "force", "option-force"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# x", plain.Render("# x", ".md"))

	glam := NewGlamourRenderer(false)
	assert.Equal(t, "plain text", glam.Render("plain text", ".txt"))
	out := glam.Render("# Profiles\n\nA profile is a directory.", ".md")
	assert.Contains(t, out, "A profile is a directory.")
}

func newTestRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := &cobra.Command{Use: "configma"}
	root.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Sync things",
		Run:   func(cmd *cobra.Command, args []string) {},
	})

	m, err := Load(testFS(), Options{})
	require.NoError(t, err)
	Install(root, m)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestInstallHelpTopics(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "General topics:\n  profiles\n  stubs\n")
	assert.Contains(t, out.String(), "Option topics:\n  --force\n")
	assert.Contains(t, out.String(), "configma help <topic>")
}

func TestInstallHelpTopic(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"help", "stubs"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Stub directories are linked whole.", out.String())
}

func TestInstallHelpCommandFallback(t *testing.T) {
	root, out := newTestRoot(t)
	root.SetArgs([]string{"help", "sync"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Sync things")
}
