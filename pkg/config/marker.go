package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// activeProfileMarker is the on-disk form of profile.active.toml
type activeProfileMarker struct {
	Name string `toml:"name"`
}

// ReadActiveProfile returns the profile named by the marker file.
func ReadActiveProfile(fs types.FS, markerPath string) (string, error) {
	data, err := fs.ReadFile(markerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrConfig, "no active profile; run 'configma switch-profile <name>'").
				WithPath(markerPath)
		}
		return "", errors.Wrap(err, errors.ErrConfig, "cannot read active profile marker").
			WithPath(markerPath)
	}

	var marker activeProfileMarker
	if err := toml.Unmarshal(data, &marker); err != nil {
		return "", errors.Wrap(err, errors.ErrConfig, "malformed active profile marker").
			WithPath(markerPath)
	}
	if marker.Name == "" {
		return "", errors.New(errors.ErrConfig, "active profile marker has no name").
			WithPath(markerPath)
	}

	return marker.Name, nil
}

// WriteActiveProfile records name as the active profile. The marker is
// written to a temporary sibling and renamed into place.
func WriteActiveProfile(fs types.FS, markerPath, name string) error {
	data, err := toml.Marshal(activeProfileMarker{Name: name})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode active profile marker")
	}

	dir := filepath.Dir(markerPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create config directory").WithPath(dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(markerPath)+"."+uuid.NewString()[:8])
	if err := fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write active profile marker").WithPath(tmp)
	}
	if err := fs.Rename(tmp, markerPath); err != nil {
		_ = fs.Remove(tmp)
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write active profile marker").WithPath(markerPath)
	}

	return nil
}
