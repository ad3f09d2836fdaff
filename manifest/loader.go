package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/tidwall/jsonc"

	"github.com/tie/claunch/manifest/jsonspec"
	"github.com/tie/claunch/models"
)

var ErrMissingID = errors.New("manifest has no id")

// Loader loads a single version manifest.
type Loader interface {
	Load(path string) (models.Version, error)
}

// FileLoader reads manifests from a filesystem. Comments and trailing
// commas are accepted so hand edited loader profiles still parse.
type FileLoader struct {
	Files billy.Filesystem
	Log   models.Sink
}

func (l *FileLoader) Load(path string) (models.Version, error) {
	data, err := l.read(path)
	if err != nil {
		return models.Version{}, err
	}
	var v jsonspec.Version
	if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
		return models.Version{}, fmt.Errorf("decode %q: %w", path, err)
	}
	if v.ID == "" {
		return models.Version{}, fmt.Errorf("decode %q: %w", path, ErrMissingID)
	}
	return v.Model(), nil
}

func (l *FileLoader) read(path string) ([]byte, error) {
	f, err := l.Files.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err := f.Close()
		if err != nil {
			l.log().Warnf("close %q: %+v", path, err)
		}
	}()
	return io.ReadAll(f)
}

func (l *FileLoader) log() models.Sink {
	if l.Log == nil {
		return models.Discard
	}
	return l.Log
}
