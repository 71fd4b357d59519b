package services

import (
	"encoding/json"
	"io/fs"
)

// FSTableLoader reads per-language JSON documents ("pl.json", "en.json")
// from a file system, typically the embedded assets.
type FSTableLoader struct {
	fsys fs.FS
}

func NewFSTableLoader(fsys fs.FS) *FSTableLoader {
	return &FSTableLoader{fsys: fsys}
}

func (l *FSTableLoader) Load(lang string) (map[string]any, error) {
	b, err := fs.ReadFile(l.fsys, lang+".json")
	if err != nil {
		return nil, err
	}
	var table map[string]any
	if err := json.Unmarshal(b, &table); err != nil {
		return nil, err
	}
	return table, nil
}

var _ TableLoader = (*FSTableLoader)(nil)
