package logstore

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	xe "github.com/opst/confusionflow/pkg/errors"
)

// RebuildIndex scans all files in the folder except index.json,
// and overwrites index.json with a JSON array of their contents.
//
// Entries are ordered as the directory listing (by file name).
// This is not incremental: the whole folder is read for each call.
//
// When a file is not a valid JSON, it fails with ErrCorruptIndexEntry
// and the previous index.json is left untouched.
func (s *Store) RebuildIndex(f Folder) error {
	dir, err := s.Folder(f)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return xe.Because(xe.ErrInvalidLogDir, err, "can not list %s", dir)
	}

	index := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if e.Name() == IndexFile || e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return xe.Wrap(err)
		}
		buf := new(bytes.Buffer)
		if err := json.Compact(buf, content); err != nil {
			return xe.Because(xe.ErrCorruptIndexEntry, err, "%s is not a valid JSON", path)
		}
		index = append(index, json.RawMessage(buf.Bytes()))
	}

	if _, err := s.WriteJSON(f, IndexFile, index); err != nil {
		return err
	}
	s.logger.Debug().Str("folder", string(f)).Int("entries", len(index)).Msg("index rebuilt")
	return nil
}

// RebuildIndexes rebuilds indexes of runs and datasets.
func (s *Store) RebuildIndexes() error {
	for _, f := range []Folder{Runs, Datasets} {
		if err := s.RebuildIndex(f); err != nil {
			return err
		}
	}
	return nil
}
