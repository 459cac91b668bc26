// Package logstore implements the on-disk layout of ConfusionFlow logs.
//
//	logdir/
//	  datasets/{datasetId}.json, datasets/index.json
//	  foldlogs/{foldlogId}.json
//	  foldlogdata/{foldlogId}_data.json
//	  runs/{runId}.json, runs/index.json
//	  views/
//
// Files are rewritten as whole, without atomic rename.
// A reader racing with a writer may see a torn or missing file.
package logstore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	xe "github.com/opst/confusionflow/pkg/errors"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
	"github.com/rs/zerolog"
)

// Folder is a subdirectory of logdir.
type Folder string

const (
	Datasets    Folder = "datasets"
	FoldLogData Folder = "foldlogdata"
	FoldLogs    Folder = "foldlogs"
	Runs        Folder = "runs"
	Views       Folder = "views"
)

// Folders which are created in a new logdir, in creation order.
var Layout = []Folder{Datasets, FoldLogData, FoldLogs, Runs, Views}

const IndexFile = "index.json"

const (
	dirMode  = fs.FileMode(0o755)
	fileMode = fs.FileMode(0o644)
)

type Store struct {
	root   string
	logger zerolog.Logger
}

type Option func(*Store) *Store

// WithLogger sets logger for debug events of Store.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) *Store {
		s.logger = logger
		return s
	}
}

func newStore(root string, opts ...Option) *Store {
	s := &Store{root: root, logger: zerolog.Nop()}
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

// Create prepares logdir and returns Store on it.
//
// When logdir does not exist, it is created with all folders in Layout.
// Otherwise, logdir is used as it is; its folders are neither verified nor repaired.
func Create(logdir string, opts ...Option) (*Store, error) {
	root, err := kpath.RealPath(logdir)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if _, err := os.Stat(root); err == nil {
		return newStore(root, opts...), nil
	} else if !os.IsNotExist(err) {
		return nil, xe.Because(xe.ErrInvalidLogDir, err, "can not stat %s", root)
	}

	if err := os.MkdirAll(root, dirMode); err != nil {
		return nil, xe.Because(xe.ErrInvalidLogDir, err, "can not create %s", root)
	}
	for _, f := range Layout {
		if err := os.Mkdir(filepath.Join(root, string(f)), dirMode); err != nil {
			return nil, xe.Because(xe.ErrInvalidLogDir, err, "can not create %s", f)
		}
	}
	if root, err = kpath.RealPath(root); err != nil {
		return nil, xe.Wrap(err)
	}
	s := newStore(root, opts...)
	s.logger.Debug().Str("logdir", root).Msg("logdir created")
	return s, nil
}

// Open returns Store on existing logdir.
//
// It fails with ErrInvalidLogDir when logdir is missing or not a directory.
func Open(logdir string, opts ...Option) (*Store, error) {
	root, err := CheckFolderpath(logdir)
	if err != nil {
		return nil, err
	}
	return newStore(root, opts...), nil
}

// CheckFolderpath resolves path and checks it is a directory.
func CheckFolderpath(path string) (string, error) {
	real, err := kpath.RealPath(path)
	if err != nil {
		return "", xe.Because(xe.ErrInvalidLogDir, err, "can not resolve %s", path)
	}
	fi, err := os.Stat(real)
	if err != nil {
		return "", xe.Because(xe.ErrInvalidLogDir, err, "%s is not a path to a valid folder", real)
	}
	if !fi.IsDir() {
		return "", xe.Wrapf(xe.ErrInvalidLogDir, "%s is not a path to a valid folder", real)
	}
	return real, nil
}

func (s *Store) Root() string {
	return s.root
}

// Path returns where the file `name` in the folder is. Existence is not checked.
func (s *Store) Path(f Folder, name string) string {
	return filepath.Join(s.root, string(f), name)
}

// Folder returns path to the folder, checking it is a directory.
func (s *Store) Folder(f Folder) (string, error) {
	return CheckFolderpath(filepath.Join(s.root, string(f)))
}

// WriteJSON encodes v as JSON, and writes it into the file `name` in the folder.
//
// The folder should exist already. Otherwise, it fails with ErrInvalidLogDir.
//
// # Returns
//
// - string: path to the written file
//
// - error
func (s *Store) WriteJSON(f Folder, name string, v any) (string, error) {
	if !kpath.IsPlainName(name) {
		return "", xe.New("invalid file name: " + name)
	}
	dir, err := s.Folder(f)
	if err != nil {
		return "", err
	}
	content, err := json.Marshal(v)
	if err != nil {
		return "", xe.WrapWithNote("can not encode "+name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, fileMode); err != nil {
		return "", xe.Wrap(err)
	}
	s.logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("written")
	return path, nil
}

// ReadJSON reads the file `name` in the folder, and decodes it into v.
func (s *Store) ReadJSON(f Folder, name string, v any) error {
	if !kpath.IsPlainName(name) {
		return xe.Wrap(fs.ErrNotExist)
	}
	content, err := os.ReadFile(s.Path(f, name))
	if err != nil {
		return xe.Wrap(err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return xe.WrapWithNote("can not decode "+name, err)
	}
	return nil
}
