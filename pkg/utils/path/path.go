package path

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tilde = "~" + string(filepath.Separator)

// return absolute representation of path, with expanding "~" to user's home directory.
//
// args:
//     - pathstring: path to be resolved
// return:
//     - string: resolved filepath
//     - error
func Resolve(pathstring string) (string, error) {
	if strings.HasPrefix(pathstring, tilde) {
		homedir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		pathstring = filepath.Join(homedir, pathstring[2:])
	}
	return filepath.Abs(pathstring)
}

// Resolve path, and follow symlinks when the path exists.
//
// Missing path is not an error; it is returned as resolved by `Resolve`.
func RealPath(pathstring string) (string, error) {
	abs, err := Resolve(pathstring)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, nil
	} else if err != nil {
		return "", err
	}
	return real, nil
}

// IsPlainName reports whether name can be used as a file name directly under a folder.
//
// It rejects empty names, "." and "..", and names containing path separators or NUL.
func IsPlainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
