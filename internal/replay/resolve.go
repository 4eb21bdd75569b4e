package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingInput is returned when no log file exists for an argument.
var ErrMissingInput = errors.New("log file not found")

// MissingInputError carries the path that was tried last.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingInput, e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// zstdSuffix marks compressed logs.
const zstdSuffix = ".zst"

// ResolveLogPath turns the log argument into a file path. An existing
// regular file is used as is; anything else is taken as a submission id
// under submissionsDir. The compressed variant is tried when the plain
// log is missing.
func ResolveLogPath(arg, submissionsDir, logName string) (string, error) {
	if arg == "" {
		return "", &MissingInputError{Path: arg}
	}
	if isRegularFile(arg) {
		return arg, nil
	}

	candidate := filepath.Join(submissionsDir, arg, logName)
	if isRegularFile(candidate) {
		return candidate, nil
	}
	if isRegularFile(candidate + zstdSuffix) {
		return candidate + zstdSuffix, nil
	}
	return "", &MissingInputError{Path: candidate}
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
