package utils

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// AllowedFile reports whether filename has a dot and its lowercased suffix
// after the last dot is in allowed. Content is never inspected.
func AllowedFile(filename string, allowed map[string]bool) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowed[strings.ToLower(filename[idx+1:])]
}

// IsDirEmpty reports whether dir has no entries.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// GenerateID returns a short random identifier.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
