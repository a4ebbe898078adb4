package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	allowed := map[string]bool{"pdf": true}

	testCases := []struct {
		filename string
		expected bool
	}{
		{"menu.pdf", true},
		{"Menu.PDF", true},
		{"happy.hour.Pdf", true},
		{"menu.pdf.txt", false},
		{"noext", false},
		{"", false},
		{"menu.", false},
		{".pdf", true},
		{"menu.docx", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, AllowedFile(tc.filename, allowed), "AllowedFile(%q)", tc.filename)
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirEmpty(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0o644))
	empty, err = IsDirEmpty(dir)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = IsDirEmpty(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestAppErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", NewDecodeError("Failed to open PDF", cause))

	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUpstream)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, "Failed to open PDF: boom", appErr.Error())

	assert.Equal(t, http.StatusBadRequest, NewBadRequestError("No file provided").StatusCode)
	assert.Equal(t, "No file provided", NewBadRequestError("No file provided").Error())
}
