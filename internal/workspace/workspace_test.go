package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	m := NewManager(filepath.Join(root, "uploads"), filepath.Join(root, "nested", "extracted_images"), utils.NewNopLogger())
	m.now = func() time.Time { return time.Date(2024, 11, 5, 17, 30, 9, 0, time.UTC) }
	return m, root
}

func TestEnsureDirectoriesIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.EnsureDirectories())
	require.NoError(t, m.EnsureDirectories())

	assert.DirExists(t, m.UploadDir())
	assert.DirExists(t, m.ImageDir())
}

func TestEnsureDirectoriesFailsOnFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	m := NewManager(filepath.Join(blocker, "uploads"), filepath.Join(root, "images"), utils.NewNopLogger())
	err := m.EnsureDirectories()
	assert.ErrorIs(t, err, utils.ErrFilesystem)
}

func TestNewDocumentPaths(t *testing.T) {
	m, _ := newTestManager(t)

	doc := m.NewDocument("Happy Hour Menu.pdf")

	assert.True(t, strings.HasPrefix(doc.ID, "20241105_173009_"), doc.ID)
	assert.Equal(t, doc.ID+"_Happy_Hour_Menu.pdf", doc.Filename)
	assert.Equal(t, filepath.Join(m.UploadDir(), doc.Filename), doc.UploadPath)
	assert.Equal(t, filepath.Join(m.ImageDir(), doc.ID+"_Happy_Hour_Menu"), doc.ImageDir)

	other := m.NewDocument("Happy Hour Menu.pdf")
	assert.NotEqual(t, doc.UploadPath, other.UploadPath)
}

func TestSaveUploadRefusesOverwrite(t *testing.T) {
	m, _ := newTestManager(t)
	doc := m.NewDocument("menu.pdf")

	require.NoError(t, m.SaveUpload(doc, strings.NewReader("%PDF-1.4")))
	data, err := os.ReadFile(doc.UploadPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	err = m.SaveUpload(doc, strings.NewReader("again"))
	assert.ErrorIs(t, err, utils.ErrFilesystem)
}

func TestCleanupRemovesArtifactsAndEmptyParents(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.EnsureDirectories())

	doc := m.NewDocument("menu.pdf")
	require.NoError(t, m.SaveUpload(doc, strings.NewReader("%PDF")))
	require.NoError(t, os.MkdirAll(doc.ImageDir, 0o755))
	for _, name := range []string{"page_1.png", "page_2.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(doc.ImageDir, name), []byte("png"), 0o644))
	}

	require.NoError(t, m.Cleanup(doc))

	assert.NoFileExists(t, doc.UploadPath)
	assert.NoDirExists(t, doc.ImageDir)
	assert.NoDirExists(t, m.UploadDir())
	assert.NoDirExists(t, m.ImageDir())
}

func TestCleanupKeepsBusyParents(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.EnsureDirectories())

	first := m.NewDocument("a.pdf")
	second := m.NewDocument("b.pdf")
	require.NoError(t, m.SaveUpload(first, strings.NewReader("a")))
	require.NoError(t, m.SaveUpload(second, strings.NewReader("b")))

	require.NoError(t, m.Cleanup(first))

	assert.NoFileExists(t, first.UploadPath)
	assert.FileExists(t, second.UploadPath)
	assert.DirExists(t, m.UploadDir())
}

func TestCleanupToleratesMissingArtifacts(t *testing.T) {
	m, _ := newTestManager(t)
	doc := m.NewDocument("never-saved.pdf")

	assert.NoError(t, m.Cleanup(doc))
}

func TestCleanupReportsFailures(t *testing.T) {
	m, _ := newTestManager(t)
	doc := m.NewDocument("menu.pdf")

	// A nested directory cannot be removed with a plain remove.
	require.NoError(t, os.MkdirAll(filepath.Join(doc.ImageDir, "sub", "deeper"), 0o755))

	err := m.Cleanup(doc)
	assert.Error(t, err)
	assert.DirExists(t, doc.ImageDir)
}

func TestSafeFilename(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"menu.pdf", "menu.pdf"},
		{"Café Menü.PDF", "Cafe_Menu.PDF"},
		{"../../etc/passwd.pdf", "passwd.pdf"},
		{`C:\Users\bar\menu.pdf`, "menu.pdf"},
		{".hidden.pdf", "hidden.pdf"},
		{"菜单.pdf", "__.pdf"},
		{"", "upload.pdf"},
		{"...", "upload.pdf"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, SafeFilename(tc.in), "SafeFilename(%q)", tc.in)
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "20240101_000000_ab_menu", Stem("/tmp/uploads/20240101_000000_ab_menu.pdf"))
	assert.Equal(t, "menu.pdf", Stem("menu.pdf.txt"))
	assert.Equal(t, "noext", Stem("noext"))
}
