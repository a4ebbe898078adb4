package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

const timestampLayout = "20060102_150405"

// Document is the set of on-disk artifacts owned by one upload.
type Document struct {
	ID         string
	Filename   string
	UploadPath string
	ImageDir   string
}

// Manager owns the upload and image staging directories.
type Manager struct {
	uploadDir string
	imageDir  string
	logger    *utils.Logger
	now       func() time.Time
}

func NewManager(uploadDir, imageDir string, logger *utils.Logger) *Manager {
	return &Manager{
		uploadDir: uploadDir,
		imageDir:  imageDir,
		logger:    logger,
		now:       time.Now,
	}
}

func (m *Manager) UploadDir() string { return m.uploadDir }

func (m *Manager) ImageDir() string { return m.imageDir }

// EnsureDirectories creates both staging directories. Safe to call repeatedly.
func (m *Manager) EnsureDirectories() error {
	for _, dir := range []string{m.uploadDir, m.imageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return utils.NewFilesystemError(fmt.Sprintf("Failed to create directory %s", dir), err)
		}
	}
	return nil
}

// NewDocument derives the staged paths for an uploaded file. The ID is a
// second-resolution timestamp plus a random token, so two uploads of the
// same file in the same second do not share paths.
func (m *Manager) NewDocument(filename string) *Document {
	id := fmt.Sprintf("%s_%s", m.now().Format(timestampLayout), utils.GenerateID())
	staged := id + "_" + SafeFilename(filename)

	return &Document{
		ID:         id,
		Filename:   staged,
		UploadPath: filepath.Join(m.uploadDir, staged),
		ImageDir:   filepath.Join(m.imageDir, Stem(staged)),
	}
}

// SaveUpload writes r to the document's upload path. The file must not
// already exist.
func (m *Manager) SaveUpload(doc *Document, r io.Reader) error {
	// A concurrent cleanup may have removed an empty staging dir.
	if err := os.MkdirAll(filepath.Dir(doc.UploadPath), 0o755); err != nil {
		return utils.NewFilesystemError("Failed to create upload directory", err)
	}

	f, err := os.OpenFile(doc.UploadPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return utils.NewFilesystemError("Failed to create upload file", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return utils.NewFilesystemError("Failed to write upload file", err)
	}

	if err := f.Close(); err != nil {
		return utils.NewFilesystemError("Failed to write upload file", err)
	}

	return nil
}

// Cleanup removes the staged upload, every file in the document's image
// directory and the directory itself, then the staging directories if they
// are left empty. It never stops at the first failure; the returned error
// joins everything that could not be removed.
func (m *Manager) Cleanup(doc *Document) error {
	var errs []error

	if err := os.Remove(doc.UploadPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		errs = append(errs, err)
	}

	entries, err := os.ReadDir(doc.ImageDir)
	switch {
	case err == nil:
		for _, entry := range entries {
			if err := os.Remove(filepath.Join(doc.ImageDir, entry.Name())); err != nil {
				errs = append(errs, err)
			}
		}
		if err := os.Remove(doc.ImageDir); err != nil {
			errs = append(errs, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		errs = append(errs, err)
	}

	m.removeIfEmpty(m.uploadDir)
	m.removeIfEmpty(m.imageDir)

	if err := errors.Join(errs...); err != nil {
		m.logger.Warn("Cleanup incomplete", "document_id", doc.ID, "error", err)
		return err
	}

	m.logger.Debug("Cleaned up document artifacts", "document_id", doc.ID)
	return nil
}

// removeIfEmpty is racy against concurrent uploads by nature; a failed
// remove just means someone else is using the directory.
func (m *Manager) removeIfEmpty(dir string) {
	empty, err := utils.IsDirEmpty(dir)
	if err != nil || !empty {
		return
	}
	if err := os.Remove(dir); err != nil {
		m.logger.Debug("Staging directory not removed", "dir", dir, "error", err)
	}
}

// Stem is the base name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
