package menus

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/extractor"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/storage"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

var menuExtensions = map[string]bool{"pdf": true}

// Menu is a downloaded and verified menu PDF.
type Menu struct {
	Key   string
	Path  string
	Pages int
}

type Summary struct {
	Listed     int
	Downloaded []Menu
	Skipped    int
	Invalid    int
	Failed     int
}

type Fetcher struct {
	store  storage.Storage
	prefix string
	outDir string
	logger *utils.Logger
}

func NewFetcher(store storage.Storage, prefix, outDir string, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		store:  store,
		prefix: prefix,
		outDir: outDir,
		logger: logger,
	}
}

// FetchAll mirrors every PDF under the prefix into the output directory,
// keeping the key layout below the prefix. A failing object is logged and
// counted; only a listing failure or cancellation stops the run.
func (f *Fetcher) FetchAll(ctx context.Context) (*Summary, error) {
	objects, err := f.store.List(ctx, f.prefix)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Listed: len(objects)}
	f.logger.Info("Listed menus", "prefix", f.prefix, "count", len(objects))

	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if strings.HasSuffix(obj.Key, "/") || !utils.AllowedFile(obj.Key, menuExtensions) {
			f.logger.Debug("Skipping non-PDF object", "key", obj.Key)
			summary.Skipped++
			continue
		}

		dest, err := f.localPath(obj.Key)
		if err != nil {
			f.logger.Error("Refusing object key", "key", obj.Key, "error", err)
			summary.Failed++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			f.logger.Error("Failed to create menu directory", "key", obj.Key, "error", err)
			summary.Failed++
			continue
		}

		if err := f.store.DownloadFile(ctx, obj.Key, dest); err != nil {
			f.logger.Error("Error downloading menu", "key", obj.Key, "error", err)
			summary.Failed++
			continue
		}

		pages, err := extractor.Inspect(dest)
		if err != nil {
			f.logger.Warn("Downloaded menu is not a readable PDF", "key", obj.Key, "error", err)
			if rmErr := os.Remove(dest); rmErr != nil {
				f.logger.Warn("Failed to remove unreadable menu", "path", dest, "error", rmErr)
			}
			summary.Invalid++
			continue
		}

		f.logger.Info("Downloaded menu", "key", obj.Key, "path", dest, "pages", pages)
		summary.Downloaded = append(summary.Downloaded, Menu{Key: obj.Key, Path: dest, Pages: pages})
	}

	return summary, nil
}

// localPath maps an object key to a path under outDir. Keys that would
// escape outDir are rejected.
func (f *Fetcher) localPath(key string) (string, error) {
	rel := path.Clean(strings.TrimPrefix(key, f.prefix))
	rel = strings.TrimLeft(rel, "/")
	if rel == "" || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("key %q escapes output directory", key)
	}
	return filepath.Join(f.outDir, filepath.FromSlash(rel)), nil
}
