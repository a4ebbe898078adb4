package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

// PDF files may carry junk before the header; readers accept it within
// the first KiB.
const headerWindow = 1024

type Rasterizer interface {
	ExtractImages(ctx context.Context, pdfPath, outDir string) (models.PageImageSet, error)
}

type fitzRasterizer struct {
	dpi    float64
	logger *utils.Logger
}

func NewRasterizer(dpi float64, logger *utils.Logger) Rasterizer {
	return &fitzRasterizer{
		dpi:    dpi,
		logger: logger,
	}
}

// ExtractImages renders every page of the PDF at pdfPath to
// <outDir>/page_<n>.png, n starting at 1. outDir is created on demand.
// Either every page is rendered or an error is returned; files written
// before a failure are left for the caller to clean up.
func (r *fitzRasterizer) ExtractImages(ctx context.Context, pdfPath, outDir string) (models.PageImageSet, error) {
	if err := checkHeader(pdfPath); err != nil {
		return nil, err
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, utils.NewDecodeError("Failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, utils.NewDecodeError("PDF has no pages", nil)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, utils.NewFilesystemError("Failed to create image directory", err)
	}

	pages := make(models.PageImageSet, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageNum := i + 1
		data, err := doc.ImagePNG(i, r.dpi)
		if err != nil {
			return nil, utils.NewDecodeError(fmt.Sprintf("Failed to rasterize page %d", pageNum), err)
		}

		imagePath := filepath.Join(outDir, fmt.Sprintf("page_%d.png", pageNum))
		if err := os.WriteFile(imagePath, data, 0o644); err != nil {
			return nil, utils.NewFilesystemError(fmt.Sprintf("Failed to save page %d", pageNum), err)
		}

		pages[pageNum] = imagePath
	}

	r.logger.Info("PDF rasterized", "file", filepath.Base(pdfPath), "pages", pageCount, "dpi", r.dpi)

	return pages, nil
}

func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return utils.NewFilesystemError("Failed to open PDF", err)
	}
	defer f.Close()

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return utils.NewFilesystemError("Failed to read PDF", err)
	}

	if !bytes.Contains(head[:n], []byte("%PDF-")) {
		return utils.NewDecodeError("File is not a PDF document", nil)
	}
	return nil
}
