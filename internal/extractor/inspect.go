package extractor

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

// Inspect parses the PDF structure at path without rendering and returns
// its page count.
func Inspect(path string) (pages int, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = 0
			err = utils.NewDecodeError("Malformed PDF", fmt.Errorf("%v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, utils.NewDecodeError("Failed to read PDF", err)
	}
	defer f.Close()

	pages = reader.NumPage()
	if pages == 0 {
		return 0, utils.NewDecodeError("PDF has no pages", nil)
	}

	return pages, nil
}
