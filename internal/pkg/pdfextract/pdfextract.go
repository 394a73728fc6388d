package pdfextract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	ErrEncrypted         = errors.New("pdf is password-protected")
	ErrEmptyDocument     = errors.New("pdf has no pages")
	ErrNoExtractableText = errors.New("pdf has no extractable text")
	ErrCorrupted         = errors.New("pdf is corrupted or invalid")
	ErrFileNotFound      = errors.New("pdf file not found")
	ErrPermissionDenied  = errors.New("cannot read pdf file")
)

// Page holds the plain text of a single PDF page. Numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

type Extractor struct {
	log *zap.SugaredLogger
}

func NewExtractor(log *zap.SugaredLogger) *Extractor {
	return &Extractor{log: log}
}

// ExtractPages extracts text per page. Pages that fail to decode or contain
// only whitespace are skipped; if every page is skipped the document is
// reported as having no extractable text, which is how scanned (image-only)
// PDFs surface.
func (e *Extractor) ExtractPages(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		default:
			return nil, fmt.Errorf("open pdf failed: %w", err)
		}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf failed: %w", err)
	}

	reader, err := pdf.NewReaderEncrypted(f, info.Size(), func() string { return "" })
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return nil, ErrEmptyDocument
	}

	var pages []Page
	for num := 1; num <= totalPages; num++ {
		text, err := extractPageText(reader, num)
		if err != nil {
			e.log.Warnw("skip unreadable pdf page", "path", path, "page", num, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Number: num, Text: text})
	}

	if len(pages) == 0 {
		return nil, ErrNoExtractableText
	}
	return pages, nil
}

// extractPageText isolates the pdf library's decoding, which panics on some
// malformed content streams.
func extractPageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decode page content failed: %v", rec)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", num)
	}
	return page.GetPlainText(nil)
}
