package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/document"
)

// ReadText loads a plain-text document. Form feeds separate pages, so
// multi-page fixtures and OCR dumps round-trip with page boundaries intact.
func ReadText(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, common.WrapError(err, "reading text file")
	}
	pages := strings.Split(string(data), "\f")
	return document.New(path, pages), nil
}

// ReadDocument dispatches on extension. Only the extensions in
// constants.AllowedExtensions are supported.
func ReadDocument(path string) (document.Document, error) {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "pdf":
		return ReadPDF(path)
	case "txt":
		return ReadText(path)
	}
	return document.Document{}, common.NewAppError("INGEST", "unsupported file type: "+path, common.ErrInvalidInput)
}
