// Package ingest loads documents for the batch driver: page-level text from
// PDFs and plain-text fixtures, plus input-folder scanning. The extraction
// core itself never touches source media; everything here sits outside it.
package ingest

import (
	"bytes"
	"io"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/document"
)

// ReadPDF extracts one text string per page and wraps them as a Document.
// Pages whose extraction fails contribute an empty page rather than aborting
// the document, matching the lenient per-page behavior of the GUI pipeline
// this replaces.
func ReadPDF(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, common.WrapError(err, "opening pdf")
	}
	defer f.Close()
	return readPDF(f, path)
}

func readPDF(r io.Reader, name string) (document.Document, error) {
	// The pdf reader needs a ReaderAt and the total size.
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return document.Document{}, common.WrapError(err, "reading pdf")
	}
	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return document.Document{}, common.WrapError(err, "parsing pdf")
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return document.New(name, pages), nil
}
