// Package pagecount extracts the logical page count from PDF documents.
//
// This is the upload/page-counting collaborator of the imposition core: it
// turns a submitted document into the plain inputPages integer the pipeline
// consumes. Counting is backed by pdfcpu and never modifies the document.
package pagecount

import (
	"bytes"
	"io"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/cutstack/cutstack/pkg/errors"
)

// Count returns the number of pages in the PDF read from r.
func Count(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}
	return CountBytes(data)
}

// CountBytes returns the number of pages in the PDF held in data.
func CountBytes(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidDocument, "document is empty")
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := pdfapi.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "not a readable PDF")
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "determine page count")
	}
	if ctx.PageCount == 0 {
		return 0, errors.New(errors.ErrCodeInvalidDocument, "document has no pages")
	}

	return ctx.PageCount, nil
}

// CountFile returns the number of pages in the PDF at path.
func CountFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read %s", path)
	}
	return CountBytes(data)
}
