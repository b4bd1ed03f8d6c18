// --- START OF FINAL REVISED FILE pkg/batch/pdfcheck.go ---
package batch

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pdfMagic is the header every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// ValidatePDF performs a structural sanity check on PDF bytes: the magic
// header must be present and the cross-reference structure must parse. Used
// for optional passthrough validation and for verifying engine output before
// an item is accepted as Converted.
func ValidatePDF(data []byte) (err error) {
	// The underlying parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid PDF: parser panic: %v", r)
		}
	}()
	if !bytes.HasPrefix(data, pdfMagic) {
		return fmt.Errorf("invalid PDF: missing %%PDF- header")
	}
	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	return nil
}

// --- END OF FINAL REVISED FILE pkg/batch/pdfcheck.go ---
