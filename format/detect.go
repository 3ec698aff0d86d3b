// Package format identifies input documents before conversion.
package format

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotDOCX is returned when the input is not a Word document.
var ErrNotDOCX = errors.New("format: input is not a DOCX document")

// Format represents a recognized input format. Only DOCX can be converted;
// the others are recognized so the error can name what was supplied.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word 2007+ document.
	DOCX
	// DOC indicates a legacy binary Word document.
	DOC
	// PDF indicates a PDF document.
	PDF
	// ODT indicates an OpenDocument Text document.
	ODT
	// XLSX indicates an Excel workbook.
	XLSX
	// PPTX indicates a PowerPoint presentation.
	PPTX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case PDF:
		return "PDF"
	case ODT:
		return "ODT"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	default:
		return "Unknown"
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx":
		return DOCX
	case ".doc":
		return DOC
	case ".pdf":
		return PDF
	case ".odt":
		return ODT
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	default:
		return Unknown
	}
}

var (
	magicZIP = []byte("PK\x03\x04")
	magicPDF = []byte("%PDF")
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromReader inspects the content to determine the format. ZIP
// archives are opened to tell the OOXML and OpenDocument formats apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, magicPDF):
		return PDF, nil
	case bytes.HasPrefix(magic, magicOLE):
		return DOC, nil
	case bytes.HasPrefix(magic, magicZIP):
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// detectZIPFormat looks for the main part of each ZIP-based format. A DOCX
// must carry word/document.xml; a word/ directory alone is not enough.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	format := Unknown
	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			return DOCX, nil
		case f.Name == "mimetype" && isODTMimetype(f):
			format = ODT
		case strings.HasPrefix(f.Name, "xl/"):
			format = XLSX
		case strings.HasPrefix(f.Name, "ppt/"):
			format = PPTX
		}
	}
	return format, nil
}

func isODTMimetype(f *zip.File) bool {
	rc, err := f.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, 256))
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(data), "application/vnd.oasis.opendocument.text")
}

// RequireDOCX returns nil when r holds a DOCX document and an error
// wrapping ErrNotDOCX otherwise.
func RequireDOCX(r io.ReaderAt, size int64) error {
	f, err := DetectFromReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotDOCX, err)
	}
	if f != DOCX {
		return fmt.Errorf("%w: detected %s", ErrNotDOCX, f)
	}
	return nil
}
