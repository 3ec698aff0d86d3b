// Package docx provides DOCX (Office Open XML) container unpacking and maps
// WordprocessingML paragraphs to semantic tree nodes.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tsawler/docxmd/model"
)

var (
	ErrMissingDocument = errors.New("docx: missing word/document.xml")
	ErrMissingBody     = errors.New("docx: document.xml missing w:document/w:body")
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipCloser io.Closer
	files     []*zip.File
	elements  []*Element
	styles    styleIndex
	rels      *relationshipsXML
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.zipCloser = zr
	return r, nil
}

// NewReader reads a DOCX document from an io.ReaderAt of the given size.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr.File)
}

func newReader(files []*zip.File) (*Reader, error) {
	r := &Reader{files: files}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse relationships first (needed for hyperlink targets)
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse document.xml
	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Styles and metadata are optional; a broken part is ignored
	r.parseStyles()
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipCloser != nil {
		err := r.zipCloser.Close()
		r.zipCloser = nil
		return err
	}
	return nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	if r.getFile("word/document.xml") == nil {
		return ErrMissingDocument
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.getFile(name)
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Elements returns the ordered children of w:body. Callers must not modify
// the returned elements.
func (r *Reader) Elements() []*Element {
	return r.elements
}

// StyleName returns the display name of a paragraph style ID, or "" when
// styles.xml does not define it.
func (r *Reader) StyleName(styleID string) string {
	return r.styles[styleID]
}

// LinkTarget returns the external target of a hyperlink relationship ID.
func (r *Reader) LinkTarget(id string) (string, bool) {
	if r.rels == nil || id == "" {
		return "", false
	}
	for _, rel := range r.rels.Relationships {
		if rel.ID == id && rel.Type == relTypeHyperlink {
			return rel.Target, rel.Target != ""
		}
	}
	return "", false
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{Custom: make(map[string]string)}
	if r.coreProps != nil {
		meta.Title = strings.TrimSpace(r.coreProps.Title)
		meta.Author = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		if r.coreProps.Keywords != "" {
			meta.Keywords = strings.Split(r.coreProps.Keywords, ",")
			for i, kw := range meta.Keywords {
				meta.Keywords[i] = strings.TrimSpace(kw)
			}
		}
		if r.coreProps.Description != "" {
			meta.Custom["description"] = r.coreProps.Description
		}
		if r.coreProps.LastModifiedBy != "" {
			meta.Custom["lastModifiedBy"] = r.coreProps.LastModifiedBy
		}
		meta.CreationDate = parseW3CDate(r.coreProps.Created)
		meta.ModDate = parseW3CDate(r.coreProps.Modified)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
		if r.appProps.Company != "" {
			meta.Custom["company"] = r.appProps.Company
		}
	}
	return meta
}

// parseW3CDate parses the dcterms W3CDTF timestamps used in core.xml.
func parseW3CDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseRelationships parses the document relationships file.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	r.rels = &relationshipsXML{}
	return xml.Unmarshal(data, r.rels)
}

// parseDocument parses the main document content into an element tree.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	elements, err := ParseElements(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding document.xml: %w", err)
	}
	r.elements = elements
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	var styles *stylesXML
	if data, err := r.getFileContent("word/styles.xml"); err == nil {
		styles = &stylesXML{}
		if err := xml.Unmarshal(data, styles); err != nil {
			styles = nil
		}
	}
	r.styles = newStyleIndex(styles)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}
