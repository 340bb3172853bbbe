package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentParser extracts plain text from a resume document.
// Implementations for binary formats (PDF, DOCX) plug in here; the built-in
// parser handles plain text only.
type DocumentParser interface {
	// Parse reads the document at path and returns its text content.
	// Returns ErrUnsupportedFormat for formats the parser cannot read.
	Parse(path string) (string, error)

	// Supports reports whether the parser can read the given file.
	Supports(path string) bool
}

// TextParser reads plain-text resume files.
type TextParser struct{}

var _ DocumentParser = (*TextParser)(nil)

// NewTextParser creates a parser for plain-text documents.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Supports reports whether the file has a plain-text extension.
func (p *TextParser) Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md":
		return true
	}
	return false
}

// Parse reads the file's content as UTF-8 text.
func (p *TextParser) Parse(path string) (string, error) {
	if !p.Supports(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
