// Package docx reads and rewrites OOXML .docx packages for template filling.
//
// It is deliberately narrow: placeholder scanning, flat key substitution, and
// marker-row table expansion. The package treats word/document.xml as raw
// bytes and splices edits into it, so every run property, table border, and
// style the template author set survives untouched. It is not a general
// OOXML library.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

const documentPath = "word/document.xml"

// Package is an opened .docx file. The zip entries are kept verbatim except
// for word/document.xml, which edits below mutate.
type Package struct {
	names []string
	files map[string][]byte
	doc   []byte
}

// Open reads a .docx package from disk.
// Returns domain.ErrBadDocument if the file is not a readable docx package.
func Open(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return OpenBytes(data)
}

// OpenBytes reads a .docx package from memory.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w: %w", domain.ErrBadDocument, err)
	}

	p := &Package{files: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open docx entry %s: %w: %w", f.Name, domain.ErrBadDocument, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read docx entry %s: %w: %w", f.Name, domain.ErrBadDocument, err)
		}
		p.names = append(p.names, f.Name)
		p.files[f.Name] = content
	}

	doc, ok := p.files[documentPath]
	if !ok {
		return nil, fmt.Errorf("open docx: %w: missing %s", domain.ErrBadDocument, documentPath)
	}
	p.doc = doc

	return p, nil
}

// WriteTo serializes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	for _, name := range p.names {
		content := p.files[name]
		if name == documentPath {
			content = p.doc
		}
		fw, err := zw.Create(name)
		if err != nil {
			return cw.n, fmt.Errorf("write docx entry %s: %w", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return cw.n, fmt.Errorf("write docx entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("finish docx: %w", err)
	}
	return cw.n, nil
}

// Save writes the package to path, creating parent directories as needed.
func (p *Package) Save(path string) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
