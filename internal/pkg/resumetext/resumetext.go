// Package resumetext pulls plain text out of uploaded resume files.
package resumetext

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	ErrTooLarge          = errors.New("resume text exceeds size limit")
)

// MaxContentBytes caps the decompressed document body read from a resume.
// Uploads are limited in compressed size only, so a small DOCX could
// otherwise expand without bound.
const MaxContentBytes = 2 << 20

// AllowedExtensions lists the upload extensions accepted for resumes.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

func Allowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range AllowedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Extract returns the plain text of the resume stored at path.
func Extract(path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".txt":
		var b []byte
		b, err = os.ReadFile(path)
		text = string(b)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(plain, MaxContentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	if n > MaxContentBytes {
		return "", ErrTooLarge
	}
	return buf.String(), nil
}

func extractDOCX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return documentText(rc, MaxContentBytes)
	}
	return "", errors.New("docx: word/document.xml not found")
}

// capReader fails with ErrTooLarge once more than n bytes have been read.
type capReader struct {
	r io.Reader
	n int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.n < 0 {
		return 0, ErrTooLarge
	}
	if int64(len(p)) > c.n+1 {
		p = p[:c.n+1]
	}
	n, err := c.r.Read(p)
	c.n -= int64(n)
	if c.n < 0 {
		return n, ErrTooLarge
	}
	return n, err
}

// documentText collects w:t runs; each closing w:p ends a line. At most
// limit bytes of XML are read.
func documentText(r io.Reader, limit int64) (string, error) {
	cr := &capReader{r: r, n: limit}
	dec := xml.NewDecoder(cr)
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if cr.n < 0 {
				return "", ErrTooLarge
			}
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
