package resumetext

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills:</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve"> Go, PostgreSQL</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDOCX(t *testing.T, path string) {
	t.Helper()
	writeDOCXBody(t, path, []byte(documentXML))
}

func writeDOCXBody(t *testing.T, path string, body []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestExtract_DOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	writeDOCX(t, path)

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills:\t Go, PostgreSQL", text)
}

func TestExtract_TXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.TXT")
	require.NoError(t, os.WriteFile(path, []byte("  Go developer\n"), 0o600))

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("/tmp/resume.doc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Extract("/tmp/resume.rtf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_DOCXMissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Extract(path)
	assert.ErrorContains(t, err, "document.xml not found")
}

func TestExtract_DOCXExpandsPastLimit(t *testing.T) {
	para := []byte("<w:p><w:r><w:t>xxxxxxxxxxxxxxxx</w:t></w:r></w:p>")
	var body bytes.Buffer
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for body.Len() <= MaxContentBytes {
		body.Write(para)
	}
	body.WriteString(`</w:body></w:document>`)

	path := filepath.Join(t.TempDir(), "bomb.docx")
	writeDOCXBody(t, path, body.Bytes())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Less(t, info.Size(), int64(MaxContentBytes/10), "archive should compress well below the limit")

	_, err = Extract(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDocumentText_AtLimit(t *testing.T) {
	body := []byte(documentXML)

	text, err := documentText(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")

	_, err = documentText(bytes.NewReader(body), int64(len(body)-1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("cv.PDF"))
	assert.True(t, Allowed("cv.docx"))
	assert.False(t, Allowed("cv.exe"))
	assert.False(t, Allowed("cv"))
}
