package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func docxFixture(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": relsXML,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func requireUserError(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	var extractErr *Error
	require.True(t, errors.As(err, &extractErr), "expected *Error, got %T", err)
	assert.Equal(t, msg, extractErr.Message)
}

func TestFromUploadRejectsMissingFilename(t *testing.T) {
	_, err := FromUpload("", []byte("hello"))
	requireUserError(t, err, "No file provided.")
}

func TestFromUploadRejectsUnsupportedExtension(t *testing.T) {
	_, err := FromUpload("resume.png", []byte("data"))
	requireUserError(t, err, "Unsupported file type '.png'. Supported formats: PDF, TXT, DOC, DOCX.")

	_, err = FromUpload("resume", []byte("data"))
	requireUserError(t, err, "Unsupported file type '.'. Supported formats: PDF, TXT, DOC, DOCX.")
}

func TestFromUploadRejectsEmptyPayload(t *testing.T) {
	_, err := FromUpload("resume.pdf", nil)
	requireUserError(t, err, "Uploaded file is empty.")
}

func TestFromUploadText(t *testing.T) {
	text, err := FromUpload("Resume.TXT", []byte("  Jane Doe\nEngineer\xff  "))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nEngineer", text)
}

func TestFromUploadTextBlank(t *testing.T) {
	_, err := FromUpload("resume.txt", []byte("   \n\t "))
	requireUserError(t, err, "Text file is empty.")
}

func TestFromUploadTextCapped(t *testing.T) {
	text, err := FromUpload("resume.txt", []byte(strings.Repeat("a", MaxTextLength+500)))
	require.NoError(t, err)
	assert.Len(t, text, MaxTextLength)
}

func TestFromUploadDocx(t *testing.T) {
	data := docxFixture(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>`)

	text, err := FromUpload("resume.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer\nGo\tKubernetes", text)
}

func TestFromUploadDocxEmpty(t *testing.T) {
	data := docxFixture(t, `<w:p></w:p><w:p><w:r><w:t>   </w:t></w:r></w:p>`)

	_, err := FromUpload("resume.docx", data)
	requireUserError(t, err, "DOCX file appears to be empty.")
}

func TestFromUploadLegacyDocFails(t *testing.T) {
	_, err := FromUpload("resume.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	require.Error(t, err)
	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.True(t, strings.HasPrefix(extractErr.Message, "Could not read DOCX file: "), extractErr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestFromUploadCorruptPDF(t *testing.T) {
	_, err := FromUpload("resume.pdf", []byte("this is not a pdf at all"))
	require.Error(t, err)
	var extractErr *Error
	require.True(t, errors.As(err, &extractErr))
	assert.True(t, strings.HasPrefix(extractErr.Message, "Could not read PDF: "), extractErr.Message)
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("Backend engineer wanted"), 0o600))

	text, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer wanted", text)

	_, err = FromPath(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a.b.PDF"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("trailing."))
}
