package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

func TestFromBytes_SniffsImages(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		expected string
	}{
		{name: "png", data: pngBytes, declared: "image/png", expected: "image/png"},
		{name: "jpeg", data: jpegBytes, declared: "image/jpeg", expected: "image/jpeg"},
		{name: "sniffed type wins over wrong declaration", data: pngBytes, declared: "image/jpeg", expected: "image/png"},
		{name: "missing declaration", data: jpegBytes, declared: "", expected: "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromBytes(tt.data, tt.declared, "scan", types.SourceCamera)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.MIMEType)
			assert.Equal(t, types.SourceCamera, doc.Source)
			assert.Equal(t, tt.data, doc.Data)
		})
	}
}

func TestFromBytes_AcceptsOtherImageTypes(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00,"), expected: "image/gif"},
		{name: "bmp", data: append([]byte("BM"), make([]byte, 64)...), expected: "image/bmp"},
		{name: "tiff", data: append([]byte("II*\x00"), make([]byte, 64)...), expected: "image/tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromBytes(tt.data, "", "scan", types.SourceUpload)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.MIMEType)
		})
	}
}

func TestFromBytes_PDF(t *testing.T) {
	doc, err := FromBytes(minimalPDF(), "application/pdf", "form.pdf", types.SourceUpload)
	require.NoError(t, err)
	assert.True(t, doc.IsPDF())

	pages, err := PageCount(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestFromBytes_Rejects(t *testing.T) {
	_, err := FromBytes(nil, "image/png", "", types.SourceUpload)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = FromBytes([]byte("just some text, not a scan"), "text/plain", "", types.SourceUpload)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = FromBytes([]byte("%PDF-1.4\nthis is not really a pdf"), "application/pdf", "", types.SourceUpload)
	assert.ErrorContains(t, err, "invalid PDF")

	_, err = FromBytes(make([]byte, MaxDocumentBytes+1), "image/png", "", types.SourceUpload)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidate.jpg")
	require.NoError(t, os.WriteFile(path, jpegBytes, 0644))

	doc, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", doc.MIMEType)
	assert.Equal(t, "candidate.jpg", doc.Name)
	assert.Equal(t, types.SourceUpload, doc.Source)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "failed to read document")
}

func TestNormalizeMIME(t *testing.T) {
	assert.Equal(t, "image/jpeg", normalizeMIME("image/JPG"))
	assert.Equal(t, "application/pdf", normalizeMIME("application/pdf; charset=binary"))
	assert.Equal(t, "application/pdf", mimeFromExtension("scan.PDF"))
	assert.Equal(t, "", mimeFromExtension("notes.txt"))
}

func TestSelection_LaterSourceReplacesEarlier(t *testing.T) {
	var sel Selection
	_, ok := sel.Active()
	assert.False(t, ok)

	_, replaced := sel.Set(types.DocumentBlob{Data: []byte("a"), Source: types.SourceDrive})
	assert.False(t, replaced)

	prev, replaced := sel.Set(types.DocumentBlob{Data: []byte("b"), Source: types.SourceUpload})
	assert.True(t, replaced)
	assert.Equal(t, types.SourceDrive, prev)

	active, ok := sel.Active()
	require.True(t, ok)
	assert.Equal(t, types.SourceUpload, active.Source)
	assert.Equal(t, []byte("b"), active.Data)

	sel.Clear()
	_, ok = sel.Active()
	assert.False(t, ok)
}
