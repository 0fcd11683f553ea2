package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

func TestParseDriveLink(t *testing.T) {
	const id = "1Vavl3N2vLsJtIY7xdsrjB_fi2LMS1tfU"

	tests := []struct {
		name    string
		link    string
		want    string
		wantErr bool
	}{
		{name: "file view link", link: "https://drive.google.com/file/d/" + id + "/view?usp=sharing", want: id},
		{name: "open link", link: "https://drive.google.com/open?id=" + id, want: id},
		{name: "download link", link: "https://drive.google.com/uc?id=" + id + "&export=download", want: id},
		{name: "docs link", link: "https://docs.google.com/document/d/" + id + "/edit", want: id},
		{name: "bare id", link: "  " + id + " ", want: id},
		{name: "empty", link: "", wantErr: true},
		{name: "other host", link: "https://example.com/file/d/" + id + "/view", wantErr: true},
		{name: "lookalike host", link: "https://evilgoogle.com/file/d/" + id + "/view", wantErr: true},
		{name: "folder link without id", link: "https://drive.google.com/drive/my-drive", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDriveLink(tt.link)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDriveLink)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeDriveFiles struct {
	meta        FileMeta
	content     []byte
	getErr      error
	exportedAs  string
	downloadHit bool
}

func (f *fakeDriveFiles) Get(context.Context, string) (FileMeta, error) {
	return f.meta, f.getErr
}

func (f *fakeDriveFiles) Download(context.Context, string) (io.ReadCloser, error) {
	f.downloadHit = true
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func (f *fakeDriveFiles) Export(_ context.Context, _ string, mimeType string) (io.ReadCloser, error) {
	f.exportedAs = mimeType
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

const testLink = "https://drive.google.com/file/d/1Vavl3N2vLsJtIY7xdsrjB_fi2LMS1tfU/view"

func TestDriveFetcher_Download(t *testing.T) {
	files := &fakeDriveFiles{
		meta:    FileMeta{Name: "batch.png", MIMEType: "image/png", Size: int64(len(pngBytes))},
		content: pngBytes,
	}
	f := NewDriveFetcher(files, 0, nil)

	doc, err := f.Fetch(context.Background(), testLink)
	require.NoError(t, err)
	assert.True(t, files.downloadHit)
	assert.Equal(t, "image/png", doc.MIMEType)
	assert.Equal(t, "batch.png", doc.Name)
	assert.Equal(t, types.SourceDrive, doc.Source)
}

func TestDriveFetcher_ExportsNativeDocs(t *testing.T) {
	files := &fakeDriveFiles{
		meta:    FileMeta{Name: "Registration", MIMEType: "application/vnd.google-apps.document"},
		content: minimalPDF(),
	}
	f := NewDriveFetcher(files, 0, nil)

	doc, err := f.Fetch(context.Background(), testLink)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", files.exportedAs)
	assert.False(t, files.downloadHit)
	assert.True(t, doc.IsPDF())
}

func TestDriveFetcher_Errors(t *testing.T) {
	f := NewDriveFetcher(&fakeDriveFiles{}, 0, nil)
	_, err := f.Fetch(context.Background(), "not a link")
	assert.ErrorIs(t, err, ErrInvalidDriveLink)

	files := &fakeDriveFiles{getErr: errors.New("404 not found")}
	_, err = NewDriveFetcher(files, 0, nil).Fetch(context.Background(), testLink)
	assert.ErrorContains(t, err, "failed to look up drive file")

	files = &fakeDriveFiles{meta: FileMeta{MIMEType: "image/png", Size: MaxDocumentBytes + 1}}
	_, err = NewDriveFetcher(files, 0, nil).Fetch(context.Background(), testLink)
	assert.ErrorIs(t, err, ErrTooLarge)

	files = &fakeDriveFiles{meta: FileMeta{MIMEType: "text/plain"}, content: []byte("hello")}
	_, err = NewDriveFetcher(files, 0, nil).Fetch(context.Background(), testLink)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
