package types

// Source identifies where a document came from.
type Source string

// Document sources. Only one is active at a time.
const (
	SourceCamera Source = "camera"
	SourceUpload Source = "upload"
	SourceDrive  Source = "drive"
)

// DocumentBlob is an opaque document payload tagged with its MIME type.
type DocumentBlob struct {
	Data     []byte
	MIMEType string
	Name     string
	Source   Source
}

// IsPDF reports whether the blob is a PDF document.
func (d DocumentBlob) IsPDF() bool {
	return d.MIMEType == "application/pdf"
}
