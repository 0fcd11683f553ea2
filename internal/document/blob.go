// Package document produces DocumentBlobs from the supported sources: camera or upload
// bytes, local files and Google Drive links.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

// MaxDocumentBytes caps inline documents sent to the model.
const MaxDocumentBytes = 20 << 20

var (
	// ErrEmptyDocument is returned for zero-length input.
	ErrEmptyDocument = errors.New("document is empty")
	// ErrUnsupportedType is returned for anything other than an image or a PDF.
	ErrUnsupportedType = errors.New("unsupported document type (expected an image or a pdf)")
	// ErrTooLarge is returned when a document exceeds MaxDocumentBytes.
	ErrTooLarge = fmt.Errorf("document exceeds %d MiB", MaxDocumentBytes>>20)
)

// acceptedTypes are matched first so their canonical names win over sniffed aliases.
// Any other image/* type is accepted as sniffed.
var acceptedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
	"image/heif",
	"application/pdf",
}

func init() {
	// pdfcpu must not create a config directory in the user's home
	api.DisableConfigDir()
}

// FromBytes builds a DocumentBlob, trusting the sniffed content type over the declared one.
// PDFs are checked for structural validity before they are accepted.
func FromBytes(data []byte, declaredMIME, name string, source types.Source) (types.DocumentBlob, error) {
	if len(data) == 0 {
		return types.DocumentBlob{}, ErrEmptyDocument
	}
	if len(data) > MaxDocumentBytes {
		return types.DocumentBlob{}, ErrTooLarge
	}

	mimeType, err := resolveMIME(data, declaredMIME)
	if err != nil {
		return types.DocumentBlob{}, err
	}

	doc := types.DocumentBlob{
		Data:     data,
		MIMEType: mimeType,
		Name:     name,
		Source:   source,
	}

	if doc.IsPDF() {
		if _, err := PageCount(doc); err != nil {
			return types.DocumentBlob{}, err
		}
	}

	return doc, nil
}

// FromFile reads a local image or PDF.
func FromFile(path string) (types.DocumentBlob, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.DocumentBlob{}, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if info.Size() > MaxDocumentBytes {
		return types.DocumentBlob{}, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.DocumentBlob{}, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return FromBytes(data, mimeFromExtension(path), filepath.Base(path), types.SourceUpload)
}

// PageCount returns the number of pages of a PDF blob.
func PageCount(doc types.DocumentBlob) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pages, err := api.PageCount(bytes.NewReader(doc.Data), conf)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	if pages == 0 {
		return 0, fmt.Errorf("invalid PDF: no pages")
	}
	return pages, nil
}

func resolveMIME(data []byte, declared string) (string, error) {
	detected := mimetype.Detect(data)
	for _, accepted := range acceptedTypes {
		if detected.Is(accepted) {
			return accepted, nil
		}
	}
	if sniffed := normalizeMIME(detected.String()); isImage(sniffed) {
		return sniffed, nil
	}

	// Fall back to the declared type only when sniffing found nothing specific
	declared = normalizeMIME(declared)
	if detected.Is("application/octet-stream") && isAccepted(declared) {
		return declared, nil
	}
	return "", fmt.Errorf("%w: got %s", ErrUnsupportedType, detected.String())
}

func normalizeMIME(m string) string {
	if idx := strings.Index(m, ";"); idx >= 0 {
		m = m[:idx]
	}
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "image/jpg" {
		return "image/jpeg"
	}
	return m
}

// isAccepted reports whether m is a PDF or any image type.
func isAccepted(m string) bool {
	return m == "application/pdf" || isImage(m)
}

func isImage(m string) bool {
	return strings.HasPrefix(m, "image/") && len(m) > len("image/")
}

func mimeFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".pdf":
		return "application/pdf"
	default:
		return ""
	}
}
