package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/logging"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
)

// ErrInvalidDriveLink is returned when no file id can be found in a link.
var ErrInvalidDriveLink = errors.New("not a Google Drive file link")

var (
	drivePathID = regexp.MustCompile(`/(?:file/d|document/d|spreadsheets/d|presentation/d)/([A-Za-z0-9_-]{10,})`)
	bareID      = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)
)

// googleDocPrefix marks Drive-native formats that must be exported instead of downloaded.
const googleDocPrefix = "application/vnd.google-apps."

// ParseDriveLink extracts the file id from a Drive share link. It understands
// /file/d/<id>/view, open?id=<id>, uc?id=<id>&export=download and bare ids.
func ParseDriveLink(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrInvalidDriveLink
	}
	if bareID.MatchString(link) {
		return link, nil
	}

	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", ErrInvalidDriveLink
	}
	if u.Host != "google.com" && !strings.HasSuffix(u.Host, ".google.com") {
		return "", fmt.Errorf("%w: unexpected host %s", ErrInvalidDriveLink, u.Host)
	}

	if m := drivePathID.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}
	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}
	return "", ErrInvalidDriveLink
}

// FileMeta is the Drive metadata needed to fetch a file.
type FileMeta struct {
	ID       string
	Name     string
	MIMEType string
	Size     int64
}

// DriveFiles is the subset of the Drive API the fetcher needs.
type DriveFiles interface {
	Get(ctx context.Context, fileID string) (FileMeta, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
	Export(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error)
}

// DriveFetcher resolves Drive links into DocumentBlobs.
type DriveFetcher struct {
	files   DriveFiles
	timeout time.Duration
	logger  *zap.Logger
}

// NewDriveFetcher creates a fetcher over files. A zero timeout means 60s.
func NewDriveFetcher(files DriveFiles, timeout time.Duration, logger *zap.Logger) *DriveFetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &DriveFetcher{files: files, timeout: timeout, logger: logging.OrNop(logger)}
}

// Fetch downloads the file behind link. Drive-native documents are exported as PDF.
func (f *DriveFetcher) Fetch(ctx context.Context, link string) (types.DocumentBlob, error) {
	fileID, err := ParseDriveLink(link)
	if err != nil {
		return types.DocumentBlob{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	meta, err := f.files.Get(ctx, fileID)
	if err != nil {
		return types.DocumentBlob{}, fmt.Errorf("failed to look up drive file %s: %w", fileID, err)
	}
	if meta.Size > MaxDocumentBytes {
		return types.DocumentBlob{}, ErrTooLarge
	}

	declared := meta.MIMEType
	var body io.ReadCloser
	if strings.HasPrefix(meta.MIMEType, googleDocPrefix) {
		declared = "application/pdf"
		body, err = f.files.Export(ctx, fileID, declared)
	} else {
		body, err = f.files.Download(ctx, fileID)
	}
	if err != nil {
		return types.DocumentBlob{}, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, MaxDocumentBytes+1))
	if err != nil {
		return types.DocumentBlob{}, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}

	doc, err := FromBytes(data, declared, meta.Name, types.SourceDrive)
	if err != nil {
		return types.DocumentBlob{}, err
	}

	f.logger.Info("drive file fetched",
		zap.String("file_id", fileID),
		zap.String("mime_type", doc.MIMEType),
		zap.Int("bytes", len(doc.Data)),
	)
	return doc, nil
}

// APIFiles adapts a Drive API service to DriveFiles.
type APIFiles struct {
	Service *drive.Service
}

// Get implements DriveFiles.
func (a APIFiles) Get(ctx context.Context, fileID string) (FileMeta, error) {
	file, err := a.Service.Files.Get(fileID).
		Fields("id, name, mimeType, size").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{ID: file.Id, Name: file.Name, MIMEType: file.MimeType, Size: file.Size}, nil
}

// Download implements DriveFiles.
func (a APIFiles) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := a.Service.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Export implements DriveFiles.
func (a APIFiles) Export(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error) {
	resp, err := a.Service.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
