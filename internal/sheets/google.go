package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/y4jaiops/y4j-YouthScan/internal/config"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const fileFields = "nextPageToken, files(id, name, modifiedTime)"

// GoogleBackend implements Backend over the Sheets and Drive APIs.
type GoogleBackend struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewGoogleBackend creates both API clients from a single token source, so credentials are
// exchanged once and the token is cached for the life of the process.
func NewGoogleBackend(ctx context.Context, ts oauth2.TokenSource) (*GoogleBackend, error) {
	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return &GoogleBackend{sheets: sheetsSvc, drive: driveSvc}, nil
}

// NewGoogleBackendFromConfig authenticates with the configured service account.
func NewGoogleBackendFromConfig(ctx context.Context, cfg *config.Config) (*GoogleBackend, *config.ServiceAccount, error) {
	sa, err := cfg.ServiceAccount()
	if err != nil {
		return nil, nil, err
	}
	backend, err := NewGoogleBackend(ctx, sa.TokenSource(ctx))
	if err != nil {
		return nil, nil, err
	}
	return backend, sa, nil
}

// Drive exposes the Drive client for file downloads that share the same credentials.
func (g *GoogleBackend) Drive() *drive.Service {
	return g.drive
}

// FindByName implements Backend.
func (g *GoogleBackend) FindByName(ctx context.Context, name, folderID string) ([]File, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), SpreadsheetMIMEType)
	if folderID != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQuery(folderID))
	}
	return g.list(ctx, q)
}

// Create implements Backend.
func (g *GoogleBackend) Create(ctx context.Context, name, folderID string) (File, error) {
	meta := &drive.File{Name: name, MimeType: SpreadsheetMIMEType}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}

	created, err := g.drive.Files.Create(meta).
		Fields("id, name, modifiedTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return File{}, err
	}
	return toFile(created), nil
}

// ReadHeader implements Backend.
func (g *GoogleBackend) ReadHeader(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := g.sheets.Spreadsheets.Values.Get(spreadsheetID, "1:1").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = fmt.Sprint(cell)
	}
	return header, nil
}

// AppendRows implements Backend.
func (g *GoogleBackend) AppendRows(ctx context.Context, spreadsheetID string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}

	_, err := g.sheets.Spreadsheets.Values.Append(spreadsheetID, "A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ListOwned implements Backend.
func (g *GoogleBackend) ListOwned(ctx context.Context) ([]File, error) {
	q := fmt.Sprintf("mimeType = '%s' and 'me' in owners and trashed = false", SpreadsheetMIMEType)
	return g.list(ctx, q)
}

// Delete implements Backend.
func (g *GoogleBackend) Delete(ctx context.Context, spreadsheetID string) error {
	return g.drive.Files.Delete(spreadsheetID).SupportsAllDrives(true).Context(ctx).Do()
}

func (g *GoogleBackend) list(ctx context.Context, q string) ([]File, error) {
	var files []File
	err := g.drive.Files.List().
		Q(q).
		OrderBy("modifiedTime desc").
		Fields(fileFields).
		PageSize(100).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				files = append(files, toFile(f))
			}
			return nil
		})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func toFile(f *drive.File) File {
	modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return File{ID: f.Id, Name: f.Name, ModifiedTime: modified}
}

// escapeQuery quotes a value for a Drive search expression.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
