// Package sheets resolves destination spreadsheets and appends header-aligned record batches
// to them.
package sheets

import (
	"context"
	"time"
)

// SpreadsheetMIMEType is the Drive MIME type of a native spreadsheet.
const SpreadsheetMIMEType = "application/vnd.google-apps.spreadsheet"

// File describes a spreadsheet as listed by the backing store.
type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ModifiedTime time.Time `json:"modified_time"`
}

// Backend is the spreadsheet backing store.
type Backend interface {
	// FindByName returns spreadsheets named exactly name, most recently modified first.
	// A non-empty folderID restricts the search to that folder.
	FindByName(ctx context.Context, name, folderID string) ([]File, error)
	// Create makes an empty spreadsheet, inside folderID when it is non-empty.
	Create(ctx context.Context, name, folderID string) (File, error)
	// ReadHeader returns the first row of the first sheet, or nil when the sheet is empty.
	ReadHeader(ctx context.Context, spreadsheetID string) ([]string, error)
	// AppendRows appends all rows after the last non-empty row in a single atomic call.
	AppendRows(ctx context.Context, spreadsheetID string, rows [][]string) error
	// ListOwned returns every spreadsheet owned by the authenticated identity.
	ListOwned(ctx context.Context) ([]File, error)
	// Delete permanently removes a spreadsheet.
	Delete(ctx context.Context, spreadsheetID string) error
}

// URL returns the browser URL of a spreadsheet.
func URL(spreadsheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + spreadsheetID
}
