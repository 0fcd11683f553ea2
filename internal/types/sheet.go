package types

import "time"

// SheetHandle identifies a destination spreadsheet and its header row as last read.
// An empty Header means the sheet has not been written to yet.
type SheetHandle struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Header       []string  `json:"header,omitempty"`
	ModifiedTime time.Time `json:"modified_time,omitempty"`
}

// HasHeader reports whether the sheet already carries an authoritative header row.
func (h SheetHandle) HasHeader() bool {
	return len(h.Header) > 0
}
