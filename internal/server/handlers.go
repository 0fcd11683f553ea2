package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/y4jaiops/y4j-YouthScan/internal/document"
	"github.com/y4jaiops/y4j-YouthScan/internal/export"
	"github.com/y4jaiops/y4j-YouthScan/internal/pipeline"
	"github.com/y4jaiops/y4j-YouthScan/internal/server/middleware"
	"github.com/y4jaiops/y4j-YouthScan/internal/sheets"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
	"go.uber.org/zap"
)

const (
	// maxAnalyzeBody leaves room for two documents plus form fields.
	maxAnalyzeBody = 2*document.MaxDocumentBytes + 1<<20
	maxJSONBody    = 5 << 20
	maxFieldBytes  = 8 << 10
)

// Form part names accepted by /analyze.
const (
	partFile      = "file"
	partCamera    = "camera"
	partDriveLink = "drive_link"
	partColumns   = "columns"
)

// SaveRequest is the body of /save: the reviewed (possibly edited) records.
type SaveRequest struct {
	Columns         []string       `json:"columns,omitempty"`
	Records         []types.Record `json:"records"`
	SpreadsheetName string         `json:"spreadsheet_name,omitempty"`
	// FolderID keeps the configured folder when absent; "" saves without a folder scope.
	FolderID *string `json:"folder_id,omitempty"`
}

// ExportRequest is the body of /export.
type ExportRequest struct {
	Columns []string       `json:"columns,omitempty"`
	Records []types.Record `json:"records"`
}

// OwnedResponse is returned by a dry-run cleanup.
type OwnedResponse struct {
	Found int           `json:"found"`
	Files []sheets.File `json:"files"`
}

// handleAnalyze reads a multipart form holding one or more document sources and extracts
// records from the one that arrived last.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	mr, err := r.MultipartReader()
	if err != nil {
		s.failed(w, r, &ErrValidation{Field: "body", Message: "multipart/form-data is required"})
		return
	}

	log := s.requestLogger(r)
	var selected document.Selection
	cols := s.columns

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.failed(w, r, err)
			return
		}

		var doc types.DocumentBlob
		var hasDoc bool
		switch part.FormName() {
		case partColumns:
			value, err := readField(part)
			if err == nil {
				cols, err = types.ParseColumnSpec(value)
			}
			if err != nil {
				_ = part.Close()
				s.failed(w, r, err)
				return
			}

		case partFile, partCamera:
			data, err := io.ReadAll(io.LimitReader(part, document.MaxDocumentBytes+1))
			if err != nil {
				_ = part.Close()
				s.failed(w, r, err)
				return
			}
			// Browsers send an empty part for an unused file input
			if len(data) == 0 && part.FileName() == "" {
				break
			}
			source := types.SourceUpload
			if part.FormName() == partCamera {
				source = types.SourceCamera
			}
			doc, err = document.FromBytes(data, part.Header.Get("Content-Type"), part.FileName(), source)
			if err != nil {
				_ = part.Close()
				s.failed(w, r, err)
				return
			}
			hasDoc = true

		case partDriveLink:
			link, err := readField(part)
			if err != nil {
				_ = part.Close()
				s.failed(w, r, err)
				return
			}
			if link == "" {
				break
			}
			if s.deps.Drive == nil {
				_ = part.Close()
				s.errorResponse(w, http.StatusServiceUnavailable, "drive links are not available (no service account configured)")
				return
			}
			doc, err = s.deps.Drive.Fetch(r.Context(), link)
			if err != nil {
				_ = part.Close()
				s.failed(w, r, err)
				return
			}
			hasDoc = true
		}
		_ = part.Close()

		if hasDoc {
			if prev, replaced := selected.Set(doc); replaced {
				log.Info("document source replaced",
					zap.String("previous", string(prev)),
					zap.String("current", string(doc.Source)),
				)
			}
		}
	}

	doc, ok := selected.Active()
	if !ok {
		s.failed(w, r, &ErrValidation{Field: "document", Message: "provide a file, camera or drive_link part"})
		return
	}

	result, err := s.deps.Orchestrator.Analyze(r.Context(), doc, cols)
	if err != nil {
		s.failed(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSave appends reviewed records to the spreadsheet.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	cols, err := s.columnsOrDefault(req.Columns)
	if err != nil {
		s.failed(w, r, err)
		return
	}

	result, err := s.deps.Orchestrator.Save(r.Context(), cols, req.Records, pipeline.SaveTarget{
		SpreadsheetName: req.SpreadsheetName,
		FolderID:        req.FolderID,
	})
	if err != nil {
		s.failed(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleExport returns the records as an .xlsx workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	cols, err := s.columnsOrDefault(req.Columns)
	if err != nil {
		s.failed(w, r, err)
		return
	}

	data, err := export.XLSXBytes(cols, req.Records)
	if err != nil {
		s.failed(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleCleanup deletes every spreadsheet owned by the service identity. With
// ?dry_run=true it only lists them.
func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	if s.deps.Cleaner == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "spreadsheet access is not configured")
		return
	}

	operator, _ := middleware.Operator(r)
	log := s.requestLogger(r).With(zap.String("operator", operator))

	if dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run")); dryRun {
		files, err := s.deps.Cleaner.ListOwned(r.Context())
		if err != nil {
			s.failed(w, r, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, OwnedResponse{Found: len(files), Files: files})
		return
	}

	log.Warn("deleting all owned spreadsheets")
	report, err := s.deps.Cleaner.DeleteAllOwned(r.Context())
	if err != nil {
		s.failed(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.failed(w, r, err)
		} else {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

func (s *Server) columnsOrDefault(names []string) (types.ColumnSpec, error) {
	if len(names) == 0 {
		return s.columns, nil
	}
	return types.NewColumnSpec(names)
}

func readField(part io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
