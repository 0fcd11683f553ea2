// Package config provides configuration loading and validation for the scanner.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/y4jaiops/y4j-YouthScan/internal/types"
)

// Defaults used when neither the config file nor the environment provide a value.
const (
	DefaultSpreadsheetName = "Youth4Jobs_Candidates"
	DefaultFolderID        = "1Vavl3N2vLsJtIY7xdsrjB_fi2LMS1tfU"
	DefaultModel           = "gemini-2.5-flash"
	DefaultModelTimeout    = 90 * time.Second
	DefaultSheetsTimeout   = 30 * time.Second
	DefaultPort            = 8080
)

// DefaultColumns is the column list offered to operators out of the box.
var DefaultColumns = []string{
	"First Name", "Last Name", "ID Type", "ID Number", "Email", "PhoneNumber",
	"DateOfBirth", "Gender", "DisabilityType", "Qualification", "State",
}

// Config is the process configuration. It is built once at startup and handed to each
// component constructor; nothing reads it from global state.
type Config struct {
	// Model
	GeminiAPIKey string   `json:"gemini_api_key,omitempty"`
	Model        string   `json:"model,omitempty"`
	ModelTimeout Duration `json:"model_timeout,omitempty" validate:"gte=0"`

	// Google service identity
	ServiceAccountFile string `json:"service_account_file,omitempty"`
	ServiceAccountJSON string `json:"service_account_json,omitempty"`

	// Destination
	SpreadsheetName   string   `json:"spreadsheet_name,omitempty" validate:"omitempty,max=255"`
	FolderID          *string  `json:"folder_id,omitempty" validate:"omitempty,max=128"`
	Columns           []string `json:"columns,omitempty" validate:"omitempty,dive,max=200"`
	SheetsTimeout     Duration `json:"sheets_timeout,omitempty" validate:"gte=0"`
	HeaderFromColumns *bool    `json:"header_from_columns,omitempty"`

	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads "90s" style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\"")
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	headerFromColumns := true
	folderID := DefaultFolderID
	return Config{
		Model:             DefaultModel,
		ModelTimeout:      Duration(DefaultModelTimeout),
		SpreadsheetName:   DefaultSpreadsheetName,
		FolderID:          &folderID,
		Columns:           append([]string(nil), DefaultColumns...),
		SheetsTimeout:     Duration(DefaultSheetsTimeout),
		HeaderFromColumns: &headerFromColumns,
		Port:              DefaultPort,
	}
}

// Load builds the effective configuration: the optional JSON file at path, then
// environment variables for anything the file left empty, then built-in defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required secrets are checked by the components that need them, so a config without
// an API key is still valid for e.g. the cleanup command.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.ServiceAccountFile != "" && c.ServiceAccountJSON != "" {
		return fmt.Errorf("config error: 'service_account_file' and 'service_account_json' are mutually exclusive")
	}

	if c.ServiceAccountFile != "" {
		if _, err := os.Stat(c.ServiceAccountFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: service account file not found: %s", c.ServiceAccountFile)
		}
	}

	if len(c.Columns) > 0 {
		if _, err := types.NewColumnSpec(c.Columns); err != nil {
			return fmt.Errorf("config error: columns: %w", err)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ModelTimeout == 0 {
		result.ModelTimeout = defaults.ModelTimeout
	}
	if result.ServiceAccountFile == "" && result.ServiceAccountJSON == "" {
		result.ServiceAccountFile = defaults.ServiceAccountFile
		result.ServiceAccountJSON = defaults.ServiceAccountJSON
	}
	if result.SpreadsheetName == "" {
		result.SpreadsheetName = defaults.SpreadsheetName
	}
	if result.FolderID == nil {
		result.FolderID = defaults.FolderID
	}
	if len(result.Columns) == 0 {
		result.Columns = append([]string(nil), defaults.Columns...)
	}
	if result.SheetsTimeout == 0 {
		result.SheetsTimeout = defaults.SheetsTimeout
	}
	if result.HeaderFromColumns == nil {
		result.HeaderFromColumns = defaults.HeaderFromColumns
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bools cannot distinguish unset from false, so Verbose is never merged.

	return result
}

// ColumnSpec returns the configured columns as a normalized ColumnSpec.
func (c *Config) ColumnSpec() (types.ColumnSpec, error) {
	return types.NewColumnSpec(c.Columns)
}

// Folder returns the Drive folder that scopes spreadsheet lookup and creation.
// An explicitly empty folder_id (or DRIVE_FOLDER_ID="") means no folder scope.
func (c *Config) Folder() string {
	if c.FolderID == nil {
		return ""
	}
	return strings.TrimSpace(*c.FolderID)
}

// HeaderFromColumnSpec reports whether a new sheet's header comes from the column list
// rather than from the first saved record.
func (c *Config) HeaderFromColumnSpec() bool {
	return c.HeaderFromColumns == nil || *c.HeaderFromColumns
}
