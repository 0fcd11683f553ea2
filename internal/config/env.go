package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names understood by ApplyEnv.
const (
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvModel              = "GEMINI_MODEL"
	EnvModelTimeout       = "MODEL_TIMEOUT"
	EnvServiceAccountFile = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvServiceAccountJSON = "GOOGLE_SERVICE_ACCOUNT_JSON"
	EnvSpreadsheetName    = "SPREADSHEET_NAME"
	EnvFolderID           = "DRIVE_FOLDER_ID"
	EnvColumns            = "EXTRACT_COLUMNS"
	EnvSheetsTimeout      = "SHEETS_TIMEOUT"
	EnvHeaderFromColumns  = "HEADER_FROM_COLUMNS"
	EnvPort               = "PORT"
)

// ApplyEnv fills fields that are still empty from the environment.
func (c *Config) ApplyEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if c.Model == "" {
		c.Model = os.Getenv(EnvModel)
	}
	if c.ModelTimeout == 0 {
		c.ModelTimeout = Duration(getEnvDuration(EnvModelTimeout, 0))
	}
	if c.ServiceAccountFile == "" && c.ServiceAccountJSON == "" {
		c.ServiceAccountJSON = os.Getenv(EnvServiceAccountJSON)
		if c.ServiceAccountJSON == "" {
			c.ServiceAccountFile = os.Getenv(EnvServiceAccountFile)
		}
	}
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = os.Getenv(EnvSpreadsheetName)
	}
	if c.FolderID == nil {
		if value, ok := os.LookupEnv(EnvFolderID); ok {
			c.FolderID = &value
		}
	}
	if len(c.Columns) == 0 {
		if raw := os.Getenv(EnvColumns); raw != "" {
			c.Columns = strings.Split(raw, ",")
		}
	}
	if c.SheetsTimeout == 0 {
		c.SheetsTimeout = Duration(getEnvDuration(EnvSheetsTimeout, 0))
	}
	if c.HeaderFromColumns == nil {
		if value := os.Getenv(EnvHeaderFromColumns); value != "" {
			if b, err := strconv.ParseBool(value); err == nil {
				c.HeaderFromColumns = &b
			}
		}
	}
	if c.Port == 0 {
		c.Port = getEnvInt(EnvPort, 0)
	}
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
