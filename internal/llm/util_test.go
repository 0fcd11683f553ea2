package llm

import (
	"errors"
	"testing"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n[{\"Email\": \"a@x.com\"}]\n```",
			expected: `[{"Email": "a@x.com"}]`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"Email\": \"a@x.com\"}\n```",
			expected: `{"Email": "a@x.com"}`,
		},
		{
			name:     "plain JSON array",
			input:    `[{"Email": "a@x.com"}]`,
			expected: `[{"Email": "a@x.com"}]`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n  {\"a\": \"b\"}  \n",
			expected: `{"a": "b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestCleanJSONBlock_PreambleText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before array",
			input:    "Here are the candidates:\n[{\"First Name\": \"Asha\"}]",
			expected: `[{"First Name": "Asha"}]`,
		},
		{
			name:     "trailing text",
			input:    "[{\"First Name\": \"Asha\"}]\n\nLet me know if you need anything else!",
			expected: `[{"First Name": "Asha"}]`,
		},
		{
			name:     "brackets inside strings",
			input:    `Result: {"note": "see [page 2] {draft}"}`,
			expected: `{"note": "see [page 2] {draft}"}`,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"message": "He said \"hi\""}`,
			expected: `{"message": "He said \"hi\""}`,
		},
		{
			name:     "no JSON at all",
			input:    "I cannot read this document",
			expected: "I cannot read this document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSONValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "object", input: `{"a": "b"} tail`, expected: `{"a": "b"}`},
		{name: "array of objects", input: `[{"id": 1}, {"id": 2}] x`, expected: `[{"id": 1}, {"id": 2}]`},
		{name: "nested", input: `[[1, 2], [3]]`, expected: `[[1, 2], [3]]`},
		{name: "unbalanced", input: `{"a": "b"`, expected: ""},
		{name: "empty", input: "", expected: ""},
		{name: "not JSON", input: "nope", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := extractJSONValue(tt.input); result != tt.expected {
				t.Errorf("extractJSONValue() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "single array", input: "```json\n[{\"A\": \"1\"}]\n```", expected: `[{"A": "1"}]`},
		{name: "trailing prose", input: `[{"A": "1"}] Hope this helps.`, expected: `[{"A": "1"}]`},
		{name: "adjacent objects", input: `{"A":"1"}{"A":"2"}`, wantErr: true},
		{name: "objects on separate lines", input: "{\"A\":\"1\"}\n{\"A\":\"2\"}", wantErr: true},
		{name: "comma separated", input: `{"A":"1"}, {"A":"2"}`, wantErr: true},
		{name: "second value inside fence", input: "```json\n{\"A\":\"1\"}\n{\"A\":\"2\"}\n```", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMultipleValues) {
					t.Fatalf("ExtractJSON() error = %v, want ErrMultipleValues", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON() unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExtractJSON() = %q, want %q", result, tt.expected)
			}
		})
	}
}
