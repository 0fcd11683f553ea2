package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCommand_RequiresSource(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail without --file or --drive-link")
	assert.Contains(t, string(output), "file")
}

func TestAnalyzeCommand_SourcesMutuallyExclusive(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze", "--file", "a.png", "--drive-link", "https://drive.google.com/file/d/x/view")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "drive-link")
}

func TestSaveCommand_MissingInFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "save")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "in")
}

func TestTokenCommand_MissingOperator(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "token")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "operator")
}
