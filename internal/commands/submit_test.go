package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportedFiles(t *testing.T, cfg string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(filepath.Dir(cfg), "exports"))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSubmit_NoEntries(t *testing.T) {
	cfg := initProject(t)

	_, err := runLoonies(t, "", "--config", cfg, "submit", "--yes")
	require.Error(t, err)
	assert.Equal(t, "No entries to submit", err.Error())
}

func TestSubmit_FileSink(t *testing.T) {
	cfg := initProject(t, "--sink", "file")
	_, err := runLoonies(t, "", "--config", cfg, "set", "biweeklyPaycheque", "2000")
	require.NoError(t, err)
	_, err = runLoonies(t, "", "--config", cfg, "set", "rentMortgage", "1500")
	require.NoError(t, err)

	out, err := runLoonies(t, "", "--config", cfg, "submit", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Bi-weekly Paycheque")
	assert.Contains(t, out, "Submitted 2 entries to file")

	names := exportedFiles(t, cfg)
	require.Len(t, names, 3)

	var jsonName string
	for _, n := range names {
		if filepath.Ext(n) == ".json" {
			jsonName = n
		}
	}
	require.NotEmpty(t, jsonName)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(cfg), "exports", jsonName))
	require.NoError(t, err)
	var doc struct {
		Version     int    `json:"version"`
		SubmittedAt string `json:"submittedAt"`
		Entries     []struct {
			Field string `json:"field"`
		} `json:"entries"`
		Totals struct {
			Income json.Number `json:"income"`
			Net    json.Number `json:"net"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 1, doc.Version)
	assert.Len(t, doc.Entries, 2)
	assert.Equal(t, "4333.33", doc.Totals.Income.String())
	assert.Equal(t, "2833.33", doc.Totals.Net.String())
	assert.Contains(t, out, "Submitted at "+doc.SubmittedAt, "the delivered document is the one previewed")
}

func TestSubmit_Prompt(t *testing.T) {
	cfg := initProject(t, "--sink", "file")
	_, err := runLoonies(t, "", "--config", cfg, "set", "groceries", "600")
	require.NoError(t, err)

	out, err := runLoonies(t, "no\n", "--config", cfg, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Submit these entries? [y/N]")
	assert.Contains(t, out, "Submission cancelled")
	assert.Empty(t, exportedFiles(t, cfg))

	out, err = runLoonies(t, "y\n", "--config", cfg, "submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted 1 entries to file")
	assert.Len(t, exportedFiles(t, cfg), 3)
}

func TestSubmit_LogSink(t *testing.T) {
	cfg := initProject(t)
	t.Setenv("LOONIES_LOG_LEVEL", "info")
	_, err := runLoonies(t, "", "--config", cfg, "set", "groceries", "600")
	require.NoError(t, err)

	out, err := runLoonies(t, "", "--config", cfg, "submit", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "serialized entries")
	assert.Contains(t, out, "Submitted 1 entries to log")
}
