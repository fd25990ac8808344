package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hpungsan/promptlib/internal/ops"
)

// testApp runs CLI commands against one data directory.
type testApp struct {
	t       *testing.T
	dataDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return &testApp{t: t, dataDir: t.TempDir()}
}

// run executes args (without the program name) with stdin as piped input
// and returns stdout, stderr and the error from app.Run.
func (a *testApp) run(stdin string, args ...string) (string, string, error) {
	a.t.Helper()
	e := &env{}
	app := newCLIApp(e)
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.Reader = strings.NewReader(stdin)

	full := append([]string{"promptlib", "--data-dir", a.dataDir}, args...)
	err := app.Run(full)
	return stdout.String(), stderr.String(), err
}

// runJSON executes args, requires success and decodes stdout into v.
func (a *testApp) runJSON(v any, args ...string) {
	a.t.Helper()
	out, stderr, err := a.run("", args...)
	require.NoError(a.t, err, "stderr: %s", stderr)
	require.NoError(a.t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

func TestCLIFirstRunSeedsLibrary(t *testing.T) {
	app := newTestApp(t)

	var stats ops.StatsOutput
	app.runJSON(&stats, "stats")

	require.Equal(t, 3, stats.Counts.Categories)
	require.Equal(t, 4, stats.Counts.Prompts)
	require.Equal(t, 0, stats.Counts.Checkpoints)
	require.FileExists(t, filepath.Join(app.dataDir, "library.json"))
	require.Equal(t, filepath.Join(app.dataDir, "exports"), stats.ExportsDir)
}

func TestCLICategories(t *testing.T) {
	app := newTestApp(t)

	var added ops.AddCategoryOutput
	app.runJSON(&added, "categories", "add", "--kind", "checkpoint", "Release", "notes")
	require.Equal(t, "Release notes", added.Name)
	require.True(t, strings.HasPrefix(added.ID, "cpcat_"))

	var renamed ops.RenameCategoryOutput
	app.runJSON(&renamed, "categories", "rename", "--kind", "checkpoint", added.ID, "Releases")
	require.Equal(t, "Releases", renamed.Name)
	require.Equal(t, "Release notes", renamed.OldName)

	var list ops.ListCategoriesOutput
	app.runJSON(&list, "categories", "list", "--kind", "checkpoint")
	require.Len(t, list.Items, 4)
	require.Equal(t, "Releases", list.Items[3].Name)

	// Prompt namespace is untouched
	app.runJSON(&list, "categories", "list")
	require.Len(t, list.Items, 3)

	_, _, err := app.run("", "categories", "delete", "cat_work")
	require.Error(t, err)
	require.Contains(t, err.Error(), "[CATEGORY_IN_USE]")

	var deleted ops.DeleteCategoryOutput
	app.runJSON(&deleted, "categories", "delete", "--kind", "checkpoint", added.ID)
	require.True(t, deleted.Deleted)
}

func TestCLIPromptLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Body from stdin
	out, stderr, err := app.run("Summarize {{doc}}\n", "prompts", "new", "--category", "cat_scratch", "--title", "Summary")
	require.NoError(t, err, stderr)
	var created ops.CreatePromptOutput
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Equal(t, "cat_scratch", created.CategoryID)

	out, _, err = app.run("", "prompts", "show", "--raw", created.ID)
	require.NoError(t, err)
	require.Equal(t, "Summarize {{doc}}\n", out)

	// Body from flag; blank title keeps the old one
	var updated ops.UpdatePromptOutput
	app.runJSON(&updated, "prompts", "edit", "--title", " ", "--body", "Summarize <doc> briefly", created.ID)
	require.Equal(t, "Summary", updated.Title)

	var got ops.GetPromptOutput
	app.runJSON(&got, "prompts", "show", created.ID)
	require.Equal(t, "Summarize <doc> briefly", got.Body)
	require.Equal(t, "Scratch", got.CategoryName)

	var list ops.ListPromptsOutput
	app.runJSON(&list, "prompts", "list", "--category", "cat_scratch")
	require.Len(t, list.Items, 2)

	var deleted ops.DeletePromptOutput
	app.runJSON(&deleted, "prompts", "delete", created.ID)
	require.True(t, deleted.Deleted)

	_, _, err = app.run("", "prompts", "show", created.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "[NOT_FOUND]")
}

func TestCLIPromptEdit_NothingToUpdate(t *testing.T) {
	app := newTestApp(t)

	_, _, err := app.run("", "prompts", "edit", "p_risk_summary")
	require.Error(t, err)
	require.Contains(t, err.Error(), "[INVALID_REQUEST]")
}

func TestCLICheckpointLifecycle(t *testing.T) {
	app := newTestApp(t)

	out, stderr, err := app.run("where I left off", "checkpoints", "save", "--description", "friday")
	require.NoError(t, err, stderr)
	var saved ops.SaveCheckpointOutput
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.Equal(t, ops.DefaultCheckpointTitle, saved.Title)
	require.NotEmpty(t, saved.SavedAt)

	var updated ops.UpdateCheckpointOutput
	app.runJSON(&updated, "checkpoints", "edit", "--category", "cat_science", "--title", "Friday", saved.ID)
	require.Equal(t, "cat_science", updated.CategoryID)
	require.Equal(t, "Friday", updated.Title)

	var got ops.GetCheckpointOutput
	app.runJSON(&got, "checkpoints", "show", saved.ID)
	require.Equal(t, "friday", got.Description)
	require.Equal(t, "where I left off", got.Body)

	var list ops.ListCheckpointsOutput
	app.runJSON(&list, "checkpoints", "list")
	require.Len(t, list.Items, 1)

	var deleted ops.DeleteCheckpointOutput
	app.runJSON(&deleted, "checkpoints", "delete", saved.ID)
	require.True(t, deleted.Deleted)
}

func TestCLICopy(t *testing.T) {
	app := newTestApp(t)

	var copied string
	old := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = old })

	var result CopyOutput
	app.runJSON(&result, "prompts", "copy", "p_blank_scaffold")
	require.Equal(t, "p_blank_scaffold", result.ID)
	require.True(t, strings.HasPrefix(copied, "Context:"))
	require.Equal(t, len([]rune(copied)), result.Chars)
}

func TestCLIExportImport(t *testing.T) {
	app := newTestApp(t)

	var exp struct {
		Path string `json:"path"`
	}
	exportPath := filepath.Join(t.TempDir(), "backup.json")
	app.runJSON(&exp, "export", "--path", exportPath)
	require.Equal(t, exportPath, exp.Path)

	var reset ops.ResetOutput
	app.runJSON(&reset, "reset", "--mode", "clear", "--yes")
	require.Equal(t, 0, reset.Current.Prompts)

	var imp struct {
		Current struct {
			Prompts int `json:"prompts"`
		} `json:"current"`
		SnapshotID string `json:"snapshot_id"`
	}
	app.runJSON(&imp, "import", exportPath)
	require.Equal(t, 4, imp.Current.Prompts)
	require.NotEmpty(t, imp.SnapshotID)

	var snaps ops.ListSnapshotsOutput
	app.runJSON(&snaps, "snapshots", "list")
	require.Equal(t, 2, snaps.Pagination.Total)

	// Restoring the pre-import snapshot brings back the cleared library
	var restored ops.RestoreSnapshotOutput
	app.runJSON(&restored, "snapshots", "restore", imp.SnapshotID)
	require.Equal(t, 0, restored.Current.Prompts)
}

func TestCLIImport_FailureLeavesLibrary(t *testing.T) {
	app := newTestApp(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"categories": [], "prompts": [{"id": "x"}]}`), 0600))

	_, _, err := app.run("", "import", bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "[VALIDATION_ERROR]")

	var stats ops.StatsOutput
	app.runJSON(&stats, "stats")
	require.Equal(t, 4, stats.Counts.Prompts)
}

func TestCLIReset_RequiresConfirmation(t *testing.T) {
	app := newTestApp(t)

	_, _, err := app.run("", "reset", "--mode", "clear")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--yes")

	var stats ops.StatsOutput
	app.runJSON(&stats, "stats")
	require.Equal(t, 4, stats.Counts.Prompts)
}

func TestCLIValidate(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"meta":{"app":"x"},"data":{"categories":[],"prompts":[]}}`), 0600))
	var result ops.ValidateOutput
	app.runJSON(&result, "validate", good)
	require.True(t, result.Valid)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[1, 2]`), 0600))
	out, _, err := app.run("", "validate", bad)
	require.Error(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.False(t, result.Valid)
	require.Equal(t, "VALIDATION_ERROR", result.Code)
}

func TestCLIFormatYAML(t *testing.T) {
	app := newTestApp(t)

	out, _, err := app.run("", "--format", "yaml", "prompts", "show", "p_risk_summary")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, "p_risk_summary", got["id"])
	require.Equal(t, "Work / InfoSec", got["category_name"])
}

func TestCLIFormatUnknown(t *testing.T) {
	app := newTestApp(t)

	_, _, err := app.run("", "--format", "xml", "stats")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown format")
}

func TestCLICorruptLibraryWarns(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.dataDir, "library.json"), []byte("{not json"), 0600))

	out, stderr, err := app.run("", "stats")
	require.NoError(t, err)
	require.Contains(t, stderr, "warning:")

	var stats ops.StatsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 4, stats.Counts.Prompts)
	require.NotNil(t, stats.Snapshots)
	require.Equal(t, 1, *stats.Snapshots)
}

func TestReadStdinWithLimit(t *testing.T) {
	got, err := readStdin(strings.NewReader("small content"), 1000)
	require.NoError(t, err)
	require.Equal(t, "small content", got)

	_, err = readStdin(strings.NewReader(strings.Repeat("x", 100)), 50)
	require.Error(t, err)
}

func TestStdinHasData(t *testing.T) {
	require.True(t, stdinHasData(strings.NewReader("")))
	require.False(t, stdinHasData(nil))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	require.True(t, stdinHasData(r))
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"promptlib"}, false},
		{"prompts command", []string{"promptlib", "prompts"}, true},
		{"serve command", []string{"promptlib", "serve"}, true},
		{"mcp command", []string{"promptlib", "mcp"}, true},
		{"help flag", []string{"promptlib", "--help"}, true},
		{"version flag", []string{"promptlib", "--version"}, true},
		{"short help flag", []string{"promptlib", "-h"}, true},
		{"global flag first", []string{"promptlib", "--data-dir", "/tmp/x", "stats"}, true},
		{"global flag with value", []string{"promptlib", "--format=yaml", "stats"}, true},
		{"unknown arg defaults to MCP", []string{"promptlib", "--unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, isCLIMode(tt.args))
		})
	}
}
