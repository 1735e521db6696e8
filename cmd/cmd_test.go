package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dictionaryServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// execute runs the root command with an isolated config file and database.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(""), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestProcessCommand_Stdin(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"gray": "grey"}`)

	out, err := execute(t, "<p>The colour should be gray.</p>",
		"process", "--dictionary-url", url, "--format", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p>The colour should be grey.</p>\n", out)
}

func TestProcessCommand_FileAndOutput(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"color": "colour"}`)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.html")
	outPath := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(in, []byte("<h3>Output:</h3><p>One color. Two.</p><ul><li>Note: x</li></ul>"), 0o600))

	out, err := execute(t, "", "process", in, "--dictionary-url", url, "--format", "html", "--output", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "<p>One colour.</p><p>Two.</p><ul><li><strong>Note:</strong> x</li></ul>\n", string(written))

	processCmd.Flags().Set("output", "")
}

func TestProcessCommand_URLMainContent(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"color": "colour"}`)
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html><body><nav>color menu</nav><main><p>A color. B.</p></main></body></html>")
	}))
	defer page.Close()

	out, err := execute(t, "", "process", page.URL, "--main", "--dictionary-url", url, "--format", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p>A colour.</p><p>B.</p>\n", out)

	processCmd.Flags().Set("main", "false")
}

func TestProcessCommand_FetchFailure(t *testing.T) {
	url := dictionaryServer(t, http.StatusNotFound, "")

	out, err := execute(t, "<p>gray</p>", "process", "--dictionary-url", url, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve the dictionary file")
	assert.Empty(t, out)
}

func TestProcessCommand_ParseFailure(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `["gray"]`)

	out, err := execute(t, "<p>gray</p>", "process", "--dictionary-url", url, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
	assert.Empty(t, out)
}

func TestProcessCommand_BadFormat(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{}`)

	_, err := execute(t, "<p>x</p>", "process", "--dictionary-url", url, "--format", "pdf")
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"gray": "grey", "color": "colour"}`)

	out, err := execute(t, "", "convert", "--dictionary-url", url, "Gray", "color")
	require.NoError(t, err)
	assert.Equal(t, "grey colour\n", out)
}

func TestLookupCommand(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"tire": "tyre"}`)

	out, err := execute(t, "", "lookup", "--dictionary-url", url, "tire")
	require.NoError(t, err)
	assert.Equal(t, "tire -> tyre\n", out)

	out, err = execute(t, "", "lookup", "--dictionary-url", url, "truck")
	require.NoError(t, err)
	assert.Contains(t, out, "No British equivalent")
}

func TestDictCommands_Snapshot(t *testing.T) {
	url := dictionaryServer(t, http.StatusOK, `{"gray": "grey", "center": "centre"}`)
	db := filepath.Join(t.TempDir(), "ukify.db")

	out, err := execute(t, "", "dict", "info", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshot stored")

	out, err = execute(t, "", "dict", "pull", "--dictionary-url", url, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 2 terms")

	out, err = execute(t, "", "dict", "info", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Terms:    2")

	out, err = execute(t, "<p>The center is gray.</p>", "process", "--dictionary-url", "snapshot:", "--db", db, "--format", "html")
	require.NoError(t, err)
	assert.Equal(t, "<p>The centre is grey.</p>\n", out)

	out, err = execute(t, "", "dict", "list", "--dictionary-url", "snapshot:", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "center")
	assert.Contains(t, out, "centre")

	out, err = execute(t, "", "dict", "clean", "--yes", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = execute(t, "<p>x</p>", "process", "--dictionary-url", "snapshot:", "--db", db, "--format", "html")
	assert.Error(t, err)
}

func TestCleanCommand_Cancelled(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ukify.db")
	cleanCmd.Flags().Set("yes", "false")

	out, err := execute(t, "no\n", "dict", "clean", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Clean operation cancelled.")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
