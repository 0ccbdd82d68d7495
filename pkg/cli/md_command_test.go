//go:build !integration

package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A process run that fails mid-document must still write the provenance for
// the commands that did run, or the created elements become untracked.
func TestMDProcessWritesPartialOutput(t *testing.T) {
	const glossaryGUID = "33333333-3333-4333-8333-333333333333"

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/glossaries/viewserver/by-name", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/api/v3/terms/viewserver/by-name", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/api/v3/glossaries/viewserver", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"relatedHTTPCode":200,"guid":%q}`, glossaryGUID)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	document := `# Create Glossary

## Glossary Name

Ops

# Create Term

## Term Name

Uptime

## Glossary Name

Missing
`
	dir := t.TempDir()
	docPath := filepath.Join(dir, "commands.md")
	require.NoError(t, os.WriteFile(docPath, []byte(document), 0o644))
	outPath := filepath.Join(dir, "commands.out.md")

	root := NewRootCmd()
	root.SetArgs([]string{"md", "process", docPath,
		"--output", outPath,
		"--config", filepath.Join(dir, "no-such-config.yaml"),
		"--url", server.URL, "--server", "viewserver", "--user", "tester", "--token", "tok"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve glossary")

	// The glossary was created before the term failed; its provenance must
	// be on disk.
	written, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(written), "# Update Glossary")
	assert.Contains(t, string(written), glossaryGUID)
}
