//go:build !integration

package mdcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metaforge-io/metaforge/pkg/client"
)

const (
	glossaryGUID = "11111111-1111-4111-8111-111111111111"
	termGUID     = "22222222-2222-4222-8222-222222222222"
)

// fakePlatform is a minimal in-memory view server for processor tests.
type fakePlatform struct {
	mux        *http.ServeMux
	calls      atomic.Int32
	elements   map[string]client.ElementStub // name -> stub
	created    []string
	updated    []string
}

func newFakePlatform(t *testing.T) (*fakePlatform, *client.Client) {
	t.Helper()
	fp := &fakePlatform{
		mux:      http.NewServeMux(),
		elements: map[string]client.ElementStub{},
	}

	byName := func(w http.ResponseWriter, r *http.Request) {
		fp.calls.Add(1)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		name, _ := body["name"].(string)
		stub, ok := fp.elements[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"relatedHTTPCode":200,"element":{
			"elementHeader":{"guid":%q,"typeName":%q},
			"properties":{"qualifiedName":%q,"displayName":%q}}}`,
			stub.GUID, stub.TypeName, stub.QualifiedName, stub.DisplayName)
	}
	create := func(guid string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			fp.calls.Add(1)
			fp.created = append(fp.created, r.URL.Path)
			fmt.Fprintf(w, `{"relatedHTTPCode":200,"guid":%q}`, guid)
		}
	}
	ok := func(w http.ResponseWriter, r *http.Request) {
		fp.calls.Add(1)
		fp.updated = append(fp.updated, r.URL.Path)
		fmt.Fprint(w, `{"relatedHTTPCode":200}`)
	}

	fp.mux.HandleFunc("/api/v3/glossaries/viewserver/by-name", byName)
	fp.mux.HandleFunc("/api/v3/terms/viewserver/by-name", byName)
	fp.mux.HandleFunc("/api/v3/categories/viewserver/by-name", byName)
	fp.mux.HandleFunc("/api/v3/projects/viewserver/by-name", byName)
	fp.mux.HandleFunc("/api/v3/solution-blueprints/viewserver/by-name", byName)
	fp.mux.HandleFunc("/api/v3/glossaries/viewserver", create(glossaryGUID))
	fp.mux.HandleFunc("/api/v3/terms/viewserver", create(termGUID))
	fp.mux.HandleFunc("/", ok)

	server := httptest.NewServer(fp.mux)
	t.Cleanup(server.Close)
	return fp, client.New(server.URL, "viewserver", "tester", client.WithMaxRetries(0))
}

const createDocument = `# Create Glossary

## Glossary Name

Ops

## Description

Operational terms.

# Create Term

## Term Name

Uptime

## Glossary Name

Ops
`

func TestProcessDocumentDisplay(t *testing.T) {
	fp, c := newFakePlatform(t)
	p := NewProcessor(c)

	result, err := p.ProcessDocument(context.Background(), createDocument, DirectiveDisplay)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Report.Commands)
	assert.Contains(t, result.Output, "# Create Glossary")
	assert.Contains(t, result.Output, "# Create Term")
	// Display must not touch the platform.
	assert.Equal(t, int32(0), fp.calls.Load())
}

func TestProcessDocumentDirectiveOverride(t *testing.T) {
	pinned := "---\ndirective: display\n---\n\n# Create Glossary\n\n## Glossary Name\n\nOps\n"

	t.Run("frontmatter can weaken the directive", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(), pinned, DirectiveProcess)
		require.NoError(t, err)
		assert.Contains(t, result.Output, "# Create Glossary")
		assert.Equal(t, int32(0), fp.calls.Load(), "pinned display document must stay local")
	})

	t.Run("frontmatter cannot escalate", func(t *testing.T) {
		escalating := "---\ndirective: process\n---\n\n# Create Glossary\n\n## Glossary Name\n\nOps\n"
		fp, c := newFakePlatform(t)
		p := NewProcessor(c)

		_, err := p.ProcessDocument(context.Background(), escalating, DirectiveDisplay)
		require.NoError(t, err)
		assert.Equal(t, int32(0), fp.calls.Load())
	})

	t.Run("unknown directive in frontmatter is an error", func(t *testing.T) {
		bad := "---\ndirective: destroy\n---\n\n# Create Glossary\n\n## Glossary Name\n\nOps\n"
		_, c := newFakePlatform(t)
		p := NewProcessor(c)

		_, err := p.ProcessDocument(context.Background(), bad, DirectiveProcess)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown directive")
	})
}

func TestProcessDocumentValidate(t *testing.T) {
	t.Run("clean document passes", func(t *testing.T) {
		_, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(), createDocument, DirectiveValidate)
		require.NoError(t, err)
		assert.True(t, result.Report.OK())
		assert.Contains(t, result.Output, "validation passed")
	})

	t.Run("create of existing element becomes a notice", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		fp.elements["Ops"] = client.ElementStub{
			GUID: glossaryGUID, TypeName: "Glossary",
			QualifiedName: "Glossary::ops", DisplayName: "Ops",
		}
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(),
			"# Create Glossary\n\n## Glossary Name\n\nOps\n", DirectiveValidate)
		require.NoError(t, err)
		assert.True(t, result.Report.OK())
		require.Len(t, result.Report.Notices, 1)
		assert.Contains(t, result.Report.Notices[0], "already exists")
	})

	t.Run("update of missing element is an error", func(t *testing.T) {
		_, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(),
			"# Update Glossary\n\n## Glossary Name\n\nGhost\n", DirectiveValidate)
		require.NoError(t, err)
		assert.False(t, result.Report.OK())
		assert.Contains(t, result.Report.Err().Error(), "does not exist")
	})

	t.Run("upsert turns missing update into create", func(t *testing.T) {
		_, c := newFakePlatform(t)
		p := NewProcessor(c, WithUpsert())

		result, err := p.ProcessDocument(context.Background(),
			"# Update Glossary\n\n## Glossary Name\n\nGhost\n", DirectiveValidate)
		require.NoError(t, err)
		assert.True(t, result.Report.OK())
		require.Len(t, result.Report.Notices, 1)
		assert.Contains(t, result.Report.Notices[0], "will create")
	})

	t.Run("schema errors are reported with line numbers", func(t *testing.T) {
		_, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(),
			"# Create Term\n\n## Term Name\n\nOrphan\n", DirectiveValidate)
		require.NoError(t, err)
		assert.False(t, result.Report.OK())
		assert.Contains(t, result.Report.Err().Error(), "line 1")
	})
}

func TestProcessDocumentProcess(t *testing.T) {
	t.Run("creates glossary then term", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(), createDocument, DirectiveProcess)
		require.NoError(t, err)
		require.Len(t, fp.created, 2)
		assert.Equal(t, "/api/v3/glossaries/viewserver", fp.created[0])
		assert.Equal(t, "/api/v3/terms/viewserver", fp.created[1])

		// Output round-trips as an update document with provenance.
		assert.Contains(t, result.Output, "# Update Glossary")
		assert.Contains(t, result.Output, "# Update Term")
		assert.Contains(t, result.Output, glossaryGUID)
		assert.Contains(t, result.Output, termGUID)
		assert.Contains(t, result.Output, "Term::ops::uptime")
	})

	t.Run("notices record the action as executed", func(t *testing.T) {
		_, c := newFakePlatform(t)
		p := NewProcessor(c)

		result, err := p.ProcessDocument(context.Background(),
			"# Create Glossary\n\n## Glossary Name\n\nOps\n", DirectiveProcess)
		require.NoError(t, err)
		// The output is rewritten to an update document, but the notice
		// still names the create that actually ran.
		assert.Contains(t, result.Output, "# Update Glossary")
		require.Len(t, result.Report.Notices, 1)
		assert.Contains(t, result.Report.Notices[0], "Create Glossary")
		assert.Contains(t, result.Report.Notices[0], glossaryGUID)
	})

	t.Run("failure mid-document keeps the partial result", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		p := NewProcessor(c)

		document := createDocument + "\n# Create Term\n\n## Term Name\n\nLatency\n\n## Glossary Name\n\nMissing\n"
		result, err := p.ProcessDocument(context.Background(), document, DirectiveProcess)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot resolve glossary")
		require.NotNil(t, result)
		// Provenance for the commands that did run survives the failure.
		assert.Contains(t, result.Output, "# Update Glossary")
		assert.Contains(t, result.Output, glossaryGUID)
		require.Len(t, fp.created, 2)
	})

	t.Run("create of existing element updates instead", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		fp.elements["Ops"] = client.ElementStub{
			GUID: glossaryGUID, TypeName: "Glossary",
			QualifiedName: "Glossary::ops", DisplayName: "Ops",
		}
		p := NewProcessor(c)

		_, err := p.ProcessDocument(context.Background(),
			"# Create Glossary\n\n## Glossary Name\n\nOps\n", DirectiveProcess)
		require.NoError(t, err)
		assert.Empty(t, fp.created)
		require.Len(t, fp.updated, 1)
		assert.Contains(t, fp.updated[0], glossaryGUID)
	})

	t.Run("frontmatter supplies the default glossary", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		fp.elements["Sustainability"] = client.ElementStub{
			GUID: glossaryGUID, TypeName: "Glossary",
			QualifiedName: "Glossary::sustainability", DisplayName: "Sustainability",
		}
		p := NewProcessor(c)

		_, err := p.ProcessDocument(context.Background(), `---
glossary: Sustainability
---

# Create Term

## Term Name

Carbon Intensity
`, DirectiveProcess)
		require.NoError(t, err)
		require.Len(t, fp.created, 1)
		assert.Equal(t, "/api/v3/terms/viewserver", fp.created[0])
	})

	t.Run("validation failure stops before any call", func(t *testing.T) {
		fp, c := newFakePlatform(t)
		p := NewProcessor(c)

		_, err := p.ProcessDocument(context.Background(),
			"# Create Term\n\n## Term Name\n\nOrphan\n", DirectiveProcess)
		require.Error(t, err)
		assert.Empty(t, fp.created)
		assert.Empty(t, fp.updated)
	})
}
