//go:build !integration

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGUID = "9f2d1a34-55aa-4b6c-9d0e-1234567890ab"

func TestGlossaryCreate(t *testing.T) {
	t.Run("returns guid and primes resolver", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v3/glossaries/viewserver", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			props := body["properties"].(map[string]any)
			assert.Equal(t, "Sustainability", props["displayName"])
			fmt.Fprintf(w, `{"relatedHTTPCode":200,"guid":%q}`, testGUID)
		}))

		glossaries := c.Glossaries()
		guid, err := glossaries.Create(context.Background(), GlossaryProperties{
			DisplayName: "Sustainability",
			Description: "Terms for sustainability reporting",
		})
		require.NoError(t, err)
		assert.Equal(t, testGUID, guid)

		stub, ok := glossaries.Resolver().Known("Sustainability")
		require.True(t, ok)
		assert.Equal(t, testGUID, stub.GUID)
	})

	t.Run("rejects empty display name locally", func(t *testing.T) {
		c := New("http://127.0.0.1:1", "viewserver", "tester")
		_, err := c.Glossaries().Create(context.Background(), GlossaryProperties{})
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err))
	})
}

func TestGlossaryGetByName(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/glossaries/viewserver/by-name", r.URL.Path)
		fmt.Fprintf(w, `{"relatedHTTPCode":200,"element":{
			"elementHeader":{"guid":%q,"typeName":"Glossary"},
			"properties":{"qualifiedName":"Glossary::Sustainability","displayName":"Sustainability"}}}`, testGUID)
	}))

	element, err := c.Glossaries().GetByName(context.Background(), "Sustainability")
	require.NoError(t, err)
	assert.Equal(t, testGUID, element.Header.GUID)

	var props GlossaryProperties
	require.NoError(t, element.DecodeProperties(&props))
	assert.Equal(t, "Sustainability", props.DisplayName)
	assert.Equal(t, "Glossary::Sustainability", props.QualifiedName)
}

func TestGlossaryFindAll(t *testing.T) {
	t.Run("pages until a short page", func(t *testing.T) {
		// Serve two full pages of 100 then a short page of 5.
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			startFrom := int(body["startFrom"].(float64))
			pageSize := int(body["pageSize"].(float64))

			count := pageSize
			if startFrom >= 200 {
				count = 5
			}
			elements := make([]map[string]any, count)
			for i := range elements {
				elements[i] = map[string]any{
					"elementHeader": map[string]any{
						"guid":     fmt.Sprintf("00000000-0000-4000-8000-%012d", startFrom+i),
						"typeName": "Glossary",
					},
					"properties": map[string]any{"displayName": "g" + strconv.Itoa(startFrom+i)},
				}
			}
			payload, _ := json.Marshal(map[string]any{"relatedHTTPCode": 200, "elementList": elements})
			w.Write(payload)
		}))

		all, err := c.Glossaries().FindAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 205)
	})

	t.Run("empty result", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"relatedHTTPCode":200}`)
		}))

		all, err := c.Glossaries().FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGlossaryDelete(t *testing.T) {
	t.Run("passes cascade flag", func(t *testing.T) {
		var gotQuery string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			fmt.Fprint(w, `{"relatedHTTPCode":200}`)
		}))

		require.NoError(t, c.Glossaries().Delete(context.Background(), testGUID, true))
		assert.Equal(t, "cascade=true", gotQuery)
	})

	t.Run("rejects malformed guid locally", func(t *testing.T) {
		c := New("http://127.0.0.1:1", "viewserver", "tester")
		err := c.Glossaries().Delete(context.Background(), "nope", false)
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err))
	})
}

func TestTermDetailsFanOut(t *testing.T) {
	guids := []string{
		"00000000-0000-4000-8000-000000000001",
		"00000000-0000-4000-8000-000000000002",
		"00000000-0000-4000-8000-000000000003",
	}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Path: /api/v3/terms/viewserver/{guid}/retrieve
		guid := r.URL.Path[len("/api/v3/terms/viewserver/") : len(r.URL.Path)-len("/retrieve")]
		fmt.Fprintf(w, `{"relatedHTTPCode":200,"element":{
			"elementHeader":{"guid":%q,"typeName":"GlossaryTerm"},
			"properties":{"displayName":"term"}}}`, guid)
	}))

	elements, err := c.Terms().Details(context.Background(), guids)
	require.NoError(t, err)
	require.Len(t, elements, 3)
	// Results come back in input order regardless of completion order.
	for i, e := range elements {
		assert.Equal(t, guids[i], e.Header.GUID)
	}
}

func TestCheckPlatformVersion(t *testing.T) {
	assert.NoError(t, CheckPlatformVersion("5.2.0"))
	assert.NoError(t, CheckPlatformVersion("v5.1.0"))
	assert.Error(t, CheckPlatformVersion("5.0.9"))
	assert.Error(t, CheckPlatformVersion("next"))
}
