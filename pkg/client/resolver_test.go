//go:build !integration

package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	t.Run("caches remote lookups", func(t *testing.T) {
		var lookups atomic.Int32
		r := NewResolver(func(ctx context.Context, name string) (ElementStub, error) {
			lookups.Add(1)
			return ElementStub{GUID: "g-1", DisplayName: name}, nil
		})

		first, err := r.Resolve(context.Background(), "Sustainability")
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), "Sustainability")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), lookups.Load())
	})

	t.Run("name matching ignores case and surrounding space", func(t *testing.T) {
		r := NewResolver(func(ctx context.Context, name string) (ElementStub, error) {
			return ElementStub{GUID: "g-1"}, nil
		})

		_, err := r.Resolve(context.Background(), "Sustainability")
		require.NoError(t, err)
		stub, ok := r.Known("  sustainability ")
		assert.True(t, ok)
		assert.Equal(t, "g-1", stub.GUID)
	})

	t.Run("propagates not found", func(t *testing.T) {
		r := NewResolver(func(ctx context.Context, name string) (ElementStub, error) {
			return ElementStub{}, newError(ErrorKindNotFound, "no such glossary")
		})

		_, err := r.Resolve(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("rejects empty names", func(t *testing.T) {
		r := NewResolver(nil)
		_, err := r.Resolve(context.Background(), "   ")
		require.Error(t, err)
		assert.True(t, IsInvalidParameter(err))
	})

	t.Run("remember and forget", func(t *testing.T) {
		r := NewResolver(func(ctx context.Context, name string) (ElementStub, error) {
			return ElementStub{}, newError(ErrorKindNotFound, "not found")
		})

		r.Remember("Ops Glossary", ElementStub{GUID: "g-2"})
		stub, ok := r.Known("Ops Glossary")
		require.True(t, ok)
		assert.Equal(t, "g-2", stub.GUID)

		r.Forget("Ops Glossary")
		_, ok = r.Known("Ops Glossary")
		assert.False(t, ok)
	})

	t.Run("safe under concurrent resolution", func(t *testing.T) {
		r := NewResolver(func(ctx context.Context, name string) (ElementStub, error) {
			return ElementStub{GUID: "g-" + name}, nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := r.Resolve(context.Background(), "shared-name")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, r.Len())
	})
}

func TestValidateGUID(t *testing.T) {
	assert.NoError(t, validateGUID("9f2d1a34-55aa-4b6c-9d0e-1234567890ab"))
	assert.Error(t, validateGUID("not-a-guid"))
	assert.Error(t, validateGUID(""))
}
