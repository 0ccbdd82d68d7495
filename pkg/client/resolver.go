package client

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/metaforge-io/metaforge/pkg/logger"
)

var resolverLog = logger.New("client:resolver")

// IsGUID reports whether s has the shape of a platform GUID. Callers that
// accept either a name or a GUID use this to pick the lookup path.
func IsGUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// validateGUID rejects identifiers that are not platform GUIDs before a
// request is built around them.
func validateGUID(guid string) error {
	if _, err := uuid.Parse(guid); err != nil {
		return invalidParameterError("%q is not a valid GUID", guid)
	}
	return nil
}

// NameLookup is the remote fallback a Resolver uses on a cache miss. It
// returns the stub for a qualified or display name, or a not-found error.
type NameLookup func(ctx context.Context, name string) (ElementStub, error)

// Resolver maps element names to GUIDs with a flat in-memory cache in front
// of a remote name lookup. Entries never expire; the cache lives for one CLI
// invocation or one markdown processing run. The map is guarded because
// bulk operations resolve names from worker goroutines.
type Resolver struct {
	lookup NameLookup

	mu    sync.RWMutex
	cache map[string]ElementStub
}

// NewResolver creates a resolver around the given remote lookup.
func NewResolver(lookup NameLookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		cache:  make(map[string]ElementStub),
	}
}

// Resolve returns the stub for name, consulting the cache first and falling
// back to the remote lookup. Unknown names return a not-found error.
func (r *Resolver) Resolve(ctx context.Context, name string) (ElementStub, error) {
	key := cacheKey(name)
	if key == "" {
		return ElementStub{}, invalidParameterError("element name is empty")
	}

	r.mu.RLock()
	stub, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		resolverLog.Printf("Cache hit for %q -> %s", name, stub.GUID)
		return stub, nil
	}

	stub, err := r.lookup(ctx, name)
	if err != nil {
		return ElementStub{}, err
	}

	r.mu.Lock()
	r.cache[key] = stub
	r.mu.Unlock()
	resolverLog.Printf("Resolved %q -> %s", name, stub.GUID)
	return stub, nil
}

// Known reports whether name is already cached, without touching the remote.
func (r *Resolver) Known(name string) (ElementStub, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stub, ok := r.cache[cacheKey(name)]
	return stub, ok
}

// Remember primes the cache with a stub, e.g. right after a create call
// returns the new element's GUID.
func (r *Resolver) Remember(name string, stub ElementStub) {
	key := cacheKey(name)
	if key == "" {
		return
	}
	r.mu.Lock()
	r.cache[key] = stub
	r.mu.Unlock()
}

// Forget drops a cached name, e.g. after a delete call.
func (r *Resolver) Forget(name string) {
	r.mu.Lock()
	delete(r.cache, cacheKey(name))
	r.mu.Unlock()
}

// Len returns the number of cached entries.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
