package client

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

// pageFetch retrieves one page of elements starting at startFrom.
type pageFetch func(ctx context.Context, startFrom, pageSize int) ([]Element, error)

// fetchAllPages walks a paged list endpoint until a short page signals the
// end. pageSize of 0 uses the default.
func fetchAllPages(ctx context.Context, pageSize int, fetch pageFetch) ([]Element, error) {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var all []Element
	for startFrom := 0; ; startFrom += pageSize {
		page, err := fetch(ctx, startFrom, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// detailFetch retrieves the full element for one GUID.
type detailFetch func(ctx context.Context, guid string) (*Element, error)

// fetchDetails fans out per-GUID detail calls across a bounded worker pool
// and returns the elements in the input order. The first failure cancels the
// remaining work.
func fetchDetails(ctx context.Context, guids []string, workers int, fetch detailFetch) ([]Element, error) {
	if len(guids) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 4
	}

	results := make([]*Element, len(guids))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(workers).WithCancelOnError()
	for i, guid := range guids {
		p.Go(func(ctx context.Context) error {
			element, err := fetch(ctx, guid)
			if err != nil {
				return err
			}
			results[i] = element
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	elements := make([]Element, len(results))
	for i, e := range results {
		elements[i] = *e
	}
	return elements, nil
}
