package aws

import (
	"context"
	"iter"
)

// FetchPage retrieves one page of results. It receives the continuation token
// from the previous page (nil on the first call) and returns the page items,
// the next token (nil or empty when no pages remain), and any error.
type FetchPage[T any] func(token *string) ([]T, *string, error)

// Paginate collects all pages of a token-paginated AWS list call. Errors from
// any page propagate unmodified and already-collected pages are discarded.
// An empty first page with no token yields an empty, non-nil-error result
// after a single call.
func Paginate[T any](ctx context.Context, fetch FetchPage[T]) ([]T, error) {
	var all []T
	var token *string
	for {
		items, next, err := fetch(token)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == nil || *next == "" {
			return all, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		token = next
	}
}

// PaginateIter streams a token-paginated list call as an iterator. Pages are
// fetched lazily, so breaking out of the range stops further API calls. A
// fetch error is yielded once with a zero value and ends the sequence.
func PaginateIter[T any](ctx context.Context, fetch FetchPage[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var token *string
		for {
			items, next, err := fetch(token)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if next == nil || *next == "" {
				return
			}
			if err := ctx.Err(); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			token = next
		}
	}
}

// CollectWithLimit drains seq into a slice, stopping after limit items.
// A limit of 0 collects everything.
func CollectWithLimit[T any](seq iter.Seq2[T, error], limit int) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

// PaginateMarker collects all pages of a marker-paginated list call
// (Marker/NextMarker or IsTruncated style APIs). Semantics match Paginate.
func PaginateMarker[T any](ctx context.Context, fetch FetchPage[T]) ([]T, error) {
	return Paginate(ctx, fetch)
}
