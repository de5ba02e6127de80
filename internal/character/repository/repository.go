// Package repository exposes the character queries the gateway answers
// from the upstream API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rickmorty/internal/character/models"
	"rickmorty/internal/character/upstream"
)

const charactersPath = "character"

// Fetcher performs a GET against the upstream API and decodes the body.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values) (*upstream.Payload, error)
}

var _ Fetcher = (*upstream.Client)(nil)

// Repository reads characters from upstream. It keeps no state between calls.
type Repository struct {
	fetcher Fetcher
}

// New creates a repository over fetcher.
func New(fetcher Fetcher) *Repository {
	return &Repository{fetcher: fetcher}
}

// ListAll returns every character on the collection endpoint, in upstream order.
func (r *Repository) ListAll(ctx context.Context) (models.Collection, error) {
	return r.list(ctx, nil)
}

// ListByStatus asks upstream for characters with the given status. The status
// is sent verbatim and the result is returned unfiltered; matching is
// upstream's concern.
func (r *Repository) ListByStatus(ctx context.Context, status string) (models.Collection, error) {
	return r.list(ctx, url.Values{"status": {status}})
}

// GetByID returns one character. An upstream 404, an empty body, or a
// non-positive id fails with *models.NotFoundError.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.Character, error) {
	if id <= 0 {
		return nil, &models.NotFoundError{ID: id}
	}

	payload, err := r.fetcher.Fetch(ctx, charactersPath+"/"+strconv.Itoa(id), nil)
	if err != nil {
		var upstreamErr *models.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == http.StatusNotFound {
			return nil, &models.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get character %d: %w", id, err)
	}

	switch payload.Kind {
	case upstream.KindEmpty:
		return nil, &models.NotFoundError{ID: id}
	case upstream.KindCharacter:
		return payload.Character, nil
	default:
		return nil, models.NewDecodeError("id", payload.Raw, fmt.Errorf("expected a character object for id %d, got a collection", id))
	}
}

func (r *Repository) list(ctx context.Context, query url.Values) (models.Collection, error) {
	payload, err := r.fetcher.Fetch(ctx, charactersPath, query)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	if payload.Kind != upstream.KindCollection {
		return nil, models.NewDecodeError("results", payload.Raw, errors.New("missing required field"))
	}
	return payload.Results, nil
}
