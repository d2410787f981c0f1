package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages   map[string]Page
	err     error
	cursors []string
}

func (f *fakeFetcher) FetchPage(_ context.Context, cursor string) (Page, error) {
	f.cursors = append(f.cursors, cursor)
	if f.err != nil {
		return Page{}, f.err
	}
	return f.pages[cursor], nil
}

func TestCollectOfferIDs(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]Page{
		"":   {OfferIDs: []string{"A", "B"}, NextCursor: "p2"},
		"p2": {OfferIDs: []string{"C"}, NextCursor: ""},
	}}

	known, err := CollectOfferIDs(context.Background(), fetcher)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, known)
	assert.Equal(t, []string{"", "p2"}, fetcher.cursors)
}

func TestCollectOfferIDsEmptyCatalog(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]Page{
		"": {},
	}}

	known, err := CollectOfferIDs(context.Background(), fetcher)
	require.NoError(t, err)
	assert.Empty(t, known)
	assert.Len(t, fetcher.cursors, 1)
}

func TestCollectOfferIDsPropagatesError(t *testing.T) {
	fetchErr := errors.New("status 503")
	fetcher := &fakeFetcher{err: fetchErr}

	known, err := CollectOfferIDs(context.Background(), fetcher)
	require.ErrorIs(t, err, fetchErr)
	assert.Nil(t, known)
}
