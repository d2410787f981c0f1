package sync

import "context"

// Page — одна страница каталога офферов площадки. Пустой NextCursor
// означает, что каталог вычитан до конца.
type Page struct {
	OfferIDs   []string
	NextCursor string
}

// PageFetcher walks a paginated offer listing. Implementations own the
// wire format and authentication; termination is cursor-driven only.
type PageFetcher interface {
	FetchPage(ctx context.Context, cursor string) (Page, error)
}

// CollectOfferIDs accumulates every offer id the marketplace lists for
// the seller, page by page, starting from the empty cursor. A fetch
// error aborts the walk and propagates unchanged: a partial listing is
// never returned.
func CollectOfferIDs(ctx context.Context, fetcher PageFetcher) ([]string, error) {
	var offerIDs []string
	cursor := ""
	for {
		page, err := fetcher.FetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		offerIDs = append(offerIDs, page.OfferIDs...)
		if page.NextCursor == "" {
			return offerIDs, nil
		}
		cursor = page.NextCursor
	}
}
