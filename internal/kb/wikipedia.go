package kb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type extractsResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary returns the plain-text introduction of the Wikipedia article
// linked to the entity. ErrNotFound means the entity has no article in
// the configured language.
func (c *Client) Summary(ctx context.Context, entityRef string) (string, error) {
	title, err := c.articleTitle(ctx, entityRef)
	if err != nil {
		return "", err
	}

	extract, err := c.extract(ctx, title)
	if err != nil {
		return "", err
	}

	// The extracts API occasionally returns an empty intro for pages it
	// cannot render; fall back to parsing the article lead directly.
	if strings.TrimSpace(extract) == "" {
		return c.ArticleLead(ctx, title)
	}

	return extract, nil
}

// articleTitle resolves an entity to its Wikipedia article title via the
// entity's sitelinks
func (c *Client) articleTitle(ctx context.Context, entityRef string) (string, error) {
	id := NormalizeEntityRef(entityRef)

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("props", "sitelinks/urls")
	params.Set("format", "json")

	var resp entitiesResponse
	if err := c.getJSON(ctx, c.wikidataAPI+"?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("sitelinks for %s: %w", id, err)
	}

	entity, ok := resp.Entities[id]
	if !ok {
		return "", fmt.Errorf("entity %s: %w", id, ErrNotFound)
	}

	site := c.language + "wiki"
	link, ok := entity.Sitelinks[site]
	if !ok || link.Title == "" {
		return "", fmt.Errorf("entity %s has no %s sitelink: %w", id, site, ErrNotFound)
	}
	return link.Title, nil
}

// extract fetches the plain-text introductory extract for an article
func (c *Client) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)
	params.Set("format", "json")

	var resp extractsResponse
	if err := c.getJSON(ctx, c.wikipediaAPI+"?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("extract %q: %w", title, err)
	}

	// The pages object is keyed by page ID; a title query returns one entry
	for _, page := range resp.Query.Pages {
		return page.Extract, nil
	}
	return "", fmt.Errorf("extract %q: %w", title, ErrNotFound)
}
