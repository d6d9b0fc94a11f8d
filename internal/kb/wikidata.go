package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/wikichat/internal/model"
)

// NormalizeEntityRef reduces an entity reference to its bare identifier.
// Bare IDs ("Q613726") and full URIs (".../entity/Q613726") are accepted
// interchangeably everywhere a reference is expected.
func NormalizeEntityRef(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

type searchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
}

// Search returns the entities matching text, best match first.
// An empty slice means no matches; that is not an error.
func (c *Client) Search(ctx context.Context, text string) ([]model.SearchResult, error) {
	return c.searchEntities(ctx, text, "")
}

// SearchProperty returns the best-matching property for text
// (e.g. "mass" resolves to P2067).
func (c *Client) SearchProperty(ctx context.Context, text string) (model.SearchResult, error) {
	results, err := c.searchEntities(ctx, text, "property")
	if err != nil {
		return model.SearchResult{}, err
	}
	if len(results) == 0 {
		return model.SearchResult{}, fmt.Errorf("property %q: %w", text, ErrNotFound)
	}
	return results[0], nil
}

func (c *Client) searchEntities(ctx context.Context, text, entityType string) ([]model.SearchResult, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", text)
	params.Set("language", c.language)
	params.Set("format", "json")
	if entityType != "" {
		params.Set("type", entityType)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, c.wikidataAPI+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	results := make([]model.SearchResult, 0, len(resp.Search))
	for _, hit := range resp.Search {
		results = append(results, model.SearchResult{
			ID:          hit.ID,
			Label:       hit.Label,
			Description: hit.Description,
		})
	}
	return results, nil
}

type entitiesResponse struct {
	Entities map[string]struct {
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
		Claims map[string][]struct {
			MainSnak struct {
				DataValue struct {
					Value json.RawMessage `json:"value"`
				} `json:"datavalue"`
			} `json:"mainsnak"`
		} `json:"claims"`
		Sitelinks map[string]struct {
			Title string `json:"title"`
		} `json:"sitelinks"`
	} `json:"entities"`
}

// Label returns the display label for an entity reference
func (c *Client) Label(ctx context.Context, entityRef string) (string, error) {
	id := NormalizeEntityRef(entityRef)

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("props", "labels")
	params.Set("languages", c.language)
	params.Set("format", "json")

	var resp entitiesResponse
	if err := c.getJSON(ctx, c.wikidataAPI+"?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("label %s: %w", id, err)
	}

	entity, ok := resp.Entities[id]
	if !ok {
		return "", fmt.Errorf("entity %s: %w", id, ErrNotFound)
	}
	label, ok := entity.Labels[c.language]
	if !ok {
		return "", fmt.Errorf("entity %s has no %s label: %w", id, c.language, ErrNotFound)
	}
	return label.Value, nil
}

// PropertyValue returns the resolved value of the first claim for
// propertyID on the entity. Entity-shaped values are expanded to their
// labels before being returned; a raw identifier never escapes here.
// ErrNotFound means the entity has no claims for the property.
func (c *Client) PropertyValue(ctx context.Context, entityRef, propertyID string) (string, error) {
	id := NormalizeEntityRef(entityRef)

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", id)
	params.Set("props", "claims")
	params.Set("languages", c.language)
	params.Set("format", "json")

	var resp entitiesResponse
	if err := c.getJSON(ctx, c.wikidataAPI+"?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("claims for %s: %w", id, err)
	}

	entity, ok := resp.Entities[id]
	if !ok {
		return "", fmt.Errorf("entity %s: %w", id, ErrNotFound)
	}
	claims, ok := entity.Claims[propertyID]
	if !ok || len(claims) == 0 {
		return "", fmt.Errorf("entity %s property %s: %w", id, propertyID, ErrNotFound)
	}

	value, err := DecodeClaimValue(claims[0].MainSnak.DataValue.Value)
	if err != nil {
		return "", fmt.Errorf("claim %s/%s: %w", id, propertyID, err)
	}

	return c.resolveClaimValue(ctx, value)
}

// resolveClaimValue turns a decoded claim value into display text
func (c *Client) resolveClaimValue(ctx context.Context, value model.ClaimValue) (string, error) {
	switch value.Kind {
	case model.ClaimQuantity:
		out := value.Amount
		if value.HasUnit() {
			// A failed unit lookup degrades to the bare amount
			if unitLabel, err := c.Label(ctx, value.Unit); err == nil {
				out += " " + unitLabel
			}
		}
		return out, nil
	case model.ClaimTime:
		return value.Time, nil
	case model.ClaimEntity:
		return c.Label(ctx, value.EntityID)
	case model.ClaimText:
		return value.Text, nil
	default:
		return "", fmt.Errorf("%w: claim kind %q", ErrMalformedResponse, value.Kind)
	}
}

// Fact resolves a natural-language entity/property pair, e.g.
// ("Saturn", "mass") -> "568360 yottagram"
func (c *Client) Fact(ctx context.Context, entityQuery, propertyQuery string) (model.Fact, error) {
	entities, err := c.Search(ctx, entityQuery)
	if err != nil {
		return model.Fact{}, err
	}
	if len(entities) == 0 {
		return model.Fact{}, fmt.Errorf("entity %q: %w", entityQuery, ErrNotFound)
	}
	entity := entities[0]

	property, err := c.SearchProperty(ctx, propertyQuery)
	if err != nil {
		return model.Fact{}, err
	}

	value, err := c.PropertyValue(ctx, entity.ID, property.ID)
	if err != nil {
		return model.Fact{}, err
	}

	return model.Fact{
		Entity:   entity.Label,
		Property: property.Label,
		Value:    value,
	}, nil
}
