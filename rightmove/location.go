package rightmove

import (
	"context"
	"encoding/json"
	"net/url"
)

// ResolveLocation turns a free-text area name into the origin's canonical
// location identifiers via the typeahead endpoint. The response order is the
// origin's own ranking and is preserved; the first match is the best one.
// Every failure mode yields an empty slice, never an error.
func (c *Client) ResolveLocation(ctx context.Context, query string) []LocationMatch {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "10")

	body, ok := c.fetch(ctx, c.lookupURL, params, fetchOpts{accept: acceptJSON})
	if !ok {
		return nil
	}

	var payload struct {
		Matches []struct {
			ID          flexNumber `json:"id"`
			Type        string     `json:"type"`
			DisplayName string     `json:"displayName"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}

	out := make([]LocationMatch, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		if m.ID == "" || m.Type == "" {
			continue
		}
		name := m.DisplayName
		if name == "" {
			name = query
		}
		out = append(out, LocationMatch{
			DisplayName:          name,
			LocationIdentifier:   m.Type + "^" + m.ID.String(),
			NormalisedSearchTerm: m.DisplayName,
		})
	}
	return out
}
