package rightmove

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

const defaultPageSize = 24

// rawSearchResults is the nested result shape shared by all three search
// tiers. Items are decoded individually so one malformed row cannot sink
// the whole page.
type rawSearchResults struct {
	Properties               []json.RawMessage `json:"properties"`
	ResultCount              flexNumber        `json:"resultCount"`
	TotalAvailableProperties flexNumber        `json:"totalAvailableProperties"`
}

func (sr *rawSearchResults) total() int {
	if n, ok := sr.ResultCount.Int(); ok {
		return n
	}
	if n, ok := sr.TotalAvailableProperties.Int(); ok {
		return n
	}
	return len(sr.Properties)
}

func (sr *rawSearchResults) page() (SearchPage, bool) {
	if len(sr.Properties) == 0 {
		return SearchPage{}, false
	}
	results := make([]ListingSummary, 0, len(sr.Properties))
	for _, raw := range sr.Properties {
		if s, ok := mapSearchProperty(raw); ok {
			results = append(results, s)
		}
	}
	if len(results) == 0 {
		return SearchPage{}, false
	}
	return SearchPage{Results: results, Total: sr.total()}, true
}

// rawImage is an image entry in any of the origin's list shapes.
type rawImage struct {
	SrcURL string `json:"srcUrl"`
	URL    string `json:"url"`
}

// rawSearchProperty models one property item. The same shape is served by
// the rendered page payloads and the legacy API, with fields drifting in
// and out across site generations, so everything is optional here and
// validated after decode.
type rawSearchProperty struct {
	ID              flexNumber `json:"id"`
	PropertyURL     string     `json:"propertyUrl"`
	DisplayAddress  string     `json:"displayAddress"`
	Heading         string     `json:"heading"`
	Summary         string     `json:"summary"`
	Bedrooms        flexNumber `json:"bedrooms"`
	Bathrooms       flexNumber `json:"bathrooms"`
	PropertySubType string     `json:"propertySubType"`
	PropertyType    string     `json:"propertyType"`

	Price struct {
		Amount        flexNumber `json:"amount"`
		Frequency     string     `json:"frequency"`
		DisplayPrices []struct {
			DisplayPrice string `json:"displayPrice"`
		} `json:"displayPrices"`
	} `json:"price"`

	Location struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`

	Images         []rawImage `json:"images"`
	PropertyImages struct {
		Images []rawImage `json:"images"`
	} `json:"propertyImages"`

	Customer struct {
		BrandTradingName  string `json:"brandTradingName"`
		BranchDisplayName string `json:"branchDisplayName"`
		BranchName        string `json:"branchName"`
		ContactTelephone  string `json:"contactTelephone"`
		Telephone         string `json:"telephone"`
	} `json:"customer"`

	FirstVisibleDate string `json:"firstVisibleDate"`
	AddedOrReduced   string `json:"addedOrReduced"`
	ListingUpdate    struct {
		Reason string `json:"listingUpdateReason"`
	} `json:"listingUpdate"`
}

func mapSearchProperty(raw json.RawMessage) (ListingSummary, bool) {
	var p rawSearchProperty
	if err := json.Unmarshal(raw, &p); err != nil {
		return ListingSummary{}, false
	}
	id := p.ID.String()
	if id == "" {
		return ListingSummary{}, false
	}

	amount := 0
	qualifier := "pcm"
	if len(p.Price.DisplayPrices) > 0 {
		parsed := ParsePrice(p.Price.DisplayPrices[0].DisplayPrice)
		amount = parsed.Amount
		if parsed.Qualifier != "" {
			qualifier = parsed.Qualifier
		}
	}
	if amount == 0 {
		plain, _ := p.Price.Amount.Int()
		if isWeeklyFrequency(p.Price.Frequency) {
			amount = monthlyFromWeekly(plain)
			qualifier = "pw"
		} else {
			amount = plain
		}
	}

	imageModels := p.Images
	if len(imageModels) == 0 {
		imageModels = p.PropertyImages.Images
	}
	images := make([]string, 0, len(imageModels))
	for _, img := range imageModels {
		if u := AbsoluteURL(firstNonEmpty(img.SrcURL, img.URL)); u != "" {
			images = append(images, u)
		}
	}

	listingURL := p.PropertyURL
	if listingURL == "" {
		listingURL = fmt.Sprintf("/property-to-rent/property-%s.html", id)
	}

	bedrooms, _ := p.Bedrooms.Int()
	var bathrooms *int
	if n, ok := p.Bathrooms.Int(); ok {
		bathrooms = &n
	}

	return ListingSummary{
		ID:             id,
		URL:            AbsoluteURL(listingURL),
		Title:          firstNonEmpty(p.DisplayAddress, p.Heading),
		Description:    p.Summary,
		Price:          amount,
		PriceQualifier: qualifier,
		Bedrooms:       bedrooms,
		Bathrooms:      bathrooms,
		PropertyType:   firstNonEmpty(p.PropertySubType, p.PropertyType),
		Lat:            p.Location.Latitude,
		Lng:            p.Location.Longitude,
		Images:         images,
		Agent:          firstNonEmpty(p.Customer.BrandTradingName, p.Customer.BranchDisplayName, p.Customer.BranchName),
		AgentPhone:     firstNonEmpty(p.Customer.ContactTelephone, p.Customer.Telephone),
		AddedOn:        firstNonEmpty(p.FirstVisibleDate, p.AddedOrReduced, p.ListingUpdate.Reason),
	}, true
}

// Search returns one page of listing summaries plus the origin's total
// count. Three data sources are tried strictly in order — the rendered
// page's __NEXT_DATA__ payload, the legacy PAGE_MODEL global in the same
// HTML, then the legacy JSON API — and the first one producing at least one
// item wins. The tiers are never raced: sequential fallback keeps precedence
// deterministic and avoids doubling load on a rate-limited origin. All three
// failing is not an error; the caller gets an empty page.
func (c *Client) Search(ctx context.Context, opts SearchOptions) SearchPage {
	path := rentSearchPath
	if opts.Channel == ChannelBuy {
		path = buySearchPath
	}
	params := searchParams(opts)

	// Tier 1: current-generation embedded script payload
	html, fetched := c.fetchPage(ctx, c.baseURL+path, params)
	if fetched {
		if raw := extractNextData(html); raw != nil {
			var payload struct {
				Props struct {
					PageProps struct {
						SearchResults rawSearchResults `json:"searchResults"`
					} `json:"pageProps"`
				} `json:"props"`
			}
			if err := json.Unmarshal(raw, &payload); err == nil {
				if page, ok := payload.Props.PageProps.SearchResults.page(); ok {
					return page
				}
			}
		}

		// Tier 2: legacy embedded global in the same HTML
		if raw := extractPageModel(html); raw != nil {
			var payload struct {
				SearchResults rawSearchResults `json:"searchResults"`
			}
			if err := json.Unmarshal(raw, &payload); err == nil {
				if page, ok := payload.SearchResults.page(); ok {
					return page
				}
			}
		}
	}

	// Tier 3: legacy JSON API
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	params.Set("numberOfPropertiesPerPage", strconv.Itoa(pageSize))
	params.Set("index", strconv.Itoa(opts.Index))
	params.Set("includeSSTC", "false")

	body, ok := c.fetchPage(ctx, c.apiURL, params)
	if !ok {
		return SearchPage{Results: []ListingSummary{}}
	}
	var sr rawSearchResults
	if err := json.Unmarshal([]byte(body), &sr); err == nil {
		if page, ok := sr.page(); ok {
			return page
		}
	}
	return SearchPage{Results: []ListingSummary{}}
}

func searchParams(opts SearchOptions) url.Values {
	params := url.Values{}
	params.Set("locationIdentifier", opts.LocationIdentifier)
	params.Set("channel", string(opts.Channel))
	sort := opts.SortType
	if sort == "" {
		sort = "6"
	}
	params.Set("sortType", sort)
	if opts.MinPrice > 0 {
		params.Set("minPrice", strconv.Itoa(opts.MinPrice))
	}
	if opts.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(opts.MaxPrice))
	}
	if opts.MinBedrooms > 0 {
		params.Set("minBedrooms", strconv.Itoa(opts.MinBedrooms))
	}
	if opts.MaxBedrooms > 0 {
		params.Set("maxBedrooms", strconv.Itoa(opts.MaxBedrooms))
	}
	if opts.Index > 0 {
		params.Set("index", strconv.Itoa(opts.Index))
	}
	return params
}
