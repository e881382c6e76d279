package rightmove

// ListingSummary is one search-result row, already normalized. The price is
// always a monthly-equivalent figure in pounds; PriceQualifier records which
// billing period the origin advertised ("pcm" or "pw").
type ListingSummary struct {
	ID             string   `json:"id"`
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          int      `json:"price"`
	PriceQualifier string   `json:"priceQualifier"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      *int     `json:"bathrooms"`
	PropertyType   string   `json:"propertyType"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	Images         []string `json:"images"`
	Agent          string   `json:"agent,omitempty"`
	AgentPhone     string   `json:"agentPhone,omitempty"`
	AddedOn        string   `json:"addedOn,omitempty"`
}

// ListingDetail is a ListingSummary plus the fields only the detail page
// carries. When the reduced page-props payload was the only source, the
// extra fields stay empty.
type ListingDetail struct {
	ListingSummary
	Floorplan       string   `json:"floorplan,omitempty"`
	Features        []string `json:"features"`
	Tenure          string   `json:"tenure,omitempty"`
	Furnishing      string   `json:"furnishing,omitempty"`
	LetType         string   `json:"letType,omitempty"`
	Deposit         string   `json:"deposit,omitempty"`
	CouncilTaxBand  string   `json:"councilTaxBand,omitempty"`
	EPC             string   `json:"epc,omitempty"`
	NearestStation  string   `json:"nearestStation,omitempty"`
	StationDistance string   `json:"stationDistance,omitempty"`
}

// LocationMatch is one typeahead candidate. LocationIdentifier is the opaque
// "{type}^{id}" token the search endpoints expect.
type LocationMatch struct {
	DisplayName          string `json:"displayName"`
	LocationIdentifier   string `json:"locationIdentifier"`
	NormalisedSearchTerm string `json:"normalisedSearchTerm"`
}

// Channel selects the listing category.
type Channel string

const (
	ChannelRent Channel = "RENT"
	ChannelBuy  Channel = "BUY"
)

// SearchOptions carries the already-validated filter set for one search call.
// Zero values mean "not set" and are omitted from the upstream query.
type SearchOptions struct {
	LocationIdentifier string
	Channel            Channel
	MinPrice           int
	MaxPrice           int
	MinBedrooms        int
	MaxBedrooms        int
	SortType           string
	Index              int
	PageSize           int
}

// SearchPage is one page of results plus the origin's total count.
type SearchPage struct {
	Results []ListingSummary `json:"results"`
	Total   int              `json:"total"`
}

var sortCodes = map[string]string{
	"newest":     "6",
	"price-asc":  "1",
	"price-desc": "10",
	"oldest":     "2",
}

// ResolveSortType maps a symbolic sort name to the origin's numeric code.
// Unrecognized names fall back to newest-first.
func ResolveSortType(sort string) string {
	if code, ok := sortCodes[sort]; ok {
		return code
	}
	return "6"
}
