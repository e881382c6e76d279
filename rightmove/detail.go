package rightmove

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// rawPropertyData models the propertyData branch of both detail payloads.
// The PAGE_MODEL generation fills most of it; the page-props generation only
// a subset.
type rawPropertyData struct {
	ID         flexNumber `json:"id"`
	PropertyID flexNumber `json:"propertyId"`

	Prices struct {
		PrimaryPrice string `json:"primaryPrice"`
	} `json:"prices"`

	Text struct {
		Description string `json:"description"`
	} `json:"text"`
	FullDescription string `json:"fullDescription"`
	Description     string `json:"description"`

	Address struct {
		DisplayAddress string `json:"displayAddress"`
	} `json:"address"`
	DisplayAddress string `json:"displayAddress"`

	Bedrooms        flexNumber `json:"bedrooms"`
	Bathrooms       flexNumber `json:"bathrooms"`
	PropertySubType string     `json:"propertySubType"`
	PropertyType    string     `json:"propertyType"`

	Location struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`

	Images []struct {
		URL     string            `json:"url"`
		Resized map[string]string `json:"resizedImageUrls"`
	} `json:"images"`
	Floorplans []struct {
		URL string `json:"url"`
	} `json:"floorplans"`

	KeyFeatures []string `json:"keyFeatures"`

	Customer struct {
		CompanyTradingName string `json:"companyTradingName"`
		BranchDisplayName  string `json:"branchDisplayName"`
		BranchName         string `json:"branchName"`
		ContactTelephone   string `json:"contactTelephone"`
		Telephone          string `json:"telephone"`
	} `json:"customer"`

	Lettings struct {
		FurnishType string     `json:"furnishType"`
		LetType     string     `json:"letType"`
		Deposit     flexNumber `json:"deposit"`
	} `json:"lettings"`

	Tenure struct {
		TenureType string `json:"tenureType"`
	} `json:"tenure"`
	CouncilTaxBand string `json:"councilTaxBand"`

	EPC struct {
		URL                 string `json:"url"`
		CurrentEnergyRating string `json:"currentEnergyRating"`
	} `json:"epc"`

	NearestStations []struct {
		Name     string     `json:"name"`
		Distance flexNumber `json:"distance"`
		Unit     string     `json:"unit"`
	} `json:"nearestStations"`

	ListingHistory struct {
		ListingUpdateDate string `json:"listingUpdateDate"`
	} `json:"listingHistory"`
	FirstVisibleDate string `json:"firstVisibleDate"`
}

// resolveListingURL expands the accepted input forms into one fetchable
// address: full URLs pass through, a bare numeric id becomes the canonical
// rent-listing URL, a path is rooted at the site host.
func (c *Client) resolveListingURL(idOrURL string) string {
	if strings.HasPrefix(idOrURL, "http") {
		return idOrURL
	}
	if isDigits(idOrURL) {
		return fmt.Sprintf("%s/property-to-rent/property-%s.html", c.baseURL, idOrURL)
	}
	if strings.HasPrefix(idOrURL, "/") {
		return c.baseURL + idOrURL
	}
	return idOrURL
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Detail fetches one listing page and extracts the full record. The
// PAGE_MODEL payload is preferred since it carries the complete field set;
// the page-props payload is the fallback and yields no images, agent,
// floorplan, or transit data. A tier whose identifier is empty is
// treated as failed. nil means the listing could not be extracted at all.
func (c *Client) Detail(ctx context.Context, idOrURL string) *ListingDetail {
	pageURL := c.resolveListingURL(idOrURL)
	html, ok := c.fetchPage(ctx, pageURL, nil)
	if !ok {
		return nil
	}

	if raw := extractPageModel(html); raw != nil {
		var payload struct {
			PropertyData rawPropertyData `json:"propertyData"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			if d := detailFromPageModel(&payload.PropertyData, pageURL); d != nil {
				return d
			}
		}
	}

	if raw := extractNextData(html); raw != nil {
		if d := detailFromNextData(raw, pageURL); d != nil {
			return d
		}
	}

	return nil
}

func detailFromPageModel(pd *rawPropertyData, pageURL string) *ListingDetail {
	id := pd.ID.String()
	if id == "" {
		return nil
	}

	price := Price{Qualifier: "pcm"}
	if pd.Prices.PrimaryPrice != "" {
		if parsed := ParsePrice(pd.Prices.PrimaryPrice); parsed.Qualifier != "" {
			price = parsed
		} else {
			price.Amount = parsed.Amount
		}
	}

	images := make([]string, 0, len(pd.Images))
	for _, img := range pd.Images {
		u := img.URL
		if u == "" {
			u = firstNonEmpty(img.Resized["size656x437"], img.Resized["size476x317"])
		}
		if abs := AbsoluteURL(u); abs != "" {
			images = append(images, abs)
		}
	}

	floorplan := ""
	if len(pd.Floorplans) > 0 {
		floorplan = AbsoluteURL(pd.Floorplans[0].URL)
	}

	station, distance := "", ""
	if len(pd.NearestStations) > 0 {
		st := pd.NearestStations[0]
		station = st.Name
		if st.Distance != "" {
			unit := st.Unit
			if unit == "" {
				unit = "miles"
			}
			distance = st.Distance.String() + " " + unit
		}
	}

	epc := AbsoluteURL(pd.EPC.URL)
	if epc == "" {
		epc = pd.EPC.CurrentEnergyRating
	}

	bedrooms, _ := pd.Bedrooms.Int()
	var bathrooms *int
	if n, ok := pd.Bathrooms.Int(); ok {
		bathrooms = &n
	}

	return &ListingDetail{
		ListingSummary: ListingSummary{
			ID:             id,
			URL:            pageURL,
			Title:          firstNonEmpty(pd.Address.DisplayAddress, pd.DisplayAddress),
			Description:    StripHTML(firstNonEmpty(pd.Text.Description, pd.FullDescription)),
			Price:          price.Amount,
			PriceQualifier: price.Qualifier,
			Bedrooms:       bedrooms,
			Bathrooms:      bathrooms,
			PropertyType:   firstNonEmpty(pd.PropertySubType, pd.PropertyType),
			Lat:            pd.Location.Latitude,
			Lng:            pd.Location.Longitude,
			Images:         images,
			Agent:          firstNonEmpty(pd.Customer.CompanyTradingName, pd.Customer.BranchDisplayName, pd.Customer.BranchName),
			AgentPhone:     firstNonEmpty(pd.Customer.ContactTelephone, pd.Customer.Telephone),
			AddedOn:        firstNonEmpty(pd.ListingHistory.ListingUpdateDate, pd.FirstVisibleDate),
		},
		Floorplan:       floorplan,
		Features:        append([]string{}, pd.KeyFeatures...),
		Tenure:          pd.Tenure.TenureType,
		Furnishing:      pd.Lettings.FurnishType,
		LetType:         pd.Lettings.LetType,
		Deposit:         pd.Lettings.Deposit.String(),
		CouncilTaxBand:  pd.CouncilTaxBand,
		EPC:             epc,
		NearestStation:  station,
		StationDistance: distance,
	}
}

func detailFromNextData(raw []byte, pageURL string) *ListingDetail {
	var payload struct {
		Props struct {
			PageProps json.RawMessage `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if len(payload.Props.PageProps) == 0 {
		return nil
	}

	// propertyData may be nested under pageProps or be pageProps itself
	source := payload.Props.PageProps
	var wrapper struct {
		PropertyData json.RawMessage `json:"propertyData"`
	}
	if err := json.Unmarshal(source, &wrapper); err == nil {
		if len(wrapper.PropertyData) > 0 && string(wrapper.PropertyData) != "null" {
			source = wrapper.PropertyData
		}
	}

	var pd rawPropertyData
	if err := json.Unmarshal(source, &pd); err != nil {
		return nil
	}
	id := firstNonEmpty(pd.ID.String(), pd.PropertyID.String())
	if id == "" {
		return nil
	}

	price := Price{Qualifier: "pcm"}
	if pd.Prices.PrimaryPrice != "" {
		if parsed := ParsePrice(pd.Prices.PrimaryPrice); parsed.Qualifier != "" {
			price = parsed
		} else {
			price.Amount = parsed.Amount
		}
	}

	bedrooms, _ := pd.Bedrooms.Int()
	var bathrooms *int
	if n, ok := pd.Bathrooms.Int(); ok {
		bathrooms = &n
	}

	return &ListingDetail{
		ListingSummary: ListingSummary{
			ID:             id,
			URL:            pageURL,
			Title:          pd.DisplayAddress,
			Description:    StripHTML(firstNonEmpty(pd.Text.Description, pd.Description)),
			Price:          price.Amount,
			PriceQualifier: price.Qualifier,
			Bedrooms:       bedrooms,
			Bathrooms:      bathrooms,
			PropertyType:   firstNonEmpty(pd.PropertySubType, pd.PropertyType),
			Lat:            pd.Location.Latitude,
			Lng:            pd.Location.Longitude,
			Images:         []string{},
		},
		Features: append([]string{}, pd.KeyFeatures...),
	}
}
