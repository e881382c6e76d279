package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/john-ds-mc/lettie-cli/internal/output"
	"github.com/john-ds-mc/lettie-cli/rightmove"
)

func runSearch(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var area, listingType, sortName string
	var minPrice, maxPrice, beds, limit, page int
	var jsonOut bool
	fs.StringVar(&area, "area", "", "area to search")
	fs.StringVar(&area, "a", "", "area to search (shorthand)")
	fs.IntVar(&minPrice, "min-price", 0, "minimum price")
	fs.IntVar(&maxPrice, "max-price", 0, "maximum price")
	fs.IntVar(&beds, "beds", 0, "number of bedrooms")
	fs.IntVar(&beds, "b", 0, "number of bedrooms (shorthand)")
	fs.StringVar(&listingType, "type", "rent", "rent or buy")
	fs.StringVar(&listingType, "t", "rent", "rent or buy (shorthand)")
	fs.StringVar(&sortName, "sort", "newest", "sort order")
	fs.StringVar(&sortName, "s", "newest", "sort order (shorthand)")
	fs.IntVar(&limit, "limit", 0, "max results to show")
	fs.IntVar(&limit, "l", 0, "max results to show (shorthand)")
	fs.IntVar(&page, "page", 1, "page number")
	fs.IntVar(&page, "p", 1, "page number (shorthand)")
	fs.BoolVar(&jsonOut, "json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if area == "" {
		fmt.Fprint(os.Stderr, "Error: --area is required\n\n")
		fmt.Println(usage)
		return 1
	}
	if page < 1 {
		page = 1
	}

	client := newSiteClient()

	locations := client.ResolveLocation(ctx, area)
	if len(locations) == 0 {
		if jsonOut {
			fmt.Println(output.JSON(map[string]any{
				"error":   fmt.Sprintf("No location found for %q", area),
				"results": []rightmove.ListingSummary{},
			}))
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "No location found for %q\n", area)
			fmt.Fprintln(os.Stderr, `Try a more specific area name (e.g. "Clapham, London" or "SW4").`)
		}
		return 1
	}

	loc := locations[0]
	if !jsonOut {
		color.New(color.Faint).Fprintf(os.Stderr, "Searching: %s\n\n", loc.DisplayName)
	}

	pageSize := 24
	if limit > 0 {
		pageSize = limit
	}
	channel := rightmove.ChannelRent
	if listingType == "buy" {
		channel = rightmove.ChannelBuy
	}

	result := client.Search(ctx, rightmove.SearchOptions{
		LocationIdentifier: loc.LocationIdentifier,
		Channel:            channel,
		MinPrice:           minPrice,
		MaxPrice:           maxPrice,
		MinBedrooms:        beds,
		MaxBedrooms:        beds,
		SortType:           rightmove.ResolveSortType(sortName),
		Index:              (page - 1) * pageSize,
		PageSize:           pageSize,
	})

	results := result.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if jsonOut {
		fmt.Println(output.JSON(map[string]any{
			"location": loc.DisplayName,
			"total":    result.Total,
			"results":  results,
		}))
	} else {
		fmt.Print(output.SearchResults(results, result.Total))
	}
	return 0
}
