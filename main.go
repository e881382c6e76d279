package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/john-ds-mc/lettie-cli/internal/env"
	"github.com/john-ds-mc/lettie-cli/rightmove"
)

const version = "0.1.0"

const usage = `lettie — Search Rightmove from your terminal

Usage:
  lettie search --area "Clapham" [options]
  lettie view <id-or-url> [options]
  lettie serve [--addr :4002]

Commands:
  search    Search for rental or sale listings
  view      View full details for a listing
  serve     Expose search and view over HTTP

Search options:
  -a, --area <name>       Area to search (required)
      --min-price <n>     Minimum price
      --max-price <n>     Maximum price
  -b, --beds <n>          Number of bedrooms
  -t, --type <rent|buy>   Listing type (default: rent)
  -s, --sort <mode>       Sort: newest, price-asc, price-desc, oldest (default: newest)
  -l, --limit <n>         Max results to show
  -p, --page <n>          Page number (default: 1)
      --json              Output as JSON

View options:
      --json              Output as JSON

General:
  -h, --help              Show this help
      --version           Show version`

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		fmt.Println(usage)
		return
	}
	if args[0] == "--version" {
		fmt.Println(version)
		return
	}

	ctx := context.Background()
	switch args[0] {
	case "search":
		os.Exit(runSearch(ctx, args[1:]))
	case "view":
		os.Exit(runView(ctx, args[1:]))
	case "serve":
		os.Exit(runServe(args[1:]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		fmt.Println(usage)
		os.Exit(1)
	}
}

// newSiteClient builds the origin client shared by every command. An
// optional requests-per-second cap spaces out hits on the live origin;
// unset means the retry backoff is the only throttle.
func newSiteClient() *rightmove.Client {
	var limiter *rate.Limiter
	if rps := env.GetFloat("LETTIE_RPS", 0); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return rightmove.NewClient(limiter)
}
