package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/john-ds-mc/lettie-cli/internal/output"
)

func runView(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	var jsonOut bool
	fs.BoolVar(&jsonOut, "json", false, "output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	idOrURL := fs.Arg(0)
	if idOrURL == "" {
		fmt.Fprint(os.Stderr, "Error: listing ID or URL is required\n\n")
		fmt.Println(usage)
		return 1
	}

	client := newSiteClient()

	detail := client.Detail(ctx, idOrURL)
	if detail == nil {
		if jsonOut {
			fmt.Println(output.JSON(map[string]any{
				"error": fmt.Sprintf("Could not fetch listing %q", idOrURL),
			}))
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "Could not fetch listing %q\n", idOrURL)
			fmt.Fprintln(os.Stderr, "Check the ID or URL and try again.")
		}
		return 1
	}

	if jsonOut {
		fmt.Println(output.JSON(detail))
	} else {
		fmt.Print(output.Detail(detail))
	}
	return 0
}
