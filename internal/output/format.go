// Package output renders canonical listing records for humans and machines.
// It never talks to the network; the extraction core hands it finished
// values only.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/john-ds-mc/lettie-cli/rightmove"
)

var (
	bold    = color.New(color.Bold).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

func money(amount int) string {
	s := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "£" + b.String()
}

// SearchResults renders a page of summaries as colorized terminal text.
func SearchResults(results []rightmove.ListingSummary, total int) string {
	if len(results) == 0 {
		return dim("No results found.") + "\n"
	}

	var lines []string
	lines = append(lines, dim(fmt.Sprintf("%d total results", total)), "")

	for _, r := range results {
		var meta []string
		if r.Bedrooms > 0 {
			meta = append(meta, fmt.Sprintf("%d bed", r.Bedrooms))
		}
		if r.Bathrooms != nil && *r.Bathrooms > 0 {
			meta = append(meta, fmt.Sprintf("%d bath", *r.Bathrooms))
		}
		if r.PropertyType != "" {
			meta = append(meta, r.PropertyType)
		}

		lines = append(lines, bold(r.Title))
		lines = append(lines, fmt.Sprintf("  %s %s  %s",
			green(money(r.Price)), green(r.PriceQualifier), dim(strings.Join(meta, " · "))))
		if r.Description != "" {
			desc := r.Description
			if len(desc) > 120 {
				desc = desc[:117] + "..."
			}
			lines = append(lines, "  "+desc)
		}
		if r.Agent != "" {
			line := "  " + magenta(r.Agent)
			if r.AgentPhone != "" {
				line += "  " + dim(r.AgentPhone)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "  "+cyan(r.URL))
		idLine := "ID: " + r.ID
		if r.AddedOn != "" {
			idLine += "  ·  " + r.AddedOn
		}
		lines = append(lines, "  "+dim(idLine), "")
	}

	return strings.Join(lines, "\n")
}

// Detail renders one full listing record as colorized terminal text.
func Detail(d *rightmove.ListingDetail) string {
	var lines []string

	lines = append(lines, bold(d.Title))
	lines = append(lines, green(money(d.Price)+" "+d.PriceQualifier), "")

	var meta []string
	if d.Bedrooms > 0 {
		meta = append(meta, plural(d.Bedrooms, "bedroom"))
	}
	if d.Bathrooms != nil && *d.Bathrooms > 0 {
		meta = append(meta, plural(*d.Bathrooms, "bathroom"))
	}
	if d.PropertyType != "" {
		meta = append(meta, d.PropertyType)
	}
	if len(meta) > 0 {
		lines = append(lines, yellow(strings.Join(meta, " · ")))
	}

	var info []string
	if d.Furnishing != "" {
		info = append(info, "Furnishing: "+d.Furnishing)
	}
	if d.LetType != "" {
		info = append(info, "Let type: "+d.LetType)
	}
	if d.Deposit != "" {
		info = append(info, "Deposit: "+d.Deposit)
	}
	if d.CouncilTaxBand != "" {
		info = append(info, "Council tax: Band "+d.CouncilTaxBand)
	}
	if d.Tenure != "" {
		info = append(info, "Tenure: "+d.Tenure)
	}
	if d.EPC != "" {
		info = append(info, "EPC: "+d.EPC)
	}
	if d.NearestStation != "" {
		s := "Nearest station: " + d.NearestStation
		if d.StationDistance != "" {
			s += " (" + d.StationDistance + ")"
		}
		info = append(info, s)
	}
	if len(info) > 0 {
		lines = append(lines, "")
		for _, i := range info {
			lines = append(lines, "  "+i)
		}
	}

	if len(d.Features) > 0 {
		lines = append(lines, "", bold("Features"))
		for _, f := range d.Features {
			lines = append(lines, "  • "+f)
		}
	}

	if d.Description != "" {
		lines = append(lines, "", bold("Description"))
		lines = append(lines, wrap(d.Description, 80)...)
	}

	if d.Floorplan != "" {
		lines = append(lines, "", dim("Floorplan: "+d.Floorplan))
	}

	if d.Agent != "" {
		line := magenta(d.Agent)
		if d.AgentPhone != "" {
			line += "  " + dim(d.AgentPhone)
		}
		lines = append(lines, "", line)
	}

	lines = append(lines, "", cyan(d.URL))
	if d.AddedOn != "" {
		lines = append(lines, dim("Listed: "+d.AddedOn))
	}
	lines = append(lines, dim("ID: "+d.ID), "")

	return strings.Join(lines, "\n")
}

// JSON pretty-prints any value for the --json output mode.
func JSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func wrap(text string, width int) []string {
	var out []string
	line := ""
	for _, w := range strings.Fields(text) {
		if line != "" && len(line)+len(w)+1 > width {
			out = append(out, "  "+line)
			line = w
			continue
		}
		if line == "" {
			line = w
		} else {
			line += " " + w
		}
	}
	if line != "" {
		out = append(out, "  "+line)
	}
	return out
}
