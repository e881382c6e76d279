package rightmove

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Base is the canonical site host; root-relative URLs in payloads are
// resolved against it.
const Base = "https://www.rightmove.co.uk"

var (
	nextDataRe = regexp.MustCompile(`(?s)<script id="__NEXT_DATA__"[^>]*>(.*?)</script>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	digitsRe   = regexp.MustCompile(`[^\d]`)
)

// flexNumber accepts string, number, or null JSON and keeps the textual form.
type flexNumber string

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexNumber(n.String())
	return nil
}

func (f flexNumber) Int() (int, bool) { return ToInt(string(f)) }

func (f flexNumber) String() string { return string(f) }

// ToInt coerces loosely-typed payload values to an integer. Numbers are
// rounded, strings lose their thousands separators before parsing. The
// second return is false when no integer can be produced; absent never
// collapses to zero.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(math.Round(v)), true
	case json.Number:
		return ToInt(v.String())
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return 0, false
		}
		// tolerate a decimal tail the way parseInt does
		if i := strings.IndexByte(s, '.'); i >= 0 {
			s = s[:i]
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Price is a parsed display price: a monthly-equivalent amount plus the
// billing period the source text advertised.
type Price struct {
	Amount    int
	Qualifier string
}

// ParsePrice extracts the numeric magnitude from a display string such as
// "£1,200 pcm". Weekly rates are converted to a monthly-equivalent amount
// while keeping the "pw" qualifier as provenance. Unparseable text yields
// a zero amount and an empty qualifier.
func ParsePrice(display string) Price {
	digits := digitsRe.ReplaceAllString(display, "")
	if digits == "" {
		return Price{}
	}
	val, err := strconv.Atoi(digits)
	if err != nil {
		return Price{}
	}
	if strings.Contains(strings.ToLower(display), "pw") {
		return Price{Amount: monthlyFromWeekly(val), Qualifier: "pw"}
	}
	return Price{Amount: val, Qualifier: "pcm"}
}

func isWeeklyFrequency(freq string) bool {
	return strings.Contains(strings.ToLower(freq), "week")
}

func monthlyFromWeekly(weekly int) int {
	return int(math.Round(float64(weekly) * 52 / 12))
}

// AbsoluteURL resolves the URL forms the origin mixes freely: absolute,
// protocol-relative, and site-root-relative. Empty input stays empty.
func AbsoluteURL(val string) string {
	switch {
	case val == "":
		return ""
	case strings.HasPrefix(val, "http"):
		return val
	case strings.HasPrefix(val, "//"):
		return "https:" + val
	case strings.HasPrefix(val, "/"):
		return Base + val
	}
	return val
}

// StripHTML flattens markup into plain text for description fields.
func StripHTML(val string) string {
	return strings.Join(strings.Fields(tagRe.ReplaceAllString(val, " ")), " ")
}

// extractNextData pulls the current-generation __NEXT_DATA__ script payload
// out of a rendered page. Returns nil when the script is absent or its body
// is not valid JSON.
func extractNextData(html string) []byte {
	m := nextDataRe.FindStringSubmatch(html)
	if m == nil {
		return nil
	}
	raw := []byte(m[1])
	if !json.Valid(raw) {
		return nil
	}
	return raw
}

// pageModelScanCap bounds the brace scan on pathological pages.
const pageModelScanCap = 500_000

// extractPageModel locates the legacy window.PAGE_MODEL global assignment.
// The payload nests objects and its strings may contain literal braces, so
// it is isolated by tracking brace depth from the first '{' after the
// marker, not by regex.
func extractPageModel(html string) []byte {
	marker := strings.Index(html, "window.PAGE_MODEL")
	if marker < 0 {
		return nil
	}
	start := strings.Index(html[marker:], "{")
	if start < 0 {
		return nil
	}
	start += marker

	limit := start + pageModelScanCap
	if limit > len(html) {
		limit = len(html)
	}
	depth := 0
	inString := false
	for i := start; i < limit; i++ {
		switch html[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					raw := []byte(html[start : i+1])
					if !json.Valid(raw) {
						return nil
					}
					return raw
				}
			}
		}
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
