package rightmove

import (
	"encoding/json"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"comma string", "2,500", 2500, true},
		{"plain string", "42", 42, true},
		{"nil", nil, 0, false},
		{"garbage", "abc", 0, false},
		{"empty string", "", 0, false},
		{"float rounds", 2.6, 3, true},
		{"int passthrough", 7, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ToInt(%v) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in        string
		amount    int
		qualifier string
	}{
		{"£1,200 pcm", 1200, "pcm"},
		{"£300 pw", 1300, "pw"}, // round(300*52/12)
		{"£2,000", 2000, "pcm"},
		{"POA", 0, ""},
		{"", 0, ""},
	}
	for _, tt := range tests {
		got := ParsePrice(tt.in)
		if got.Amount != tt.amount || got.Qualifier != tt.qualifier {
			t.Errorf("ParsePrice(%q) = %+v, want {%d %s}", tt.in, got, tt.amount, tt.qualifier)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/foo/bar", Base + "/foo/bar"},
		{"https://x/y", "https://x/y"},
		{"//media.example/i.jpg", "https://media.example/i.jpg"},
		{"", ""},
		{"relative.html", "relative.html"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.in); got != tt.want {
			t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	in := "<p>A  lovely\n<b>flat</b></p>  near   the park"
	want := "A lovely flat near the park"
	if got := StripHTML(in); got != want {
		t.Errorf("StripHTML = %q, want %q", got, want)
	}
}

func TestResolveSortType(t *testing.T) {
	tests := []struct{ in, want string }{
		{"newest", "6"},
		{"price-asc", "1"},
		{"price-desc", "10"},
		{"oldest", "2"},
		{"whatever", "6"},
		{"", "6"},
	}
	for _, tt := range tests {
		if got := ResolveSortType(tt.in); got != tt.want {
			t.Errorf("ResolveSortType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPageModelBracesInStrings(t *testing.T) {
	html := `<html><script>window.PAGE_MODEL = {"a":"literal } brace","b":{"c":"and { another"},"d":1}</script></html>`
	raw := extractPageModel(html)
	if raw == nil {
		t.Fatal("expected a payload, got nil")
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("captured slice is not valid JSON: %v", err)
	}
	if got["a"] != "literal } brace" {
		t.Errorf("string with brace mangled: %v", got["a"])
	}
}

func TestExtractPageModelMissing(t *testing.T) {
	if raw := extractPageModel("<html>no marker here</html>"); raw != nil {
		t.Errorf("expected nil, got %q", raw)
	}
	// marker present but never balanced
	if raw := extractPageModel(`window.PAGE_MODEL = {"open":`); raw != nil {
		t.Errorf("expected nil for unbalanced payload, got %q", raw)
	}
}

func TestExtractNextData(t *testing.T) {
	html := `<script id="__NEXT_DATA__" type="application/json">{"props":{"ok":true}}</script>`
	if raw := extractNextData(html); raw == nil {
		t.Fatal("expected a payload, got nil")
	}
	if raw := extractNextData(`<script id="__NEXT_DATA__">not json</script>`); raw != nil {
		t.Errorf("expected nil for invalid JSON, got %q", raw)
	}
	if raw := extractNextData("<html></html>"); raw != nil {
		t.Errorf("expected nil when script absent, got %q", raw)
	}
}

func TestFlexNumber(t *testing.T) {
	var v struct {
		A flexNumber `json:"a"`
		B flexNumber `json:"b"`
		C flexNumber `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":123,"b":"456","c":null}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.A.String() != "123" || v.B.String() != "456" || v.C.String() != "" {
		t.Errorf("flexNumber decoded to %q %q %q", v.A, v.B, v.C)
	}
}
