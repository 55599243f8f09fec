package grouper

import (
	"regexp"
	"strconv"
	"strings"
)

// Size token patterns matched against the SKU suffix. An optional leading
// number covers combined numeric-letter sizes like "32XL".
var sizePatterns = []*regexp.Regexp{
	// Footwear sizes keep number and width together: "7M", "10.5W", "12EW".
	// Checked first so "7M" is not split into a garment "M".
	regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)(M|W|EW|XW)$`),
	// The digit group is lazy so "2XL" reads as the token 2XL, not 2+"XL".
	regexp.MustCompile(`(?i)^((?:\d+)??)(2XS|3XS|XS|S|M|L|XL|2XL|3XL|4XL|5XL|XXS|XXL|XXXL)$`),
	regexp.MustCompile(`(?i)^(\d+)[-_]?(2XS|3XS|XS|S|M|L|XL|2XL|3XL|4XL|5XL)$`),
}

var (
	sizeInName  = regexp.MustCompile(`(?i),\s*(X-Small|Small|Medium|Large|X-Large|2X-Large|3X-Large|XXS|XS|S|M|L|XL|XXL|XXXL)\s*$`)
	colorInName = regexp.MustCompile(`(?i),\s*(Black|White|Navy|Beige|Orange|Yellow|Red|Blue|Green|Gray|Grey|Hi-Viz|Hi-Vis|Camo)\s*$`)
)

// colorCodes maps vendor color abbreviations, longest first so "CAMO" wins
// over a substring hit on "CA".
var colorCodes = []struct {
	code string
	name string
}{
	{"CAMO", "Camo"},
	{"HVO", "Hi-Viz Orange"},
	{"BK", "Black"},
	{"WH", "White"},
	{"NV", "Navy"},
	{"OR", "Orange"},
	{"YL", "Yellow"},
	{"RD", "Red"},
	{"BL", "Blue"},
	{"GR", "Green"},
	{"RB", "Royal Blue"},
}

func sizeFromSuffix(suffix string) string {
	if suffix == "" {
		return ""
	}
	for _, p := range sizePatterns {
		if m := p.FindStringSubmatch(suffix); m != nil {
			// Both groups combine: "10.5W" stays footwear, "32XL" keeps
			// its waist number, a bare "2XL" is just the token.
			return strings.ToUpper(m[1] + m[2])
		}
	}
	return ""
}

func sizeFromName(name string) string {
	if m := sizeInName.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

func colorFromSuffix(suffix string) string {
	upper := strings.ToUpper(suffix)
	for _, c := range colorCodes {
		if strings.Contains(upper, c.code) {
			return c.name
		}
	}
	return ""
}

func colorFromName(name string) string {
	if m := colorInName.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

// CleanBaseName strips the trailing size and color descriptors from a row
// name so a variant group shares one product name. Both descriptors may be
// present ("Cooling Vest, X-Large, Black"), so stripping repeats until the
// name stops changing.
func CleanBaseName(name string) string {
	for {
		stripped := sizeInName.ReplaceAllString(name, "")
		stripped = colorInName.ReplaceAllString(stripped, "")
		if stripped == name {
			return strings.TrimSpace(name)
		}
		name = stripped
	}
}

// garmentOrder is the canonical small-to-large ordering for apparel sizes.
var garmentOrder = map[string]int{
	"3XS": 0, "2XS": 1, "XXS": 1, "XS": 2, "S": 3, "M": 4, "L": 5,
	"XL": 6, "2XL": 7, "XXL": 7, "3XL": 8, "XXXL": 8, "4XL": 9, "5XL": 10,
}

// sizeSortKey ranks a size for ordering. Numeric sizes (footwear, waist)
// sort by value; garment tokens sort by canonical order; anything else gets
// a large rank so it falls to the end.
func sizeSortKey(size string) (float64, bool) {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" {
		return 0, false
	}
	if rank, ok := garmentOrder[s]; ok {
		return float64(rank), true
	}
	// Footwear sizes carry a width suffix; widths order narrow to wide.
	num := s
	width := 0.0
	for _, w := range []struct {
		suffix string
		rank   float64
	}{{"EW", 0.2}, {"XW", 0.2}, {"M", 0.0}, {"W", 0.1}} {
		if strings.HasSuffix(num, w.suffix) {
			num = strings.TrimSuffix(num, w.suffix)
			width = w.rank
			break
		}
	}
	if f, err := strconv.ParseFloat(num, 64); err == nil {
		// Offset past the garment ranks so mixed groups stay stable.
		return 100 + f + width, true
	}
	return 0, false
}
