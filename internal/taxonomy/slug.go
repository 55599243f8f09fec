package taxonomy

import (
	"regexp"
	"strings"
)

var (
	trademarks   = regexp.MustCompile(`[®™©]`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// NormalizeName canonicalizes a brand or category name for matching:
// trademark marks stripped, whitespace collapsed, lowercased.
func NormalizeName(name string) string {
	name = trademarks.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(strings.TrimSpace(name))
}

// displayName cleans a vendor name for display: trademark marks stripped,
// whitespace collapsed, all-caps vendor text title-cased.
func displayName(name string) string {
	name = trademarks.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")
	if name != "" && name == strings.ToUpper(name) && name != strings.ToLower(name) {
		words := strings.Fields(strings.ToLower(name))
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		name = strings.Join(words, " ")
	}
	return name
}

// Slugify turns a name into a URL slug: lowercase, alphanumerics kept,
// everything else collapsed to single dashes.
func Slugify(name string) string {
	s := NormalizeName(name)
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
