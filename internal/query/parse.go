package query

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedQuery holds the structured fields extracted from a free-text prompt:
// either a single location or an origin/destination pair, a naira amount,
// and a bedroom count. Zero values mean "not present in the text".
type ParsedQuery struct {
	Location    string  `json:"location,omitempty"`
	Origin      string  `json:"origin,omitempty"`
	Destination string  `json:"destination,omitempty"`
	AmountNGN   float64 `json:"amount_ngn,omitempty"`
	Bedrooms    int     `json:"bedrooms,omitempty"`
}

// IsRoute reports whether the text asked about a corridor rather than a
// single location.
func (p ParsedQuery) IsRoute() bool {
	return p.Origin != "" && p.Destination != ""
}

var (
	bedroomsRe = regexp.MustCompile(`(?i)\b(\d+)[\s-]*(?:bed(?:room)?s?|br)\b`)
	amountRe   = regexp.MustCompile(`(?i)(?:₦|\bngn\s*)([\d,]+(?:\.\d+)?)\s*(k|m|b|thousand|million|billion)?|\b([\d,]+(?:\.\d+)?)\s*(k|m|b|thousand|million|billion)\b`)
	routeRe    = regexp.MustCompile(`(?i)\b(?:from\s+)?([\p{L}\d' .-]+?)\s+to\s+([\p{L}\d' .-]+)`)
	locationRe = regexp.MustCompile(`(?i)\b(?:in|at|around|near)\s+([\p{L}\d' .-]+)`)
)

var amountScale = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "million": 1e6,
	"b": 1e9, "billion": 1e9,
}

// stopwords are filler tokens trimmed off extracted location phrases.
var stopwords = map[string]bool{
	"i": true, "we": true, "my": true, "me": true, "a": true, "an": true,
	"the": true, "is": true, "it": true, "please": true, "want": true,
	"wants": true, "looking": true, "look": true, "buy": true,
	"buying": true, "rent": true, "renting": true, "house": true,
	"home": true, "flat": true, "apartment": true, "property": true,
	"land": true, "for": true, "under": true, "below": true,
	"within": true, "with": true, "budget": true, "about": true,
	"how": true, "much": true, "safe": true, "what": true,
	"route": true, "commute": true, "between": true, "and": true,
	"compare": true, "versus": true, "vs": true, "or": true,
	"show": true, "find": true, "from": true,
	"in": true, "at": true, "around": true, "near": true, "of": true,
}

// ParseQuery extracts the structured fields a prompt like
// "3 bedroom from Ajah to Victoria Island under ₦80m" carries. Amount and
// bedroom phrases are consumed first so their digits never leak into the
// location text. Extraction is best-effort: absent fields stay zero.
func ParseQuery(text string) ParsedQuery {
	var p ParsedQuery
	rest := text

	if m := bedroomsRe.FindStringSubmatch(rest); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			p.Bedrooms = n
			rest = strings.Replace(rest, m[0], " ", 1)
		}
	}

	if m := amountRe.FindStringSubmatch(rest); m != nil {
		num, suffix := m[1], m[2]
		if num == "" {
			num, suffix = m[3], m[4]
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64); err == nil {
			if scale, ok := amountScale[strings.ToLower(suffix)]; ok {
				v *= scale
			}
			p.AmountNGN = v
			rest = strings.Replace(rest, m[0], " ", 1)
		}
	}

	if m := routeRe.FindStringSubmatch(rest); m != nil {
		origin, destination := cleanLocation(m[1]), cleanLocation(m[2])
		explicitFrom := strings.Contains(strings.ToLower(m[0]), "from ")
		if origin != "" && destination != "" && (explicitFrom || !locationRe.MatchString(rest)) {
			p.Origin, p.Destination = origin, destination
			return p
		}
	}

	if m := locationRe.FindStringSubmatch(rest); m != nil {
		p.Location = cleanLocation(m[1])
		return p
	}

	// No preposition: whatever survives stopword trimming is the location
	// ("Ikoyi 3 bedroom 120m" style queries).
	p.Location = cleanLocation(rest)
	return p
}

// cleanLocation trims punctuation and filler: leading stopwords are skipped,
// and the phrase ends at the next stopword ("Lekki for my family" -> "Lekki").
func cleanLocation(s string) string {
	words := strings.Fields(strings.Trim(s, " .,-?!"))
	start := 0
	for start < len(words) && stopwords[strings.ToLower(words[start])] {
		start++
	}
	end := start
	for end < len(words) && !stopwords[strings.ToLower(words[end])] {
		end++
	}
	return strings.Trim(strings.Join(words[start:end], " "), " .,-?!")
}
