package replacement

import "strings"

// CountryRanking maps a country to its team ranking; lower is stronger.
// Lookups ignore case and surrounding whitespace.
type CountryRanking struct {
	ranks map[string]int
}

// NewCountryRanking copies table into an immutable ranking.
func NewCountryRanking(table map[string]int) CountryRanking {
	ranks := make(map[string]int, len(table))
	for country, rank := range table {
		ranks[normalizeCountry(country)] = rank
	}
	return CountryRanking{ranks: ranks}
}

// Rank returns the ranking of country and whether it is listed.
func (c CountryRanking) Rank(country string) (int, bool) {
	r, ok := c.ranks[normalizeCountry(country)]
	return r, ok
}

// Len returns the number of ranked countries.
func (c CountryRanking) Len() int { return len(c.ranks) }

func normalizeCountry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
