package models

// SchemeRecord is the normalized, immutable representation of a
// government welfare scheme. Localized fields map language code to
// text; missing entries are allowed and resolved through the locale
// fallback chain at display time. Records are owned by the catalogue
// and shared read-only across concurrent requests.
type SchemeRecord struct {
	ID          string            `json:"id"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	Eligibility map[string]string `json:"eligibility"`
	Benefit     map[string]string `json:"benefit"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags"`
}

// HasTag reports whether the scheme carries the given tag.
func (s *SchemeRecord) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScoredMatch pairs a scheme with its relevance score and the labels
// of the criteria that matched. Created per ranking call and discarded
// after response assembly.
type ScoredMatch struct {
	Scheme          *SchemeRecord
	Score           int
	MatchedCriteria []string
}

// SchemeSummary is the compact wire form of a matched scheme. Full
// descriptions and eligibility text are never embedded here so the
// response stays within the byte budget.
type SchemeSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
}
