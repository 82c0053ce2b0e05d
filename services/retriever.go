package services

import (
	"sort"
	"strings"
	"unicode"

	"scheme-assistant-platform/models"
)

// Field weights for token matches. A token appearing in several fields
// accumulates each contribution.
const (
	nameWeight        = 2
	tagWeight         = 2
	eligibilityWeight = 1
	descriptionWeight = 1

	categoryBonus    = 3
	demographicBonus = 2
)

// Retriever ranks catalogue schemes against free-text queries using
// weighted keyword overlap. It holds a read-only token index built
// once from the immutable catalogue, so Search is pure with respect to
// shared state and safe under unbounded concurrency.
type Retriever struct {
	catalog *Catalog
	index   []schemeTokens
}

// schemeTokens caches the per-field token sets of one scheme. Matching
// is language-agnostic: each field concatenates every available
// language before tokenization.
type schemeTokens struct {
	name        map[string]struct{}
	tags        map[string]struct{}
	eligibility map[string]struct{}
	description map[string]struct{}
}

func NewRetriever(catalog *Catalog) *Retriever {
	index := make([]schemeTokens, 0, catalog.Len())
	for _, scheme := range catalog.GetAll() {
		index = append(index, schemeTokens{
			name:        Tokenize(joinLocalized(scheme.Name)),
			tags:        Tokenize(strings.Join(scheme.Tags, " ")),
			eligibility: Tokenize(joinLocalized(scheme.Eligibility)),
			description: Tokenize(joinLocalized(scheme.Description)),
		})
	}
	return &Retriever{catalog: catalog, index: index}
}

// Tokenize lower-cases the input and splits it on non-word-character
// boundaries into a set of tokens. Duplicates collapse; order is
// irrelevant. Word characters cover all Unicode letters and digits so
// Devanagari and other Indic scripts tokenize correctly.
func Tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}

// Search scores every catalogue entry, discards zero scores and
// returns at most k matches ordered by score descending. Equal scores
// keep their relative catalogue order, which keeps results
// reproducible across identical requests.
func (r *Retriever) Search(query string, entities models.Entities, k int) []models.ScoredMatch {
	if k <= 0 {
		return nil
	}

	queryTokens := Tokenize(query)

	var matches []models.ScoredMatch
	for i, scheme := range r.catalog.GetAll() {
		score, criteria := r.scoreScheme(i, scheme, queryTokens, entities)
		if score <= 0 {
			// Score 0 means "no match", not "low relevance".
			continue
		}
		matches = append(matches, models.ScoredMatch{
			Scheme:          scheme,
			Score:           score,
			MatchedCriteria: criteria,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// scoreScheme computes the relevance score of a single scheme plus the
// labels of the criteria that contributed.
func (r *Retriever) scoreScheme(idx int, scheme *models.SchemeRecord, queryTokens map[string]struct{}, entities models.Entities) (int, []string) {
	tok := r.index[idx]
	score := 0
	var nameHits, tagHits, eligibilityHits, descriptionHits int

	for token := range queryTokens {
		if _, ok := tok.name[token]; ok {
			score += nameWeight
			nameHits++
		}
		if _, ok := tok.tags[token]; ok {
			score += tagWeight
			tagHits++
		}
		if _, ok := tok.eligibility[token]; ok {
			score += eligibilityWeight
			eligibilityHits++
		}
		if _, ok := tok.description[token]; ok {
			score += descriptionWeight
			descriptionHits++
		}
	}

	var criteria []string
	if nameHits > 0 {
		criteria = append(criteria, "name")
	}
	if tagHits > 0 {
		criteria = append(criteria, "tags")
	}
	if eligibilityHits > 0 {
		criteria = append(criteria, "eligibility")
	}
	if descriptionHits > 0 {
		criteria = append(criteria, "description")
	}

	// Entity bonuses apply independently of token overlap.
	if entities.Category != "" && entities.Category == scheme.Category {
		score += categoryBonus
		criteria = append(criteria, "category")
	}
	if entities.Demographic != "" && scheme.HasTag(entities.Demographic) {
		score += demographicBonus
		criteria = append(criteria, "demographic")
	}

	return score, criteria
}

func joinLocalized(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}
