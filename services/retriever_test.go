package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scheme-assistant-platform/models"
)

func testCatalog() *Catalog {
	return NewCatalog([]*models.SchemeRecord{
		{
			ID:          "fin_001",
			Name:        map[string]string{"hi": "किसान सम्मान निधि", "en": "Kisan Samman Nidhi"},
			Description: map[string]string{"en": "Income support for farmers"},
			Eligibility: map[string]string{"en": "Small and marginal farmers"},
			Benefit:     map[string]string{"en": "₹6000 per year"},
			Category:    "financial_aid",
			Tags:        []string{"farmer", "kisan", "income"},
		},
		{
			ID:          "edu_001",
			Name:        map[string]string{"hi": "छात्रवृत्ति योजना", "en": "Scholarship Scheme"},
			Description: map[string]string{"en": "Scholarship for students"},
			Eligibility: map[string]string{"en": "School students"},
			Benefit:     map[string]string{"en": "₹12000 per year"},
			Category:    "education",
			Tags:        []string{"student", "scholarship"},
		},
		{
			ID:       "hlth_001",
			Name:     map[string]string{"hi": "स्वास्थ्य बीमा योजना", "en": "Health Insurance Scheme"},
			Benefit:  map[string]string{"en": "Cover up to ₹5 lakh"},
			Category: "healthcare",
			Tags:     []string{"health", "insurance", "family"},
		},
	})
}

func TestSearchBoundedAndRanked(t *testing.T) {
	r := NewRetriever(testCatalog())

	matches := r.Search("scheme yojana insurance scholarship farmer", models.Entities{}, 2)

	require.LessOrEqual(t, len(matches), 2)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score,
			"scores must be non-increasing")
	}
}

func TestSearchStableTieBreak(t *testing.T) {
	catalog := NewCatalog([]*models.SchemeRecord{
		{ID: "a", Name: map[string]string{"en": "solar pump subsidy"}},
		{ID: "b", Name: map[string]string{"en": "solar pump subsidy"}},
		{ID: "c", Name: map[string]string{"en": "solar pump subsidy"}},
	})
	r := NewRetriever(catalog)

	matches := r.Search("solar pump", models.Entities{}, 3)

	require.Len(t, matches, 3)
	require.Equal(t, "a", matches[0].Scheme.ID)
	require.Equal(t, "b", matches[1].Scheme.ID)
	require.Equal(t, "c", matches[2].Scheme.ID)
}

func TestSearchExcludesZeroScores(t *testing.T) {
	r := NewRetriever(testCatalog())

	matches := r.Search("xyzabc completely unknown query", models.Entities{}, 3)

	require.Empty(t, matches)
}

func TestSearchDevanagariNameMatch(t *testing.T) {
	r := NewRetriever(testCatalog())

	matches := r.Search("किसान", models.Entities{}, 3)

	require.NotEmpty(t, matches)
	require.Equal(t, "fin_001", matches[0].Scheme.ID)
	require.GreaterOrEqual(t, matches[0].Score, 2, "name token match scores at least 2")
	require.Contains(t, matches[0].MatchedCriteria, "name")
}

func TestTokenScoresAccumulateAcrossFields(t *testing.T) {
	catalog := NewCatalog([]*models.SchemeRecord{
		{
			ID:   "s1",
			Name: map[string]string{"en": "solar subsidy"},
			Tags: []string{"solar"},
		},
	})
	r := NewRetriever(catalog)

	matches := r.Search("solar", models.Entities{}, 1)

	require.Len(t, matches, 1)
	// +2 name, +2 tags for the same token
	require.Equal(t, 4, matches[0].Score)
	require.Contains(t, matches[0].MatchedCriteria, "name")
	require.Contains(t, matches[0].MatchedCriteria, "tags")
}

func TestEntityBonuses(t *testing.T) {
	r := NewRetriever(testCatalog())

	cases := []struct {
		name     string
		entities models.Entities
		wantID   string
		want     int
		criteria string
	}{
		{
			name:     "category equality adds 3",
			entities: models.Entities{Category: "education"},
			wantID:   "edu_001",
			want:     3,
			criteria: "category",
		},
		{
			name:     "demographic tag adds 2",
			entities: models.Entities{Demographic: "farmer"},
			wantID:   "fin_001",
			want:     2,
			criteria: "demographic",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Query that overlaps with nothing: only the bonus scores.
			matches := r.Search("zzzz", tc.entities, 3)
			require.Len(t, matches, 1)
			require.Equal(t, tc.wantID, matches[0].Scheme.ID)
			require.Equal(t, tc.want, matches[0].Score)
			require.Contains(t, matches[0].MatchedCriteria, tc.criteria)
		})
	}
}

func TestSearchZeroKReturnsNothing(t *testing.T) {
	r := NewRetriever(testCatalog())
	require.Empty(t, r.Search("किसान", models.Entities{}, 0))
}

func TestTokenizeCollapsesDuplicatesAndCase(t *testing.T) {
	tokens := Tokenize("Farmer farmer FARMER, किसान-किसान!")
	require.Len(t, tokens, 2)
	require.Contains(t, tokens, "farmer")
	require.Contains(t, tokens, "किसान")
}
