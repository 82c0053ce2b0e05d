package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/models"
)

func TestFallbackAlwaysSuggestsCategories(t *testing.T) {
	h := NewEmptyResultHandler()

	fb := h.Handle(models.Entities{}, "hi")

	require.Equal(t, []string{"education", "healthcare", "financial_aid"}, fb.SuggestedCategories)
	require.NotEmpty(t, fb.Message)
	for _, category := range fb.SuggestedCategories {
		require.Contains(t, fb.Message, locale.Message("category_"+category, "hi"))
	}
}

func TestFallbackQuestionsCoverMissingSlotsOnly(t *testing.T) {
	h := NewEmptyResultHandler()

	cases := []struct {
		name     string
		entities models.Entities
		want     []string
	}{
		{
			name:     "no entities asks both, category first",
			entities: models.Entities{},
			want: []string{
				locale.Message("question_category", "hi"),
				locale.Message("question_demographic", "hi"),
			},
		},
		{
			name:     "category known asks only demographic",
			entities: models.Entities{Category: "education"},
			want:     []string{locale.Message("question_demographic", "hi")},
		},
		{
			name:     "demographic known asks only category",
			entities: models.Entities{Demographic: "farmer"},
			want:     []string{locale.Message("question_category", "hi")},
		},
		{
			name:     "both known asks nothing",
			entities: models.Entities{Category: "education", Demographic: "farmer"},
			want:     nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := h.Handle(tc.entities, "hi")
			require.Equal(t, tc.want, fb.ClarifyingQuestions)
			for _, q := range tc.want {
				require.Contains(t, fb.Message, q)
			}
		})
	}
}

func TestFallbackLocalized(t *testing.T) {
	h := NewEmptyResultHandler()

	hi := h.Handle(models.Entities{}, "hi")
	en := h.Handle(models.Entities{}, "en")
	require.NotEqual(t, hi.Message, en.Message)
	require.Contains(t, en.Message, locale.Message("no_match", "en"))

	// Unsupported strings fall through to Hindi.
	ta := h.Handle(models.Entities{}, "ta")
	require.Equal(t, hi.Message, ta.Message)
}
