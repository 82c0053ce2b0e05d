package services

import (
	"strings"

	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/models"
)

// suggestedCategories is the static, enumerated category set offered
// whenever ranking comes back empty. It is independent of the query
// and must never be empty: downstream UX leans on it.
var suggestedCategories = []string{"education", "healthcare", "financial_aid"}

// EmptyResultHandler produces category suggestions and clarifying
// questions when no scheme matches a query.
type EmptyResultHandler struct{}

func NewEmptyResultHandler() *EmptyResultHandler {
	return &EmptyResultHandler{}
}

// Handle composes the localized fallback for a query that matched
// nothing. Questions are generated only for the entity slots that were
// absent, category first.
func (h *EmptyResultHandler) Handle(entities models.Entities, lang string) models.FallbackResult {
	var questions []string
	if entities.Category == "" {
		questions = append(questions, locale.Message("question_category", lang))
	}
	if entities.Demographic == "" {
		questions = append(questions, locale.Message("question_demographic", lang))
	}

	return models.FallbackResult{
		Message:             h.buildMessage(questions, lang),
		SuggestedCategories: suggestedCategories,
		ClarifyingQuestions: questions,
	}
}

func (h *EmptyResultHandler) buildMessage(questions []string, lang string) string {
	var b strings.Builder
	b.WriteString(locale.Message("no_match", lang))
	b.WriteString("\n")
	b.WriteString(locale.Message("explore_categories", lang))
	b.WriteString("\n")

	for _, category := range suggestedCategories {
		b.WriteString("- ")
		b.WriteString(locale.Message("category_"+category, lang))
		b.WriteString("\n")
	}

	if len(questions) > 0 {
		b.WriteString("\n")
		for _, q := range questions {
			b.WriteString(q)
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String())
}
