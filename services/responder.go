package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/models"
)

// ErrResponseTooLarge signals that an assembled response exceeded the
// configured byte budget. It is a last-resort safety valve, surfaced
// as a server-side failure rather than silently truncated output.
var ErrResponseTooLarge = errors.New("assembled response exceeds byte budget")

// capacityPayload replaces any over-budget response wholesale. It is
// itself well within any sane budget.
var capacityPayload = []byte(`{"msg":"response too large"}`)

// Responder assembles the compact wire responses and enforces the hard
// byte ceiling that keeps the service usable over 2G-class links.
type Responder struct {
	maxResponseBytes int
	maxActionSteps   int
}

func NewResponder(maxResponseBytes, maxActionSteps int) *Responder {
	return &Responder{
		maxResponseBytes: maxResponseBytes,
		maxActionSteps:   maxActionSteps,
	}
}

// CapacityPayload returns the fixed "response too large" error body.
func (r *Responder) CapacityPayload() []byte {
	return capacityPayload
}

// Assemble builds the response for a non-empty ranking result. Scheme
// summaries carry only id, localized name and localized benefit; the
// long-form fields never ride along, bounding size upstream of the
// budget check.
func (r *Responder) Assemble(matches []models.ScoredMatch, lang string, steps []string) (*models.AskResponse, []byte, error) {
	summaries := make([]models.SchemeSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, models.SchemeSummary{
			ID:      m.Scheme.ID,
			Name:    locale.Resolve(m.Scheme.Name, lang),
			Benefit: locale.Resolve(m.Scheme.Benefit, lang),
		})
	}

	resp := &models.AskResponse{
		Msg:     locale.Message("schemes_found", lang),
		Schemes: summaries,
		Steps:   r.NumberSteps(steps),
		Lang:    lang,
	}

	raw, err := r.encode(resp)
	if err != nil {
		return nil, nil, err
	}
	resp.ByteSize = len(raw)
	return resp, raw, nil
}

// AssembleFallback wraps an empty-result fallback in the standard wire
// shape. The scheme list stays empty; the composed message carries the
// suggestions and clarifying questions.
func (r *Responder) AssembleFallback(fb models.FallbackResult, lang string) (*models.AskResponse, []byte, error) {
	resp := &models.AskResponse{
		Msg:     fb.Message,
		Schemes: []models.SchemeSummary{},
		Steps:   []string{},
		Lang:    lang,
	}

	raw, err := r.encode(resp)
	if err != nil {
		return nil, nil, err
	}
	resp.ByteSize = len(raw)
	return resp, raw, nil
}

// NumberSteps formats action steps as numbered instructions, bounded
// by the configured maximum.
func (r *Responder) NumberSteps(steps []string) []string {
	if len(steps) > r.maxActionSteps {
		steps = steps[:r.maxActionSteps]
	}
	numbered := make([]string, 0, len(steps))
	for i, step := range steps {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, step))
	}
	return numbered
}

// EncodeWithinBudget serializes any payload compactly and enforces the
// byte ceiling. Used by the lightweight endpoints (health) that bypass
// full assembly.
func (r *Responder) EncodeWithinBudget(v any) ([]byte, error) {
	return r.encode(v)
}

func (r *Responder) encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(raw) > r.maxResponseBytes {
		return nil, ErrResponseTooLarge
	}
	return raw, nil
}
