package services

import (
	"context"

	"scheme-assistant-platform/internal/locale"
	"scheme-assistant-platform/internal/logger"
	"scheme-assistant-platform/internal/telemetry"
	"scheme-assistant-platform/models"
)

// Assistant wires the ranking pipeline end to end: tokenize and score
// the catalogue, then assemble either the scheme list or the
// empty-result fallback. Both the HTTP and WebSocket surfaces call
// Answer with the same request shape.
type Assistant struct {
	retriever  *Retriever
	responder  *Responder
	fallback   *EmptyResultHandler
	sessions   *SessionManager
	normalizer *locale.Normalizer
	metrics    *telemetry.Metrics
	maxResults int
}

func NewAssistant(
	retriever *Retriever,
	responder *Responder,
	fallback *EmptyResultHandler,
	sessions *SessionManager,
	normalizer *locale.Normalizer,
	metrics *telemetry.Metrics,
	maxResults int,
) *Assistant {
	return &Assistant{
		retriever:  retriever,
		responder:  responder,
		fallback:   fallback,
		sessions:   sessions,
		normalizer: normalizer,
		metrics:    metrics,
		maxResults: maxResults,
	}
}

// Answer runs one query through ranking and assembly, returning the
// serialized response bytes ready for the wire. ErrResponseTooLarge is
// the only expected failure; callers replace the payload wholesale.
func (a *Assistant) Answer(ctx context.Context, req models.AskRequest) (*models.AskResponse, []byte, error) {
	lang := a.normalizer.Normalize(req.Lang)
	entities := req.Entities()

	matches := a.retriever.Search(req.Q, entities, a.maxResults)
	a.metrics.RecordSearch(ctx, len(matches) > 0)

	a.touchSession(ctx, req.SID, lang, entities, matches)

	if len(matches) == 0 {
		fb := a.fallback.Handle(entities, lang)
		return a.responder.AssembleFallback(fb, lang)
	}

	return a.responder.Assemble(matches, lang, nil)
}

// touchSession refreshes the conversation context when the client sent
// a session id. Session upkeep is best-effort: a store failure must
// never fail the query itself.
func (a *Assistant) touchSession(ctx context.Context, sid, lang string, entities models.Entities, matches []models.ScoredMatch) {
	if sid == "" {
		return
	}

	patch := models.ContextPatch{Language: lang}
	for _, m := range matches {
		patch.MentionedSchemeIDs = append(patch.MentionedSchemeIDs, m.Scheme.ID)
	}

	attrs := make(map[string]string)
	if entities.Category != "" {
		attrs["category"] = entities.Category
	}
	if entities.Demographic != "" {
		attrs["demographic"] = entities.Demographic
	}
	if len(attrs) > 0 {
		patch.UserAttributes = attrs
	}

	if _, err := a.sessions.Update(ctx, sid, patch); err != nil {
		logger.Warn("session update failed", "session_id", sid, "error", err)
	}
}
