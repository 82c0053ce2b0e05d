package models

import "time"

// SessionRecord is the volatile conversation context kept per session
// id. By contract it carries no PII: only the preferred language, the
// schemes mentioned so far and small non-identifying attribute tags
// such as "category: farmer".
type SessionRecord struct {
	SessionID          string            `json:"session_id"`
	CreatedAt          time.Time         `json:"created_at"`
	LastActivity       time.Time         `json:"last_activity"`
	Language           string            `json:"language"`
	MentionedSchemeIDs []string          `json:"mentioned_scheme_ids"`
	UserAttributes     map[string]string `json:"user_attributes"`
}

// ContextPatch is merged into a session on update. Nil/empty fields
// leave the existing context untouched.
type ContextPatch struct {
	Language           string
	MentionedSchemeIDs []string
	UserAttributes     map[string]string
}
