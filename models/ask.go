package models

// Entities are the pre-extracted query slots that bias scoring. Slot
// extraction itself is an upstream concern; the platform only consumes
// the already-recognized values.
type Entities struct {
	Category    string
	Demographic string
}

// AskRequest is the inbound query shape shared by the HTTP and WebSocket
// surfaces. Field names are load-bearing for wire compatibility.
type AskRequest struct {
	Q           string `form:"q" json:"q" binding:"required"`
	Lang        string `form:"lang" json:"lang"`
	Category    string `form:"category" json:"category"`
	Demographic string `form:"demographic" json:"demographic"`
	SID         string `form:"sid" json:"sid"`
}

// Entities extracts the entity slots carried on the request.
func (r *AskRequest) Entities() Entities {
	return Entities{Category: r.Category, Demographic: r.Demographic}
}

// AskResponse is the compact response optimized for low bandwidth.
// HasMore is reserved for a future paginated protocol and omitted
// while false; ByteSize is measured after serialization and never put
// on the wire.
type AskResponse struct {
	Msg      string          `json:"msg"`
	Schemes  []SchemeSummary `json:"schemes"`
	Steps    []string        `json:"steps"`
	Lang     string          `json:"lang"`
	HasMore  bool            `json:"has_more,omitempty"`
	ByteSize int             `json:"-"`
}

// FallbackResult is produced when ranking yields nothing: a composed
// localized message, the static category suggestions and the
// clarifying questions generated for the missing entity slots.
type FallbackResult struct {
	Message             string
	SuggestedCategories []string
	ClarifyingQuestions []string
}
