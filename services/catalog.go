package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"scheme-assistant-platform/internal/logger"
	"scheme-assistant-platform/models"
)

// Catalog holds the scheme records loaded at startup. It is read-only
// after construction and safe to share across concurrent requests.
type Catalog struct {
	schemes []*models.SchemeRecord
	byID    map[string]*models.SchemeRecord
}

// LoadCatalog reads the scheme catalogue from a JSON file and
// normalizes each entry into a strict SchemeRecord. A malformed file
// is an error (treated as fatal at startup); a missing file yields an
// empty catalogue.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty catalogues are valid (every query falls back), but
			// a missing file at the configured path is almost always a
			// deployment mistake, so say so loudly.
			logger.Warn("scheme data file not found, starting with an empty catalogue", "path", path)
			return NewCatalog(nil), nil
		}
		return nil, fmt.Errorf("failed to read scheme data: %w", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid scheme data format: %w", err)
	}

	schemes := make([]*models.SchemeRecord, 0, len(entries))
	for i, entry := range entries {
		rec, err := normalizeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("scheme entry %d: %w", i, err)
		}
		schemes = append(schemes, rec)
	}

	return NewCatalog(schemes), nil
}

// NewCatalog builds a catalogue from already-normalized records,
// preserving their order. Exposed for tests and embedded fixtures.
func NewCatalog(schemes []*models.SchemeRecord) *Catalog {
	byID := make(map[string]*models.SchemeRecord, len(schemes))
	for _, s := range schemes {
		byID[s.ID] = s
	}
	return &Catalog{schemes: schemes, byID: byID}
}

// GetAll returns the records in catalogue order. Callers must treat
// the slice and the records as read-only.
func (c *Catalog) GetAll() []*models.SchemeRecord {
	return c.schemes
}

// GetByID retrieves a scheme by its stable id.
func (c *Catalog) GetByID(id string) (*models.SchemeRecord, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Len returns the number of schemes in the catalogue.
func (c *Catalog) Len() int {
	return len(c.schemes)
}

// normalizeEntry coerces the two upstream record variants into one
// shape: nested localized maps (name: {"hi": ...}) and legacy flat
// keys (name_hi, benefits_en). Coercion happens once here instead of
// being re-derived per request.
func normalizeEntry(entry map[string]any) (*models.SchemeRecord, error) {
	id, _ := entry["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("missing id")
	}

	rec := &models.SchemeRecord{
		ID:          id,
		Name:        localizedField(entry, "name"),
		Description: localizedField(entry, "description"),
		Eligibility: localizedField(entry, "eligibility"),
		Benefit:     localizedField(entry, "benefit", "benefits"),
	}

	if category, ok := entry["category"].(string); ok {
		rec.Category = category
	}

	if rawTags, ok := entry["tags"].([]any); ok {
		for _, t := range rawTags {
			if tag, ok := t.(string); ok && tag != "" {
				rec.Tags = append(rec.Tags, tag)
			}
		}
	}

	if len(rec.Name) == 0 {
		return nil, fmt.Errorf("scheme %s has no name in any language", id)
	}

	return rec, nil
}

// localizedField gathers every localized value for a field, accepting
// either a nested map under any of the given keys or flat
// "<key>_<lang>" entries.
func localizedField(entry map[string]any, keys ...string) map[string]string {
	out := make(map[string]string)

	for _, key := range keys {
		if nested, ok := entry[key].(map[string]any); ok {
			for lang, v := range nested {
				if text, ok := v.(string); ok && text != "" {
					out[lang] = text
				}
			}
		}

		prefix := key + "_"
		for k, v := range entry {
			if !strings.HasPrefix(k, prefix) {
				continue
			}
			lang := strings.TrimPrefix(k, prefix)
			if text, ok := v.(string); ok && text != "" && lang != "" {
				out[lang] = text
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
