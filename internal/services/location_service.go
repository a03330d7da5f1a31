package services

import (
	"strings"
)

const DefaultSuggestionLimit = 8

type LocationServiceInterface interface {
	Suggest(query string) []string
}

// LocationService matches queries against a fixed gazetteer. Matching is case
// insensitive; names starting with the query rank before names that only contain it.
type LocationService struct {
	gazetteer []string
	lowered   []string
	limit     int
}

func NewLocationService(gazetteer []string, limit int) LocationServiceInterface {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	lowered := make([]string, len(gazetteer))
	for i, name := range gazetteer {
		lowered[i] = strings.ToLower(name)
	}
	return &LocationService{
		gazetteer: gazetteer,
		lowered:   lowered,
		limit:     limit,
	}
}

func (l *LocationService) Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}

	var prefix, contains []string
	for i, name := range l.lowered {
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, l.gazetteer[i])
		case strings.Contains(name, q):
			contains = append(contains, l.gazetteer[i])
		}
	}

	out := append(prefix, contains...)
	if len(out) > l.limit {
		out = out[:l.limit]
	}
	if out == nil {
		return []string{}
	}
	return out
}

// SuggestionBox is the per-session state of the "traveling from" input.
type SuggestionBox struct {
	Query       string   `json:"query"`
	Visible     bool     `json:"visible"`
	Suggestions []string `json:"suggestions"`
}

// Type records typed text. Non-empty text opens the list, clearing it closes it.
func (b *SuggestionBox) Type(suggester LocationServiceInterface, text string) {
	b.Query = text
	if strings.TrimSpace(text) == "" {
		b.Visible = false
		b.Suggestions = []string{}
		return
	}
	b.Suggestions = suggester.Suggest(text)
	b.Visible = true
}

// Select closes the list and returns the exact suggestion to commit as the location.
func (b *SuggestionBox) Select(suggestion string) string {
	b.Query = suggestion
	b.Visible = false
	b.Suggestions = []string{}
	return suggestion
}

// Focus reopens the list for an already committed location.
func (b *SuggestionBox) Focus(suggester LocationServiceInterface, current string) {
	if strings.TrimSpace(current) == "" {
		return
	}
	b.Query = current
	b.Suggestions = suggester.Suggest(current)
	b.Visible = true
}
