// Package fixture serves deterministic canned responses standing in for
// the live backend. It is a leaf with no dependencies: every answer is
// copied from a static table, unknown resources get an empty neutral
// answer, and nothing here can fail.
package fixture

import (
	"net/url"
	"strings"

	"github.com/kayacantekin/aidpanel/internal/domain"
)

// Provider answers resource requests from the static fixture tables.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

// Resources lists the resource paths with defined fixtures.
func (p *Provider) Resources() []string {
	names := make([]string, 0, len(fixtureData))
	for _, r := range fixtureOrder {
		names = append(names, r)
	}
	return names
}

// Has reports whether a fixture table exists for the resource.
func (p *Provider) Has(resource string) bool {
	_, ok := fixtureData[normalizeResource(resource)]
	return ok
}

// List returns a copy of the canned record list for the resource.
// Unknown resources return an empty list.
func (p *Provider) List(resource string) []domain.Record {
	return copyRecords(fixtureData[normalizeResource(resource)])
}

// Get returns the canned record with the given id, or ErrNotFound.
func (p *Provider) Get(resource, id string) (domain.Record, error) {
	for _, rec := range fixtureData[normalizeResource(resource)] {
		if recordID(rec) == id {
			return copyRecord(rec), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Stats returns a copy of the canned stats shape for the resource.
// Unknown resources return an empty shape.
func (p *Provider) Stats(resource string) domain.Record {
	stats, ok := fixtureStats[normalizeResource(resource)]
	if !ok {
		return domain.Record{}
	}
	return copyRecord(stats)
}

// Search returns the canned records whose string fields contain the
// query, case-insensitively. An empty query matches everything.
func (p *Provider) Search(resource, query string) []domain.Record {
	records := fixtureData[normalizeResource(resource)]
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return copyRecords(records)
	}

	matched := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		for _, value := range rec {
			s, ok := value.(string)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(s), needle) {
				matched = append(matched, copyRecord(rec))
				break
			}
		}
	}
	return matched
}

// Payload answers an arbitrary request path with the canned payload the
// live backend would have produced. Mutating verbs echo the submitted
// body so the caller can layer synthesized identity on top; identity is
// never minted here because the provider must stay free of randomness.
func (p *Provider) Payload(method, path string, body domain.Record, query url.Values) any {
	resource, rest := splitPath(path)

	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "GET", "":
		switch {
		case rest == "":
			return p.List(resource)
		case rest == "stats":
			return p.Stats(resource)
		case rest == "search":
			return p.Search(resource, query.Get("q"))
		default:
			rec, err := p.Get(resource, rest)
			if err != nil {
				return domain.Record{}
			}
			return rec
		}
	case "DELETE":
		return domain.Record{"success": true, "id": rest}
	case "POST", "PUT", "PATCH":
		if body == nil {
			return domain.Record{}
		}
		return copyRecord(body)
	}

	return domain.Record{}
}

func normalizeResource(resource string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(resource)), "/")
}

func splitPath(path string) (resource, rest string) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func recordID(rec domain.Record) string {
	id, _ := rec["id"].(string)
	return id
}

func copyRecord(rec domain.Record) domain.Record {
	if rec == nil {
		return nil
	}
	out := make(domain.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func copyRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, copyRecord(rec))
	}
	return out
}
