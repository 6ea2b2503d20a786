// Package service exposes one uniform CRUD contract per backend
// resource. Every façade instance is bound to a single endpoint path and
// funnels all failures through one normalization point so nothing
// crosses the façade boundary without structured audit context.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kayacantekin/aidpanel/internal/apiclient"
	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"github.com/kayacantekin/aidpanel/internal/observability"
	"go.uber.org/zap"
)

// Requester is the transport port the façade delegates live calls to.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body domain.Record) (*apiclient.Response, error)
	Put(ctx context.Context, path string, body domain.Record) (*apiclient.Response, error)
	Delete(ctx context.Context, path string) (*apiclient.Response, error)
	Synthetic() bool
}

// DeleteResult reports the outcome of a delete operation.
type DeleteResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Service is the base façade over one resource endpoint. The endpoint
// binding is immutable for the lifetime of the instance.
type Service struct {
	endpoint string
	client   Requester
	fixtures *fixture.Provider
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(endpoint string, client Requester, fixtures *fixture.Provider, logger *zap.Logger) (*Service, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint binding is required")
	}
	if client == nil {
		return nil, fmt.Errorf("request client is required")
	}
	if fixtures == nil {
		return nil, fmt.Errorf("fixture provider is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		endpoint: endpoint,
		client:   client,
		fixtures: fixtures,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Endpoint returns the bound resource path.
func (s *Service) Endpoint() string { return s.endpoint }

// offline reports whether calls should short-circuit to fixtures without
// touching the request client. The client also degrades on its own when
// the backend fails mid-flight; this flag only covers the deliberate
// no-backend configuration, where the façade additionally owns
// synthesized identity and timestamps for mutating calls.
func (s *Service) offline() bool { return s.client.Synthetic() }

func (s *Service) GetAll(ctx context.Context) ([]domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "getAll")

	if s.offline() {
		return s.fixtures.List(s.endpoint), nil
	}

	resp, err := s.client.Get(ctx, "/"+s.endpoint, nil)
	if err != nil {
		return nil, s.handleError(ctx, "getAll", err)
	}

	records, err := resp.DecodeList()
	if err != nil {
		return nil, s.handleError(ctx, "getAll", err)
	}
	return records, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "getById")

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	if s.offline() {
		rec, err := s.fixtures.Get(s.endpoint, id)
		if err != nil {
			return nil, s.handleError(ctx, "getById", err)
		}
		return rec, nil
	}

	resp, err := s.client.Get(ctx, "/"+s.endpoint+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, s.handleError(ctx, "getById", err)
	}

	rec, err := resp.DecodeRecord()
	if err != nil {
		return nil, s.handleError(ctx, "getById", err)
	}
	return rec, nil
}

func (s *Service) Create(ctx context.Context, data domain.Record) (domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "create")

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: record data is required", domain.ErrValidation)
	}

	if s.offline() {
		created := cloneRecord(data)
		created["id"] = s.newID()
		created["createdAt"] = s.now().UTC().Format(time.RFC3339)
		return created, nil
	}

	resp, err := s.client.Post(ctx, "/"+s.endpoint, data)
	if err != nil {
		return nil, s.handleError(ctx, "create", err)
	}

	created, err := resp.DecodeRecord()
	if err != nil {
		return nil, s.handleError(ctx, "create", err)
	}
	if resp.Synthetic {
		// Unexpected outage degraded the call to fixtures mid-flight;
		// the echo payload still needs identity.
		s.synthesizeIdentity(created)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, data domain.Record) (domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "update")

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: record data is required", domain.ErrValidation)
	}

	if s.offline() {
		base, err := s.fixtures.Get(s.endpoint, id)
		if err != nil {
			base = domain.Record{"id": id}
		}
		for k, v := range data {
			base[k] = v
		}
		base["id"] = id
		base["updatedAt"] = s.now().UTC().Format(time.RFC3339)
		return base, nil
	}

	resp, err := s.client.Put(ctx, "/"+s.endpoint+"/"+url.PathEscape(id), data)
	if err != nil {
		return nil, s.handleError(ctx, "update", err)
	}

	updated, err := resp.DecodeRecord()
	if err != nil {
		return nil, s.handleError(ctx, "update", err)
	}
	if resp.Synthetic {
		updated["id"] = id
		updated["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "delete")

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	if s.offline() {
		return &DeleteResult{Success: true, ID: id}, nil
	}

	if _, err := s.client.Delete(ctx, "/"+s.endpoint+"/"+url.PathEscape(id)); err != nil {
		return nil, s.handleError(ctx, "delete", err)
	}
	return &DeleteResult{Success: true, ID: id}, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "search")

	if s.offline() {
		return s.fixtures.Search(s.endpoint, query), nil
	}

	params := url.Values{}
	params.Set("q", query)

	resp, err := s.client.Get(ctx, "/"+s.endpoint+"/search", params)
	if err != nil {
		return nil, s.handleError(ctx, "search", err)
	}

	records, err := resp.DecodeList()
	if err != nil {
		return nil, s.handleError(ctx, "search", err)
	}
	return records, nil
}

func (s *Service) GetStats(ctx context.Context) (domain.Record, error) {
	ctx = observability.WithOperation(ctx, s.endpoint, "getStats")

	if s.offline() {
		return s.fixtures.Stats(s.endpoint), nil
	}

	resp, err := s.client.Get(ctx, "/"+s.endpoint+"/stats", nil)
	if err != nil {
		return nil, s.handleError(ctx, "getStats", err)
	}

	stats, err := resp.DecodeRecord()
	if err != nil {
		return nil, s.handleError(ctx, "getStats", err)
	}
	return stats, nil
}

// filterByField is the shared query helper behind the resource-specific
// filters; specializations reuse handleError through the methods above
// instead of duplicating the normalization.
func (s *Service) filterByField(ctx context.Context, field, value string) ([]domain.Record, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if v, ok := rec[field].(string); ok && strings.EqualFold(v, value) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// handleError is the single normalization point: every failure the
// façade re-throws is logged with endpoint, operation, status, and body
// first, so the UI layer always receives a consistently shaped error
// with an audit trail behind it.
func (s *Service) handleError(ctx context.Context, operation string, err error) error {
	fields := []zap.Field{
		zap.String("endpoint", s.endpoint),
		zap.String("operation", operation),
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields,
			zap.Int("status", apiErr.StatusCode),
			zap.ByteString("body", apiErr.Body),
		)
	}

	observability.WithContextLogger(s.logger, ctx).Error("request failed", append(fields, zap.Error(err))...)
	return fmt.Errorf("%s %s: %w", s.endpoint, operation, err)
}

func (s *Service) synthesizeIdentity(rec domain.Record) {
	if _, ok := rec["id"]; !ok {
		rec["id"] = s.newID()
	}
	rec["createdAt"] = s.now().UTC().Format(time.RFC3339)
}

func cloneRecord(rec domain.Record) domain.Record {
	out := make(domain.Record, len(rec)+2)
	for k, v := range rec {
		out[k] = v
	}
	return out
}
