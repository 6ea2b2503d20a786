package service

import (
	"context"

	"github.com/kayacantekin/aidpanel/internal/domain"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"go.uber.org/zap"
)

// DonationService adds donation-specific query helpers on top of the
// base CRUD contract.
type DonationService struct {
	*Service
}

func NewDonationService(client Requester, fixtures *fixture.Provider, logger *zap.Logger) (*DonationService, error) {
	base, err := NewService("donations", client, fixtures, logger)
	if err != nil {
		return nil, err
	}
	return &DonationService{Service: base}, nil
}

func (s *DonationService) ByStatus(ctx context.Context, status string) ([]domain.Record, error) {
	return s.filterByField(ctx, "status", status)
}

func (s *DonationService) ByCategory(ctx context.Context, category string) ([]domain.Record, error) {
	return s.filterByField(ctx, "category", category)
}
