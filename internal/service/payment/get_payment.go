package payment

import (
	"context"
	"fmt"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// FindByID returns the payment with the given id.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// FindAll returns every payment.
func (s *Service) FindAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Search returns the payments whose fields equal every criterion set in f.
func (s *Service) Search(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	if f.Status != nil && !f.Status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status "+string(*f.Status))
	}

	payments, err := s.payments.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search payments: %w", err)
	}
	return payments, nil
}
