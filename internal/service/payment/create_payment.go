package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// Create records a payment. An absent date defaults to the current time and
// an absent or empty status to PENDING.
func (s *Service) Create(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p := domain.Payment{
		BookID:        *input.BookID,
		Amount:        *input.Amount,
		Status:        domain.PaymentStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentDate:   s.clock.Now().UTC().Truncate(time.Second),
	}
	if input.Status != nil && *input.Status != "" {
		p.Status = *input.Status
	}
	if input.PaymentDate != nil {
		p.PaymentDate = input.PaymentDate.UTC().Truncate(time.Second)
	}

	created, err := s.payments.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.InfoContext(ctx, "payment created",
		slog.Int64("payment_id", created.ID),
		slog.Int64("book_id", created.BookID),
		slog.String("status", created.Status.String()),
	)

	return created, nil
}
