package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/internal/service/patch"
)

// Update replaces every mutable field of the payment with id.
func (s *Service) Update(ctx context.Context, id int64, input PaymentInput) (*domain.Payment, error) {
	if err := input.ValidateReplace(); err != nil {
		return nil, err
	}

	updated, err := s.payments.Update(ctx, domain.Payment{
		ID:            id,
		BookID:        *input.BookID,
		Amount:        *input.Amount,
		Status:        *input.Status,
		PaymentMethod: input.PaymentMethod,
		PaymentDate:   input.PaymentDate.UTC().Truncate(time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	s.log.InfoContext(ctx, "payment updated",
		slog.Int64("payment_id", id),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// PartialUpdate applies the whitelisted keys of fields to the payment with
// id. Unknown keys are ignored. Only paymentMethod accepts null.
func (s *Service) PartialUpdate(ctx context.Context, id int64, fields map[string]any) (*domain.Payment, error) {
	var updated *domain.Payment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.payments.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get payment: %w", err)
		}

		ignored, err := paymentFields.Apply(current, fields)
		if err != nil {
			return err
		}
		if len(ignored) > 0 {
			s.log.DebugContext(ctx, "ignoring unknown payment fields",
				slog.Int64("payment_id", id),
				slog.Any("fields", ignored),
			)
		}

		current.ID = id
		updated, err = s.payments.Update(txCtx, *current)
		if err != nil {
			return fmt.Errorf("update payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "payment patched",
		slog.Int64("payment_id", id),
		slog.Int("fields", len(fields)),
	)

	return updated, nil
}

// paymentFields is the partial-update whitelist.
var paymentFields = patch.Fields[domain.Payment]{
	"bookId": func(p *domain.Payment, v any) error {
		n, err := patch.Int64(v)
		if err != nil {
			return err
		}
		p.BookID = n
		return nil
	},
	"amount": func(p *domain.Payment, v any) error {
		d, err := patch.Decimal(v)
		if err != nil {
			return err
		}
		p.Amount = d
		return nil
	},
	"status": func(p *domain.Payment, v any) error {
		s, err := patch.String(v)
		if err != nil {
			return err
		}
		status := domain.PaymentStatus(s)
		if !status.IsValid() {
			return fmt.Errorf("unknown status %s", s)
		}
		p.Status = status
		return nil
	},
	"paymentMethod": func(p *domain.Payment, v any) error {
		s, err := patch.OptString(v)
		if err != nil {
			return err
		}
		p.PaymentMethod = s
		return nil
	},
	"paymentDate": func(p *domain.Payment, v any) error {
		t, err := patch.Timestamp(v)
		if err != nil {
			return err
		}
		p.PaymentDate = t
		return nil
	},
}
