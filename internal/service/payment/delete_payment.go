package payment

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete removes the payment with id. Deleting a missing payment is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	removed, err := s.payments.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	s.log.InfoContext(ctx, "payment deleted",
		slog.Int64("payment_id", id),
		slog.Bool("existed", removed),
	)

	return nil
}
