package payment

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, p domain.Payment) (*domain.Payment, error)
	Update(ctx context.Context, p domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Search(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides payment ledger operations.
type Service struct {
	payments paymentRepo
	tx       txManager
	clock    clockwork.Clock
	log      *slog.Logger
}

// NewService creates a new Payment service. clock supplies the default
// payment date; pass clockwork.NewRealClock() outside tests.
func NewService(log *slog.Logger, payments paymentRepo, tx txManager, clock clockwork.Clock) *Service {
	return &Service{
		payments: payments,
		tx:       tx,
		clock:    clock,
		log:      log.With("service", "payment"),
	}
}
