// Package payment implements the Payment repository using PostgreSQL.
package payment

import (
	"context"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	postgres "github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres"
	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

const (
	table  = "payments"
	entity = "payment"
)

// Column names usable in predicates.
const (
	ColBookID        = "book_id"
	ColStatus        = "status"
	ColPaymentMethod = "payment_method"
)

var (
	columns       = []string{"id", "book_id", "amount", "status", "payment_method", "payment_date"}
	insertColumns = columns[1:]
	returning     = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides payment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new payment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            int64           `db:"id"`
	BookID        int64           `db:"book_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	PaymentMethod *string         `db:"payment_method"`
	PaymentDate   time.Time       `db:"payment_date"`
}

func (r row) toDomain() domain.Payment {
	return domain.Payment{
		ID:            r.ID,
		BookID:        r.BookID,
		Amount:        r.Amount,
		Status:        domain.PaymentStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
		PaymentDate:   r.PaymentDate.UTC(),
	}
}

// GetByID returns a payment by primary key.
// Returns domain.ErrNotFound if the payment does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate is GetByID with a row lock.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id int64, lock bool) (*domain.Payment, error) {
	q := postgres.Builder().Select(columns...).From(table).Where("id = ?", id)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	return r.one(ctx, id, q.ToSql)
}

// List returns every payment ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Payment, error) {
	return r.Find(ctx, nil)
}

// Find returns the payments matching every condition of p, ordered by id.
func (r *Repo) Find(ctx context.Context, p *postgres.Predicate) ([]domain.Payment, error) {
	sql, args, err := p.Apply(postgres.Builder().Select(columns...).From(table)).OrderBy("id").ToSql()
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	payments := make([]domain.Payment, 0, len(rows))
	for _, rw := range rows {
		payments = append(payments, rw.toDomain())
	}
	return payments, nil
}

// Search returns the payments matching every set field of f exactly.
func (r *Repo) Search(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	return r.Find(ctx, FilterPredicate(f))
}

// FilterPredicate translates f into equality conditions.
func FilterPredicate(f domain.PaymentFilter) *postgres.Predicate {
	p := postgres.NewPredicate()
	if f.BookID != nil {
		p.Eq(ColBookID, *f.BookID)
	}
	if f.Status != nil {
		p.Eq(ColStatus, string(*f.Status))
	}
	if f.PaymentMethod != nil {
		p.Eq(ColPaymentMethod, *f.PaymentMethod)
	}
	return p
}

// Save inserts p when it has no id yet and updates it otherwise.
func (r *Repo) Save(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	if p.ID == 0 {
		return r.Create(ctx, p)
	}
	return r.Update(ctx, p)
}

// Create inserts a payment and returns it with its generated id.
// Defaults for status and date are the caller's concern.
func (r *Repo) Create(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	q := postgres.Builder().Insert(table).
		Columns(insertColumns...).
		Values(p.BookID, p.Amount, string(p.Status), p.PaymentMethod, p.PaymentDate).
		Suffix(returning)
	return r.one(ctx, 0, q.ToSql)
}

// Update replaces every mutable column of the payment with id p.ID.
func (r *Repo) Update(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	q := postgres.Builder().Update(table).
		Set("book_id", p.BookID).
		Set("amount", p.Amount).
		Set("status", string(p.Status)).
		Set("payment_method", p.PaymentMethod).
		Set("payment_date", p.PaymentDate).
		Where("id = ?", p.ID).
		Suffix(returning)
	return r.one(ctx, p.ID, q.ToSql)
}

func (r *Repo) one(ctx context.Context, id int64, toSQL func() (string, []any, error)) (*domain.Payment, error) {
	sql, args, err := toSQL()
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	out := rw.toDomain()
	return &out, nil
}

// Delete removes the payment with the given id and reports whether a row was removed.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := postgres.Builder().Delete(table).Where("id = ?", id).ToSql()
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return tag.RowsAffected() > 0, nil
}
