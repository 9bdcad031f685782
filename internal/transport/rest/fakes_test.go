package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/internal/service/book"
	"github.com/relatosdepapel/bookstore-backend/internal/service/payment"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// passTx runs fn inline; the in-memory repos need no transaction.
type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memBooks is an in-memory book store with a unique isbn constraint.
type memBooks struct {
	mu     sync.Mutex
	rows   map[int64]domain.Book
	nextID int64
	fail   error
}

func newMemBooks() *memBooks {
	return &memBooks{rows: make(map[int64]domain.Book)}
}

func (m *memBooks) isbnTaken(b domain.Book) bool {
	if b.ISBN == nil {
		return false
	}
	for id, row := range m.rows {
		if id != b.ID && row.ISBN != nil && *row.ISBN == *b.ISBN {
			return true
		}
	}
	return false
}

func (m *memBooks) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	if m.isbnTaken(b) {
		return nil, fmt.Errorf("book: %w: constraint books_isbn_key", domain.ErrAlreadyExists)
	}
	m.nextID++
	b.ID = m.nextID
	m.rows[b.ID] = b
	return &b, nil
}

func (m *memBooks) Update(_ context.Context, b domain.Book) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	if _, ok := m.rows[b.ID]; !ok {
		return nil, fmt.Errorf("book %d: %w", b.ID, domain.ErrNotFound)
	}
	if m.isbnTaken(b) {
		return nil, fmt.Errorf("book %d: %w: constraint books_isbn_key", b.ID, domain.ErrAlreadyExists)
	}
	m.rows[b.ID] = b
	return &b, nil
}

func (m *memBooks) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	b, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("book %d: %w", id, domain.ErrNotFound)
	}
	return &b, nil
}

func (m *memBooks) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	return m.GetByID(ctx, id)
}

func (m *memBooks) ListVisible(_ context.Context) ([]domain.Book, error) {
	return m.filter(func(b domain.Book) bool { return b.IsVisible() })
}

func (m *memBooks) Search(_ context.Context, f domain.BookFilter) ([]domain.Book, error) {
	return m.filter(func(b domain.Book) bool {
		switch {
		case f.Title != nil && !containsFold(b.Title, *f.Title),
			f.Author != nil && !containsFold(b.Author, *f.Author),
			f.ISBN != nil && !eqPtr(b.ISBN, *f.ISBN),
			f.Category != nil && !eqPtr(b.Category, *f.Category),
			f.Rating != nil && !eqPtr(b.Rating, *f.Rating),
			f.Visible != nil && !eqPtr(b.Visible, *f.Visible):
			return false
		}
		return true
	})
}

func (m *memBooks) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memBooks) filter(keep func(domain.Book) bool) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := []domain.Book{}
	for _, b := range m.rows {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memPayments is an in-memory payment store.
type memPayments struct {
	mu     sync.Mutex
	rows   map[int64]domain.Payment
	nextID int64
	fail   error
}

func newMemPayments() *memPayments {
	return &memPayments{rows: make(map[int64]domain.Payment)}
}

func (m *memPayments) Create(_ context.Context, p domain.Payment) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	m.nextID++
	p.ID = m.nextID
	p.Amount = p.Amount.Round(2)
	m.rows[p.ID] = p
	return &p, nil
}

func (m *memPayments) Update(_ context.Context, p domain.Payment) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	if _, ok := m.rows[p.ID]; !ok {
		return nil, fmt.Errorf("payment %d: %w", p.ID, domain.ErrNotFound)
	}
	p.Amount = p.Amount.Round(2)
	m.rows[p.ID] = p
	return &p, nil
}

func (m *memPayments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	p, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("payment %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (m *memPayments) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	return m.GetByID(ctx, id)
}

func (m *memPayments) List(_ context.Context) ([]domain.Payment, error) {
	return m.filter(func(domain.Payment) bool { return true })
}

func (m *memPayments) Search(_ context.Context, f domain.PaymentFilter) ([]domain.Payment, error) {
	return m.filter(func(p domain.Payment) bool {
		switch {
		case f.BookID != nil && p.BookID != *f.BookID,
			f.Status != nil && p.Status != *f.Status,
			f.PaymentMethod != nil && !eqPtr(p.PaymentMethod, *f.PaymentMethod):
			return false
		}
		return true
	})
}

func (m *memPayments) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memPayments) filter(keep func(domain.Payment) bool) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := []domain.Payment{}
	for _, p := range m.rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func eqPtr[T comparable](p *T, v T) bool {
	return p != nil && *p == v
}

// newBookServer wires the real book service over an in-memory store.
func newBookServer(t *testing.T) (*httptest.Server, *memBooks) {
	t.Helper()
	store := newMemBooks()
	mux := http.NewServeMux()
	NewBookHandler(book.NewService(discardLogger, store, passTx{}), discardLogger).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

// newPaymentServer wires the real payment service over an in-memory store.
func newPaymentServer(t *testing.T, clock clockwork.Clock) (*httptest.Server, *memPayments) {
	t.Helper()
	store := newMemPayments()
	mux := http.NewServeMux()
	NewPaymentHandler(payment.NewService(discardLogger, store, passTx{}, clock), discardLogger).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(raw)
}
