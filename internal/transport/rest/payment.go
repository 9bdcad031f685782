package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/internal/service/payment"
)

// paymentService defines the minimal interface needed by PaymentHandler.
type paymentService interface {
	Create(ctx context.Context, input payment.PaymentInput) (*domain.Payment, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindAll(ctx context.Context) ([]domain.Payment, error)
	Search(ctx context.Context, f domain.PaymentFilter) ([]domain.Payment, error)
	Update(ctx context.Context, id int64, input payment.PaymentInput) (*domain.Payment, error)
	PartialUpdate(ctx context.Context, id int64, fields map[string]any) (*domain.Payment, error)
	Delete(ctx context.Context, id int64) error
}

var paymentConflict = conflictText{
	short:  "Already exists",
	detail: "The payment conflicts with an existing record.",
}

// PaymentHandler serves the ledger endpoints under /api/payments.
type PaymentHandler struct {
	svc paymentService
	log *slog.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc paymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: logger.With("handler", "payment")}
}

// Register mounts the payment routes on mux.
func (h *PaymentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/payments", h.Create)
	mux.HandleFunc("GET /api/payments", h.List)
	mux.HandleFunc("GET /api/payments/search", h.Search)
	mux.HandleFunc("GET /api/payments/{id}", h.Get)
	mux.HandleFunc("PUT /api/payments/{id}", h.Update)
	mux.HandleFunc("PATCH /api/payments/{id}", h.PartialUpdate)
	mux.HandleFunc("DELETE /api/payments/{id}", h.Delete)
}

// paymentRequest accepts amount as a JSON string or number.
type paymentRequest struct {
	BookID        *int64           `json:"bookId"`
	Amount        *decimal.Decimal `json:"amount"`
	Status        *string          `json:"status"`
	PaymentMethod *string          `json:"paymentMethod"`
	PaymentDate   *string          `json:"paymentDate"`
}

// paymentResponse renders amount as a two-decimal string.
type paymentResponse struct {
	ID            int64   `json:"id"`
	BookID        int64   `json:"bookId"`
	Amount        string  `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod *string `json:"paymentMethod"`
	PaymentDate   string  `json:"paymentDate"`
}

func (req paymentRequest) toInput() (payment.PaymentInput, error) {
	in := payment.PaymentInput{
		BookID:        req.BookID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Status != nil {
		st := domain.PaymentStatus(*req.Status)
		in.Status = &st
	}
	if req.PaymentDate != nil {
		ts, err := domain.ParseTimestamp(*req.PaymentDate)
		if err != nil {
			return payment.PaymentInput{}, domain.NewValidationError("paymentDate", err.Error())
		}
		in.PaymentDate = &ts
	}
	return in, nil
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		BookID:        p.BookID,
		Amount:        p.Amount.StringFixed(2),
		Status:        p.Status.String(),
		PaymentMethod: p.PaymentMethod,
		PaymentDate:   domain.FormatTimestamp(p.PaymentDate),
	}
}

func toPaymentResponses(payments []domain.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return out
}

func (h *PaymentHandler) decodeInput(r *http.Request) (payment.PaymentInput, error) {
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		return payment.PaymentInput{}, err
	}
	return req.toInput()
}

func (h *PaymentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, h.log, err, paymentConflict)
}

// Create handles POST /api/payments.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

// List handles GET /api/payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.FindAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

// Get handles GET /api/payments/{id}.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

// Search handles GET /api/payments/search.
func (h *PaymentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.PaymentFilter{
		BookID:        q.optInt64("bookId"),
		PaymentMethod: q.optString("paymentMethod"),
	}
	if s, ok := q.raw("status"); ok {
		st := domain.PaymentStatus(s)
		f.Status = &st
	}
	if err := q.err(); err != nil {
		h.fail(w, r, err)
		return
	}

	payments, err := h.svc.Search(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}

// Update handles PUT /api/payments/{id}.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	in, err := h.decodeInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

// PartialUpdate handles PATCH /api/payments/{id}.
func (h *PaymentHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.svc.PartialUpdate(r.Context(), id, fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(p))
}

// Delete handles DELETE /api/payments/{id}. Deleting a missing payment succeeds.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
