package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/internal/service/book"
)

// bookService defines the minimal interface needed by BookHandler.
type bookService interface {
	Create(ctx context.Context, input book.BookInput) (*domain.Book, error)
	FindByID(ctx context.Context, id int64) (*domain.Book, error)
	FindAllVisible(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, f domain.BookFilter) ([]domain.Book, error)
	Update(ctx context.Context, id int64, input book.BookInput) (*domain.Book, error)
	PartialUpdate(ctx context.Context, id int64, fields map[string]any) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
}

var bookConflict = conflictText{
	short:  "ISBN already exists",
	detail: "A book with this ISBN is already in the catalogue.",
}

// BookHandler serves the catalogue endpoints under /api/books.
type BookHandler struct {
	svc bookService
	log *slog.Logger
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(svc bookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: logger.With("handler", "book")}
}

// Register mounts the book routes on mux.
func (h *BookHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/books", h.Create)
	mux.HandleFunc("GET /api/books", h.List)
	mux.HandleFunc("GET /api/books/search", h.Search)
	mux.HandleFunc("GET /api/books/{id}", h.Get)
	mux.HandleFunc("PUT /api/books/{id}", h.Update)
	mux.HandleFunc("PATCH /api/books/{id}", h.PartialUpdate)
	mux.HandleFunc("DELETE /api/books/{id}", h.Delete)
}

type bookRequest struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            *string `json:"isbn"`
	Category        *string `json:"category"`
	PublicationDate *string `json:"publicationDate"`
	Rating          *int    `json:"rating"`
	Visible         *bool   `json:"visible"`
}

type bookResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            *string `json:"isbn"`
	Category        *string `json:"category"`
	PublicationDate *string `json:"publicationDate"`
	Rating          *int    `json:"rating"`
	Visible         *bool   `json:"visible"`
}

func (req bookRequest) toInput() (book.BookInput, error) {
	in := book.BookInput{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Category: req.Category,
		Rating:   req.Rating,
		Visible:  req.Visible,
	}
	if req.PublicationDate != nil {
		d, err := domain.ParseDate(*req.PublicationDate)
		if err != nil {
			return book.BookInput{}, domain.NewValidationError("publicationDate", err.Error())
		}
		in.PublicationDate = &d
	}
	return in, nil
}

func toBookResponse(b *domain.Book) bookResponse {
	resp := bookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		ISBN:     b.ISBN,
		Category: b.Category,
		Rating:   b.Rating,
		Visible:  b.Visible,
	}
	if b.PublicationDate != nil {
		resp.PublicationDate = formatDate(*b.PublicationDate)
	}
	return resp
}

func toBookResponses(books []domain.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	return out
}

func formatDate(t time.Time) *string {
	s := domain.FormatDate(t)
	return &s
}

func (h *BookHandler) decodeInput(r *http.Request) (book.BookInput, error) {
	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		return book.BookInput{}, err
	}
	return req.toInput()
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decodeInput(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	b, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusCreated, toBookResponse(b))
}

// List handles GET /api/books. Only visible books are returned.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.FindAllVisible(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponses(books))
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	b, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(b))
}

// Search handles GET /api/books/search.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := newQuery(r)
	f := domain.BookFilter{
		Title:    q.optString("title"),
		Author:   q.optString("author"),
		ISBN:     q.optString("isbn"),
		Category: q.optString("category"),
		Rating:   q.optInt("rating"),
		Visible:  q.optBool("visible"),
	}
	if err := q.err(); err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	books, err := h.svc.Search(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponses(books))
}

// Update handles PUT /api/books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	in, err := h.decodeInput(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	b, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(b))
}

// PartialUpdate handles PATCH /api/books/{id}.
func (h *BookHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	b, err := h.svc.PartialUpdate(r.Context(), id, fields)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(b))
}

// Delete handles DELETE /api/books/{id}. Deleting a missing book succeeds.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err, bookConflict)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
