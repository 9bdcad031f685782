package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// Create stores a new book. No defaults are applied.
// Returns domain.ErrAlreadyExists when the isbn is taken.
func (s *Service) Create(ctx context.Context, input BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.books.Create(ctx, input.toDomain(0))
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.InfoContext(ctx, "book created",
		slog.Int64("book_id", created.ID),
		slog.String("title", created.Title),
	)

	return created, nil
}
