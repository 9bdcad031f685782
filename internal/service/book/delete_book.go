package book

import (
	"context"
	"fmt"
	"log/slog"
)

// Delete removes the book with id. Deleting a missing book is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	removed, err := s.books.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.InfoContext(ctx, "book deleted",
		slog.Int64("book_id", id),
		slog.Bool("existed", removed),
	)

	return nil
}
