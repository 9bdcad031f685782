package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/internal/service/patch"
)

// Update replaces every mutable field of the book with id. The id itself
// never changes.
func (s *Service) Update(ctx context.Context, id int64, input BookInput) (*domain.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.books.Update(ctx, input.toDomain(id))
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.InfoContext(ctx, "book updated", slog.Int64("book_id", id))

	return updated, nil
}

// PartialUpdate applies the whitelisted keys of fields to the book with id
// and leaves the rest untouched. Unknown keys are ignored. JSON null clears
// nullable fields.
func (s *Service) PartialUpdate(ctx context.Context, id int64, fields map[string]any) (*domain.Book, error) {
	var updated *domain.Book
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.books.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get book: %w", err)
		}

		ignored, err := bookFields.Apply(current, fields)
		if err != nil {
			return err
		}
		if len(ignored) > 0 {
			s.log.DebugContext(ctx, "ignoring unknown book fields",
				slog.Int64("book_id", id),
				slog.Any("fields", ignored),
			)
		}

		current.ID = id
		updated, err = s.books.Update(txCtx, *current)
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book patched",
		slog.Int64("book_id", id),
		slog.Int("fields", len(fields)),
	)

	return updated, nil
}

var errRequired = errors.New("required")

func requiredText(v any) (string, error) {
	s, err := patch.String(v)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", errRequired
	}
	return s, nil
}

// bookFields is the partial-update whitelist.
var bookFields = patch.Fields[domain.Book]{
	"title": func(b *domain.Book, v any) error {
		s, err := requiredText(v)
		if err != nil {
			return err
		}
		b.Title = s
		return nil
	},
	"author": func(b *domain.Book, v any) error {
		s, err := requiredText(v)
		if err != nil {
			return err
		}
		b.Author = s
		return nil
	},
	"isbn": func(b *domain.Book, v any) error {
		s, err := patch.OptString(v)
		if err != nil {
			return err
		}
		b.ISBN = s
		return nil
	},
	"category": func(b *domain.Book, v any) error {
		s, err := patch.OptString(v)
		if err != nil {
			return err
		}
		b.Category = s
		return nil
	},
	"publicationDate": func(b *domain.Book, v any) error {
		d, err := patch.OptDate(v)
		if err != nil {
			return err
		}
		b.PublicationDate = d
		return nil
	},
	"rating": func(b *domain.Book, v any) error {
		n, err := patch.OptInt(v)
		if err != nil {
			return err
		}
		b.Rating = n
		return nil
	},
	"visible": func(b *domain.Book, v any) error {
		f, err := patch.OptBool(v)
		if err != nil {
			return err
		}
		b.Visible = f
		return nil
	},
}
