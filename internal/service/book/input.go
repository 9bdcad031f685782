package book

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// BookInput holds every mutable field of a book. It is used for create and
// for full replacement; nil pointers store NULL.
type BookInput struct {
	Title           string
	Author          string
	ISBN            *string
	Category        *string
	PublicationDate *time.Time
	Rating          *int
	Visible         *bool
}

// Validate checks all fields and collects all errors.
func (i BookInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.Author) == "" {
		errs = append(errs, domain.FieldError{Field: "author", Message: "required"})
	}
	if i.Rating != nil && (*i.Rating > math.MaxInt32 || *i.Rating < math.MinInt32) {
		errs = append(errs, domain.FieldError{Field: "rating", Message: fmt.Sprintf("out of range: %d", *i.Rating)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i BookInput) toDomain(id int64) domain.Book {
	return domain.Book{
		ID:              id,
		Title:           i.Title,
		Author:          i.Author,
		ISBN:            i.ISBN,
		Category:        i.Category,
		PublicationDate: i.PublicationDate,
		Rating:          i.Rating,
		Visible:         i.Visible,
	}
}
