package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

// PaymentInput holds the mutable fields of a payment. Nil means absent.
type PaymentInput struct {
	BookID        *int64
	Amount        *decimal.Decimal
	Status        *domain.PaymentStatus
	PaymentMethod *string
	PaymentDate   *time.Time
}

// Validate checks the fields required on create. Status and PaymentDate
// may be absent; they are defaulted.
func (i PaymentInput) Validate() error {
	errs := i.required()
	if i.Status != nil && *i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, invalidStatus(*i.Status))
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ValidateReplace checks the fields required on full replacement. Every
// field except PaymentMethod must be present.
func (i PaymentInput) ValidateReplace() error {
	errs := i.required()
	switch {
	case i.Status == nil || *i.Status == "":
		errs = append(errs, domain.FieldError{Field: "status", Message: "required"})
	case !i.Status.IsValid():
		errs = append(errs, invalidStatus(*i.Status))
	}
	if i.PaymentDate == nil {
		errs = append(errs, domain.FieldError{Field: "paymentDate", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i PaymentInput) required() []domain.FieldError {
	var errs []domain.FieldError
	if i.BookID == nil {
		errs = append(errs, domain.FieldError{Field: "bookId", Message: "required"})
	}
	if i.Amount == nil {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "required"})
	}
	return errs
}

func invalidStatus(s domain.PaymentStatus) domain.FieldError {
	return domain.FieldError{
		Field:   "status",
		Message: "unknown status " + string(s) + ", expected one of PENDING, COMPLETED, FAILED, REFUNDED",
	}
}
