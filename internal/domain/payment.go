package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a ledger row tied to a book id. BookID is not checked against
// the catalogue; the two services own separate stores.
type Payment struct {
	ID            int64
	BookID        int64
	Amount        decimal.Decimal
	Status        PaymentStatus
	PaymentMethod *string
	PaymentDate   time.Time
}
