package domain

// BookFilter holds optional search criteria for books. Nil fields add no
// condition; Title and Author match case-insensitive substrings, the rest
// match exactly.
type BookFilter struct {
	Title    *string
	Author   *string
	ISBN     *string
	Category *string
	Rating   *int
	Visible  *bool
}

// IsEmpty reports whether no criteria are set.
func (f BookFilter) IsEmpty() bool {
	return f.Title == nil && f.Author == nil && f.ISBN == nil &&
		f.Category == nil && f.Rating == nil && f.Visible == nil
}

// PaymentFilter holds optional exact-match criteria for payments.
type PaymentFilter struct {
	BookID        *int64
	Status        *PaymentStatus
	PaymentMethod *string
}

// IsEmpty reports whether no criteria are set.
func (f PaymentFilter) IsEmpty() bool {
	return f.BookID == nil && f.Status == nil && f.PaymentMethod == nil
}
