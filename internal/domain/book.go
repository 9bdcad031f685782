package domain

import "time"

// Book is a catalogue record. ISBN is unique across all books when set.
type Book struct {
	ID              int64
	Title           string
	Author          string
	ISBN            *string
	Category        *string
	PublicationDate *time.Time
	Rating          *int
	Visible         *bool
}

// IsVisible reports whether the book belongs in the public listing.
// A nil Visible counts as hidden.
func (b *Book) IsVisible() bool {
	return b.Visible != nil && *b.Visible
}
