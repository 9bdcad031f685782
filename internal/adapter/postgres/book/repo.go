// Package book implements the Book repository using PostgreSQL.
// Statements are composed with squirrel and rows are scanned with pgxscan.
package book

import (
	"context"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/relatosdepapel/bookstore-backend/internal/adapter/postgres"
	"github.com/relatosdepapel/bookstore-backend/internal/domain"
)

const (
	table  = "books"
	entity = "book"
)

// Column names usable in predicates.
const (
	ColTitle    = "title"
	ColAuthor   = "author"
	ColISBN     = "isbn"
	ColCategory = "category"
	ColRating   = "rating"
	ColVisible  = "visible"
)

var (
	columns       = []string{"id", "title", "author", "isbn", "category", "publication_date", "rating", "visible"}
	insertColumns = columns[1:]
	returning     = "RETURNING " + strings.Join(columns, ", ")
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new book repository. db is normally a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors the books table.
type row struct {
	ID              int64      `db:"id"`
	Title           string     `db:"title"`
	Author          string     `db:"author"`
	ISBN            *string    `db:"isbn"`
	Category        *string    `db:"category"`
	PublicationDate *time.Time `db:"publication_date"`
	Rating          *int       `db:"rating"`
	Visible         *bool      `db:"visible"`
}

func (r row) toDomain() domain.Book {
	return domain.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Category:        r.Category,
		PublicationDate: r.PublicationDate,
		Rating:          r.Rating,
		Visible:         r.Visible,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a book by primary key.
// Returns domain.ErrNotFound if the book does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate is GetByID with a row lock; meaningful only inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Book, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id int64, lock bool) (*domain.Book, error) {
	q := postgres.Builder().Select(columns...).From(table).Where("id = ?", id)
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	b := rw.toDomain()
	return &b, nil
}

// List returns every book ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Book, error) {
	return r.Find(ctx, nil)
}

// ListVisible returns books whose visible flag is literally true, ordered by id.
// Rows with a NULL flag are excluded.
func (r *Repo) ListVisible(ctx context.Context) ([]domain.Book, error) {
	q := postgres.Builder().Select(columns...).From(table).
		Where(ColVisible + " IS TRUE").
		OrderBy("id")
	return r.selectBooks(ctx, q.ToSql)
}

// Find returns the books matching every condition of p, ordered by id.
// A nil or empty predicate matches every row.
func (r *Repo) Find(ctx context.Context, p *postgres.Predicate) ([]domain.Book, error) {
	q := p.Apply(postgres.Builder().Select(columns...).From(table)).OrderBy("id")
	return r.selectBooks(ctx, q.ToSql)
}

// Search returns the books matching f, ordered by id.
func (r *Repo) Search(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	return r.Find(ctx, FilterPredicate(f))
}

// FilterPredicate translates f: title and author match case-insensitive
// substrings, the other fields match exactly. Nil fields add nothing.
func FilterPredicate(f domain.BookFilter) *postgres.Predicate {
	p := postgres.NewPredicate()
	if f.Title != nil {
		p.ContainsFold(ColTitle, *f.Title)
	}
	if f.Author != nil {
		p.ContainsFold(ColAuthor, *f.Author)
	}
	if f.ISBN != nil {
		p.Eq(ColISBN, *f.ISBN)
	}
	if f.Category != nil {
		p.Eq(ColCategory, *f.Category)
	}
	if f.Rating != nil {
		p.Eq(ColRating, *f.Rating)
	}
	if f.Visible != nil {
		p.Eq(ColVisible, *f.Visible)
	}
	return p
}

func (r *Repo) selectBooks(ctx context.Context, toSQL func() (string, []any, error)) ([]domain.Book, error) {
	sql, args, err := toSQL()
	if err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, 0)
	}

	books := make([]domain.Book, 0, len(rows))
	for _, rw := range rows {
		books = append(books, rw.toDomain())
	}
	return books, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save inserts b when it has no id yet and updates it otherwise.
func (r *Repo) Save(ctx context.Context, b domain.Book) (*domain.Book, error) {
	if b.ID == 0 {
		return r.Create(ctx, b)
	}
	return r.Update(ctx, b)
}

// Create inserts a new book and returns it with its generated id.
// Returns domain.ErrAlreadyExists when the isbn is taken.
func (r *Repo) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	q := postgres.Builder().Insert(table).
		Columns(insertColumns...).
		Values(b.Title, b.Author, b.ISBN, b.Category, b.PublicationDate, b.Rating, b.Visible).
		Suffix(returning)

	return r.write(ctx, 0, q.ToSql)
}

// Update replaces every mutable column of the book with id b.ID.
// Returns domain.ErrNotFound when no such row exists.
func (r *Repo) Update(ctx context.Context, b domain.Book) (*domain.Book, error) {
	q := postgres.Builder().Update(table).
		Set("title", b.Title).
		Set("author", b.Author).
		Set("isbn", b.ISBN).
		Set("category", b.Category).
		Set("publication_date", b.PublicationDate).
		Set("rating", b.Rating).
		Set("visible", b.Visible).
		Where("id = ?", b.ID).
		Suffix(returning)

	return r.write(ctx, b.ID, q.ToSql)
}

func (r *Repo) write(ctx context.Context, id int64, toSQL func() (string, []any, error)) (*domain.Book, error) {
	sql, args, err := toSQL()
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	out := rw.toDomain()
	return &out, nil
}

// Delete removes the book with the given id. A missing row is not an error;
// the boolean reports whether a row was removed.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := postgres.Builder().Delete(table).Where("id = ?", id).ToSql()
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return tag.RowsAffected() > 0, nil
}
