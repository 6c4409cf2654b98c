// Package usecase implements the business logic for the book catalog.
package usecase

import (
	"context"

	"bookshelf_backend/internal/feature/catalog/domain/entity"
)

// BookRepository abstracts the persistence layer for books.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	// FindByID returns ErrBookNotFound when the id is unknown.
	FindByID(ctx context.Context, id uint) (*entity.Book, error)
	Create(ctx context.Context, book *entity.Book) error
	// Update overwrites title, author and description. It returns ErrBookNotFound when the id is unknown.
	Update(ctx context.Context, book *entity.Book) error
	// Delete returns ErrBookNotFound when the id is unknown.
	Delete(ctx context.Context, id uint) error
}

// BookUsecase provides business logic for book operations.
type BookUsecase struct {
	repo BookRepository
}

// NewBookUsecase creates a new BookUsecase with the given repository.
func NewBookUsecase(r BookRepository) *BookUsecase {
	return &BookUsecase{repo: r}
}

// ListBooks returns every book in the catalog.
func (u *BookUsecase) ListBooks(ctx context.Context) ([]entity.Book, error) {
	return u.repo.List(ctx)
}

// GetBook returns a single book.
func (u *BookUsecase) GetBook(ctx context.Context, id uint) (*entity.Book, error) {
	return u.repo.FindByID(ctx, id)
}

// CreateBook stores a new book; the store assigns its id.
func (u *BookUsecase) CreateBook(ctx context.Context, book *entity.Book) error {
	book.ID = 0
	return u.repo.Create(ctx, book)
}

// UpdateBook replaces the mutable fields of the book identified by id.
func (u *BookUsecase) UpdateBook(ctx context.Context, id uint, book *entity.Book) error {
	if book.ID != id {
		return ErrIDMismatch
	}
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.Update(ctx, book)
}

// DeleteBook removes the book identified by id.
func (u *BookUsecase) DeleteBook(ctx context.Context, id uint) error {
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
