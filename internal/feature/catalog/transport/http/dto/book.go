// Package dto defines data transfer objects for the catalog HTTP API.
package dto

import "bookshelf_backend/internal/feature/catalog/domain/entity"

// BookReq is the body of POST and PUT /api/books.
// ID is ignored on create and must equal the path id on update.
type BookReq struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title" binding:"required,max=200"`
	Author      string  `json:"author" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// ToEntity converts the request into a domain Book.
func (r BookReq) ToEntity() *entity.Book {
	return &entity.Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
	}
}

// BookItem represents a book in API responses.
type BookItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description"`
}

// FromEntity converts a domain Book into its response shape.
func FromEntity(b *entity.Book) BookItem {
	return BookItem{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
	}
}
