// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"bookshelf_backend/internal/api"
	"bookshelf_backend/internal/feature/catalog/domain/entity"
	"bookshelf_backend/internal/feature/catalog/transport/http/dto"
	"bookshelf_backend/internal/feature/catalog/usecase"
	"bookshelf_backend/internal/platform/validation"
)

// BookUsecase は書籍カタログのユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type BookUsecase interface {
	ListBooks(ctx context.Context) ([]entity.Book, error)
	GetBook(ctx context.Context, id uint) (*entity.Book, error)
	CreateBook(ctx context.Context, book *entity.Book) error
	UpdateBook(ctx context.Context, id uint, book *entity.Book) error
	DeleteBook(ctx context.Context, id uint) error
}

// BookHandler は書籍に関するHTTPリクエストを処理します。
type BookHandler struct {
	uc BookUsecase
}

// NewBookHandler は新しい BookHandler を作成します。
func NewBookHandler(uc BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

// List は書籍の一覧を返します。
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.uc.ListBooks(c.Request.Context())
	if err != nil {
		slog.Error("failed to list books", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "An error occurred while loading the books."})
		return
	}
	out := make([]dto.BookItem, 0, len(books))
	for i := range books {
		out = append(out, dto.FromEntity(&books[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は指定IDの書籍を返します。存在しない場合は404です。
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	book, err := h.uc.GetBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "book not found"})
			return
		}
		slog.Error("failed to load book", "error", err, "book_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "An error occurred while loading the book."})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(book))
}

// Create は書籍を登録し、201とLocationヘッダーを返します。
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	book := req.ToEntity()
	if err := h.uc.CreateBook(c.Request.Context(), book); err != nil {
		slog.Error("failed to create book", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "An error occurred while saving the book."})
		return
	}
	c.Header("Location", fmt.Sprintf("/api/books/%d", book.ID))
	c.JSON(http.StatusCreated, dto.FromEntity(book))
}

// Update は書籍を更新します。URLとボディのIDが一致しない場合は400です。
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.BookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: validation.Message(err)})
		return
	}
	err := h.uc.UpdateBook(c.Request.Context(), id, req.ToEntity())
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, usecase.ErrIDMismatch):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ID in URL and body must match."})
	case errors.Is(err, usecase.ErrBookNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "book not found"})
	default:
		slog.Error("failed to update book", "error", err, "book_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "An error occurred while updating the book."})
	}
}

// Delete は書籍を削除します。
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	err := h.uc.DeleteBook(c.Request.Context(), id)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, usecase.ErrBookNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "book not found"})
	default:
		slog.Error("failed to delete book", "error", err, "book_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "An error occurred while deleting the book."})
	}
}

// bindID parses the :id path parameter; it writes a 400 and returns false on failure.
func bindID(c *gin.Context) (uint, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
	})
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
