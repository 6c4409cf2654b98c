// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bookshelf_backend/internal/feature/catalog/domain/entity"
	"bookshelf_backend/internal/feature/catalog/usecase"
)

// bookGorm はBookRepositoryインターフェースのGORM実装です。
type bookGorm struct {
	db *gorm.DB
}

var _ usecase.BookRepository = (*bookGorm)(nil)

// NewBookRepository は指定されたDB接続でbookGormリポジトリの新しいインスタンスを生成します。
func NewBookRepository(db *gorm.DB) *bookGorm {
	return &bookGorm{db: db}
}

// List はID順にすべての書籍を返します。
func (r *bookGorm) List(ctx context.Context) ([]entity.Book, error) {
	books := []entity.Book{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByID はIDで書籍を取得します。存在しない場合はusecase.ErrBookNotFoundを返します。
func (r *bookGorm) FindByID(ctx context.Context, id uint) (*entity.Book, error) {
	var b entity.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create は書籍を追加し、採番されたIDをbookに設定します。
func (r *bookGorm) Create(ctx context.Context, book *entity.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update はタイトル・著者・説明を上書きします。
// 説明がnilの場合もNULLとして書き込むため、mapで更新します。
func (r *bookGorm) Update(ctx context.Context, book *entity.Book) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":       book.Title,
			"author":      book.Author,
			"description": book.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrBookNotFound
	}
	return nil
}

// Delete はIDで書籍を削除します。
func (r *bookGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrBookNotFound
	}
	return nil
}
