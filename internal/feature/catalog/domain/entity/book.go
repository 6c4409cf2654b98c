// Package entity defines the domain models for the catalog feature.
package entity

import "time"

const (
	MaxTitleLength       = 200
	MaxAuthorLength      = 200
	MaxDescriptionLength = 1000
)

// Book is a catalog entry. Description is optional.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Author      string    `gorm:"size:200;not null" json:"author"`
	Description *string   `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
