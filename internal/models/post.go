// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a journal entry. Title and content are required; Date
// defaults to creation time and is fixed after creation, as is the ID.
type Post struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Date    time.Time `gorm:"not null" json:"date"`
}
