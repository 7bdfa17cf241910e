// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"time"

	"journal/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts      int
	AdminUsername string
	AdminPassword string
	ShouldClean   bool
}

// Run populates the database with fake posts and an admin account.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := db.Exec("DELETE FROM posts").Error; err != nil {
			return fmt.Errorf("failed to clean posts: %w", err)
		}
		log.Println("Cleaned posts table")
	}

	if opts.AdminUsername != "" {
		if err := ensureAdmin(db, opts.AdminUsername, opts.AdminPassword); err != nil {
			return err
		}
	}

	for i := 0; i < opts.NumPosts; i++ {
		post := models.Post{
			Title:   gofakeit.Sentence(gofakeit.Number(3, 7)),
			Content: gofakeit.Paragraph(2, 4, 12, " "),
			Date:    gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post %d: %w", i, err)
		}
	}

	log.Printf("Seeded %d posts", opts.NumPosts)
	return nil
}

// ensureAdmin creates the admin user if absent; an existing user keeps their
// current password.
func ensureAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if err := db.Create(&models.User{Username: username, Password: string(hashed)}).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	log.Printf("Created admin user %q", username)
	return nil
}
