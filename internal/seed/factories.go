// Package seed generates demo users and posts for development environments.
package seed

import (
	"fmt"
	"strings"
	"time"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// FakeUser builds an unsaved user with a hashed password.
// All seeded accounts share the password so developers can log in as any
// of them.
func FakeUser(password string) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	username := strings.ToLower(gofakeit.Username())
	if len(username) > 30 {
		username = username[:30]
	}

	return &models.User{
		Username: username,
		Email:    strings.ToLower(gofakeit.Email()),
		Password: hashed,
	}, nil
}

// FakePost builds an unsaved post for the given author with a creation time
// spread over the past days so the feed ordering is visible.
func FakePost(authorID uint, daysBack int) *models.Post {
	created := time.Now().Add(-time.Duration(gofakeit.Number(0, daysBack*24)) * time.Hour)
	return &models.Post{
		Subject:   gofakeit.Sentence(gofakeit.Number(3, 8)),
		Content:   gofakeit.Paragraph(2, 4, 12, "\n\n"),
		UserID:    authorID,
		CreatedAt: created,
	}
}
