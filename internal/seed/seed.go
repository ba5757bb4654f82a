package seed

import (
	"fmt"
	"log/slog"

	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
)

const (
	demoUserCount     = 8
	demoPostsPerUser  = 5
	demoUserPassword  = "quill-demo-pass"
	demoPostSpreadDay = 30
)

// DemoData seeds a handful of users and posts. It is idempotent: a database
// that already contains users is left untouched.
func DemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		middleware.Logger.Info("demo seed skipped, users already exist", slog.Int64("users", count))
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < demoUserCount; i++ {
			user, err := FakeUser(demoUserPassword)
			if err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("create demo user: %w", err)
			}
			for j := 0; j < demoPostsPerUser; j++ {
				post := FakePost(user.ID, demoPostSpreadDay)
				if err := tx.Create(post).Error; err != nil {
					return fmt.Errorf("create demo post: %w", err)
				}
			}
		}
		middleware.Logger.Info("demo data seeded",
			slog.Int("users", demoUserCount),
			slog.Int("posts", demoUserCount*demoPostsPerUser),
		)
		return nil
	})
}
