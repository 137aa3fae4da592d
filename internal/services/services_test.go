package services

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Game{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, handle string, active bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{
		Handle:       handle,
		Email:        handle + "@test.gg",
		PasswordHash: string(hash),
		Description:  models.DefaultDescription,
		Active:       active,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed player %s: %v", handle, err)
	}
	return u
}

func giveGames(t *testing.T, db *gorm.DB, userID uint, titles ...string) {
	t.Helper()
	for _, title := range titles {
		if err := db.Create(&models.Game{UserID: userID, Title: title}).Error; err != nil {
			t.Fatalf("seed game %s: %v", title, err)
		}
	}
}

func seedMessage(t *testing.T, db *gorm.DB, from, to uint, content string, at time.Time) models.Message {
	t.Helper()
	m := models.Message{SenderID: from, ReceiverID: to, Content: content, CreatedAt: at}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return m
}
