package db

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
)

// demoPassword is the shared password of all seeded accounts.
const demoPassword = "letsplay"

type demoPlayer struct {
	handle   string
	email    string
	desc     string
	discord  string
	telegram string
	role     string
	games    []string
}

var demoPlayers = []demoPlayer{
	{
		handle:  "steel_nerves",
		email:   "steel@example.gg",
		desc:    "Tank main since vanilla. Raids Tue/Thu evenings CET.",
		discord: "steelnerves#4201",
		role:    "tank",
		games:   []string{"World of Warcraft", "Dota 2"},
	},
	{
		handle:   "pixel_witch",
		email:    "pixel@example.gg",
		desc:     "Co-op enjoyer, chill runs only.",
		telegram: "@pixelwitch",
		role:     "support",
		games:    []string{"Baldur's Gate 3", "Minecraft"},
	},
	{
		handle:   "midlane_kirill",
		email:    "kirill@example.gg",
		desc:     "Ancient 3, grinding to Divine. Ru/En comms.",
		discord:  "kirill#7777",
		telegram: "@midkirill",
		role:     "mid",
		games:    []string{"Dota 2", "Counter-Strike 2"},
	},
	{
		handle: "rocket_cat",
		email:  "cat@example.gg",
		desc:   "Diamond II, looking for a calm duo partner.",
		role:   "striker",
		games:  []string{"Rocket League", "Genshin Impact"},
	},
}

// Seed inserts demo players so a fresh install has something to browse.
// Existing handles are left untouched, so it is safe to run repeatedly.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed hash: %w", err)
	}
	created := map[string]uint{}
	for _, p := range demoPlayers {
		var existing models.User
		err := db.Where("handle = ?", p.handle).First(&existing).Error
		if err == nil {
			created[p.handle] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed lookup %s: %w", p.handle, err)
		}
		user := models.User{
			Handle:        p.handle,
			Email:         p.email,
			PasswordHash:  string(hash),
			Description:   p.desc,
			Discord:       p.discord,
			Telegram:      p.telegram,
			PreferredRole: p.role,
			Active:        true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", p.handle, err)
		}
		for _, title := range p.games {
			if err := db.Create(&models.Game{UserID: user.ID, Title: title}).Error; err != nil {
				return fmt.Errorf("seed game %s/%s: %w", p.handle, title, err)
			}
		}
		created[p.handle] = user.ID
	}

	// One starter conversation, only on the very first run.
	from, okFrom := created["steel_nerves"]
	to, okTo := created["midlane_kirill"]
	if okFrom && okTo {
		var n int64
		if err := db.Model(&models.Message{}).Where("sender_id = ? AND receiver_id = ?", from, to).Count(&n).Error; err != nil {
			return fmt.Errorf("seed message check: %w", err)
		}
		if n == 0 {
			msg := models.Message{SenderID: from, ReceiverID: to, Content: "Saw you play Dota, need a mid for tonight?"}
			if err := db.Create(&msg).Error; err != nil {
				return fmt.Errorf("seed message: %w", err)
			}
		}
	}
	return nil
}
