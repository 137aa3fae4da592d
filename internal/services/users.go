package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
	"github.com/dsmorokov/teamup/validation"
)

// UserService owns accounts and their game lists.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterInput struct {
	Handle          string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register validates the input in a fixed order (handle, email, password
// length, confirmation), reporting only the first problem, then creates the
// account. An inactive account holding the same email is purged inside the
// same transaction, which is what lets a returning player sign up again.
// Handles are never recycled: even an inactive holder keeps the name.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Handle = strings.TrimSpace(in.Handle)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case !validation.ValidHandle(in.Handle):
		return nil, ErrInvalidHandle
	case !validation.ValidEmail(in.Email):
		return nil, ErrInvalidEmail
	case len(in.Password) < validation.MinPasswordLen:
		return nil, ErrPasswordTooShort
	case in.Password != in.PasswordConfirm:
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storageErr(err)
	}

	user := &models.User{
		Handle:       in.Handle,
		Email:        in.Email,
		PasswordHash: string(hash),
		Description:  models.DefaultDescription,
		Active:       true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var handleOwner models.User
		herr := tx.Where("handle = ?", in.Handle).First(&handleOwner).Error
		if herr != nil && !errors.Is(herr, gorm.ErrRecordNotFound) {
			return storageErr(herr)
		}

		var emailOwner models.User
		eerr := tx.Where("email = ?", in.Email).First(&emailOwner).Error
		if eerr != nil && !errors.Is(eerr, gorm.ErrRecordNotFound) {
			return storageErr(eerr)
		}
		reclaim := eerr == nil && !emailOwner.Active

		if herr == nil {
			// The handle may only be reused when its holder is the very
			// inactive account we are about to purge.
			if handleOwner.Active || !reclaim || handleOwner.ID != emailOwner.ID {
				return ErrHandleTaken
			}
		}
		if eerr == nil && emailOwner.Active {
			return ErrEmailTaken
		}
		if reclaim {
			if err := purgeUser(tx, emailOwner.ID); err != nil {
				return err
			}
		}
		if err := tx.Create(user).Error; err != nil {
			return storageErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// purgeUser removes an inactive account and everything attached to it so a
// re-registration starts from a blank slate.
func purgeUser(tx *gorm.DB, userID uint) error {
	if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.Message{}).Error; err != nil {
		return storageErr(err)
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Game{}).Error; err != nil {
		return storageErr(err)
	}
	if err := tx.Delete(&models.User{}, userID).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// Authenticate checks handle and password against active accounts. The error
// never says which part was wrong.
func (s *UserService) Authenticate(ctx context.Context, handle, password string) (*models.User, error) {
	handle = strings.TrimSpace(handle)
	var user models.User
	err := s.db.WithContext(ctx).Where("handle = ? AND active = ?", handle, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ByID loads a user regardless of active state.
func (s *UserService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &user, nil
}

// ByHandle loads a user regardless of active state. Chat history pages need
// this: deactivated counterparts must stay resolvable.
func (s *UserService) ByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &user, nil
}

// ActiveByHandle loads an active user. Deactivated profiles read as gone.
func (s *UserService) ActiveByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("handle = ? AND active = ?", handle, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &user, nil
}

// Verify reports whether the account behind a session still exists and is
// active. Wired into auth.SetUserVerifier at bootstrap.
func (s *UserService) Verify(ctx context.Context, id uint) bool {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ? AND active = ?", id, true).Count(&n).Error
	return err == nil && n > 0
}

type ProfileInput struct {
	Description   string
	Contact       string
	Discord       string
	Telegram      string
	PreferredRole string
}

// UpdateProfile overwrites the free-text profile fields. Handle and email are
// fixed at registration and not touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"description":    strings.TrimSpace(in.Description),
		"contact":        strings.TrimSpace(in.Contact),
		"discord":        strings.TrimSpace(in.Discord),
		"telegram":       strings.TrimSpace(in.Telegram),
		"preferred_role": strings.TrimSpace(in.PreferredRole),
	})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes an account. Sessions die at the auth verifier, the
// profile disappears from listings, but games and messages stay in place.
func (s *UserService) Deactivate(ctx context.Context, userID uint) error {
	return s.setActive(ctx, userID, false)
}

// Reactivate restores a deactivated account (admin action).
func (s *UserService) Reactivate(ctx context.Context, userID uint) error {
	return s.setActive(ctx, userID, true)
}

func (s *UserService) setActive(ctx context.Context, userID uint, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("active", active)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddGame attaches a catalog title to the user's list. Unknown titles and
// duplicates are silently ignored: the form only offers valid choices, so
// anything else is a stale or forged submit not worth an error page.
func (s *UserService) AddGame(ctx context.Context, userID uint, title string) error {
	title = strings.TrimSpace(title)
	if !models.KnownTitle(title) {
		return nil
	}
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Game{}).Where("user_id = ? AND title = ?", userID, title).Count(&n).Error
	if err != nil {
		return storageErr(err)
	}
	if n > 0 {
		return nil
	}
	err = s.db.WithContext(ctx).Create(&models.Game{UserID: userID, Title: title}).Error
	if err != nil {
		// Lost a race with an identical submit; the unique index kept the
		// list consistent, which is all we wanted.
		if isDuplicateErr(err) {
			return nil
		}
		return storageErr(err)
	}
	return nil
}

func isDuplicateErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}

// RemoveGame deletes one game entry, scoped to the owner.
func (s *UserService) RemoveGame(ctx context.Context, userID, gameID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", gameID, userID).Delete(&models.Game{})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GamesOf returns the user's game list ordered by title.
func (s *UserService) GamesOf(ctx context.Context, userID uint) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("title").Find(&games).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return games, nil
}
