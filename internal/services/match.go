package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
)

// landingLimit caps the landing page list so a popular instance does not dump
// its whole user table on every visit.
const landingLimit = 50

// ContactFilter narrows matches to players reachable over at least one of the
// selected channels. Both flags off means no contact requirement.
type ContactFilter struct {
	Discord  bool
	Telegram bool
}

// MatchService answers teammate searches over active players.
type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

// FindMatches returns active players owning every selected title (superset
// match: owning more games never disqualifies) and reachable per the contact
// filter. Empty criteria do not constrain, so no titles and no contact flags
// returns every active player. Unknown titles are dropped before filtering.
// Results come back in stable id order with game lists preloaded.
func (s *MatchService) FindMatches(ctx context.Context, titles []string, contacts ContactFilter) ([]models.User, error) {
	titles = models.FilterKnown(titles)

	q := s.db.WithContext(ctx).Where("active = ?", true)
	if len(titles) > 0 {
		owners := s.db.Model(&models.Game{}).
			Select("user_id").
			Where("title IN ?", titles).
			Group("user_id").
			Having("COUNT(DISTINCT title) = ?", len(titles))
		q = q.Where("id IN (?)", owners)
	}
	switch {
	case contacts.Discord && contacts.Telegram:
		q = q.Where("discord <> '' OR telegram <> ''")
	case contacts.Discord:
		q = q.Where("discord <> ''")
	case contacts.Telegram:
		q = q.Where("telegram <> ''")
	}

	var users []models.User
	if err := q.Preload("Games").Order("id").Find(&users).Error; err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}

// LandingList returns the most recently joined active players for the home
// page, newest first.
func (s *MatchService) LandingList(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Limit(landingLimit).
		Preload("Games").
		Find(&users).Error
	if err != nil {
		return nil, storageErr(err)
	}
	return users, nil
}
