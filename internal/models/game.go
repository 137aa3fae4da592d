package models

// Game links a player to one title from the catalog. The composite unique
// index keeps a concurrent double submit from creating two identical rows.
type Game struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index;uniqueIndex:idx_games_user_title" json:"user_id"`
	Title  string `gorm:"size:120;not null;uniqueIndex:idx_games_user_title" json:"title"`
}
