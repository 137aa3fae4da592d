package policy

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/handlers"
	"github.com/dsmorokov/teamup/internal/services"
)

// RouterConfig wires the service layer, the authorization guard and every
// HTTP handler behind a single constructor, so cmd/server only lays out
// routes.
type RouterConfig struct {
	Guard *Guard

	// Services, exposed for the pieces of startup that need them directly
	// (session verification, seeding checks).
	Users    *services.UserService
	Matches  *services.MatchService
	Messages *services.MessageService

	Auth      *handlers.AuthHandler
	Profile   *handlers.ProfileHandler
	Games     *handlers.GameHandler
	Match     *handlers.MatchHandler
	Messaging *handlers.MessageHandler
	Admin     *handlers.AdminHandler
}

func NewRouterConfig(db *gorm.DB, log *zap.Logger, adminHandles []string) *RouterConfig {
	users := services.NewUserService(db)
	matches := services.NewMatchService(db)
	messages := services.NewMessageService(db)

	return &RouterConfig{
		Guard:     NewGuard(users, adminHandles),
		Users:     users,
		Matches:   matches,
		Messages:  messages,
		Auth:      handlers.NewAuthHandler(users, log),
		Profile:   handlers.NewProfileHandler(users, log),
		Games:     handlers.NewGameHandler(users, log),
		Match:     handlers.NewMatchHandler(matches, log),
		Messaging: handlers.NewMessageHandler(messages, users, log),
		Admin:     handlers.NewAdminHandler(db, users, log),
	}
}
