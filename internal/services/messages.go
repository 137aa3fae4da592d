package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/dsmorokov/teamup/internal/models"
)

// MessageService is the conversation ledger: append on send, flip unread
// flags on open, aggregate for the inbox and the badge.
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Conversation is one inbox row: the counterpart, the newest message and how
// many of their messages the viewer has not read yet.
type Conversation struct {
	Other       models.User
	LastMessage models.Message
	UnreadCount int64
}

// Send appends a message to the ledger. Content is trimmed first; empty or
// oversized content is rejected, as are self-messages and receivers that do
// not exist or were deactivated.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ? AND active = ?", receiverID, true).Count(&n).Error
	if err != nil {
		return nil, storageErr(err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	msg := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, storageErr(err)
	}
	return msg, nil
}

// OpenConversation returns the full two-way history with other, oldest first,
// and marks everything they sent as read. Both happen in one transaction so a
// rendered chat page never shows messages still counted as unread.
func (s *MessageService) OpenConversation(ctx context.Context, readerID, otherID uint) ([]models.Message, error) {
	var history []models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, readerID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}
		return tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				readerID, otherID, otherID, readerID).
			Order("created_at ASC, id ASC").
			Find(&history).Error
	})
	if err != nil {
		return nil, storageErr(err)
	}
	return history, nil
}

// ListConversations groups the user's messages by counterpart, newest
// conversation first. Counterparts are loaded regardless of active state so
// old chats with deleted accounts stay visible.
func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]Conversation, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, storageErr(err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	// First occurrence per counterpart is the newest message, and the scan
	// order already sorts conversations by that message.
	order := make([]uint, 0, 8)
	latest := make(map[uint]models.Message, 8)
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if _, seen := latest[other]; !seen {
			latest[other] = m
			order = append(order, other)
		}
	}

	unread, err := s.unreadBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	var others []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", order).Find(&others).Error; err != nil {
		return nil, storageErr(err)
	}
	byID := make(map[uint]models.User, len(others))
	for _, u := range others {
		byID[u.ID] = u
	}

	convs := make([]Conversation, 0, len(order))
	for _, otherID := range order {
		other, ok := byID[otherID]
		if !ok {
			// Counterpart row purged; nothing left to show for it.
			continue
		}
		convs = append(convs, Conversation{
			Other:       other,
			LastMessage: latest[otherID],
			UnreadCount: unread[otherID],
		})
	}
	return convs, nil
}

func (s *MessageService) unreadBySender(ctx context.Context, userID uint) (map[uint]int64, error) {
	type row struct {
		SenderID uint
		N        int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Select("sender_id, COUNT(*) AS n").
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr(err)
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.SenderID] = r.N
	}
	return out, nil
}

// UnreadCount is the total number of unread messages for the badge.
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}
