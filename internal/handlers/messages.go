package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/dsmorokov/teamup/auth"
	"github.com/dsmorokov/teamup/httpx"
	"github.com/dsmorokov/teamup/i18n"
	"github.com/dsmorokov/teamup/internal/services"
	"github.com/dsmorokov/teamup/view"
)

type MessageHandler struct {
	messages *services.MessageService
	users    *services.UserService
	log      *zap.Logger
}

func NewMessageHandler(messages *services.MessageService, users *services.UserService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, users: users, log: log}
}

// List is the inbox: one row per counterpart, newest conversation first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	data := map[string]any{}

	convs, err := h.messages.ListConversations(r.Context(), uid)
	if err != nil {
		h.log.Error("conversations unavailable", zap.Error(err))
		data["Warning"] = i18n.T(i18n.LangFrom(r.Context()), "storage_degraded")
	}
	data["Conversations"] = convs
	view.Render(w, r, "messages.html", data)
}

// chat errors that may legitimately come back through the redirect loop
var chatErrCodes = map[string]bool{
	"message_empty":    true,
	"message_too_long": true,
	"not_found":        true,
	"retry_later":      true,
}

// Chat opens one conversation, which also marks the counterpart's messages
// as read. Deactivated counterparts stay readable but the composer is
// disabled.
func (h *MessageHandler) Chat(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	other, err := h.users.ByHandle(r.Context(), r.PathValue("handle"))
	if errors.Is(err, services.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}
	if other.ID == uid {
		http.Redirect(w, r, "/messages", http.StatusSeeOther)
		return
	}

	data := map[string]any{
		"Other":    other,
		"ViewerID": uid,
		"CanSend":  other.Active,
	}

	history, err := h.messages.OpenConversation(r.Context(), uid, other.ID)
	if err != nil {
		h.log.Error("history unavailable", zap.Error(err))
		data["Warning"] = i18n.T(i18n.LangFrom(r.Context()), "storage_degraded")
	}
	data["History"] = history

	if code := r.URL.Query().Get("error"); chatErrCodes[code] {
		data["Error"] = i18n.T(i18n.LangFrom(r.Context()), code)
	}
	view.Render(w, r, "chat.html", data)
}

// Send appends a message and bounces back to the chat; failures travel as a
// code in the redirect so the reloaded page can show them.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	handle := r.PathValue("handle")

	other, err := h.users.ByHandle(r.Context(), handle)
	if errors.Is(err, services.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	if err != nil {
		renderErrorPage(w, r, h.log, err)
		return
	}

	if _, err := h.messages.Send(r.Context(), uid, other.ID, r.FormValue("content")); err != nil {
		if errors.Is(err, services.ErrSelfMessage) {
			http.Redirect(w, r, "/messages", http.StatusSeeOther)
			return
		}
		code := services.Code(err)
		if code == "" {
			h.log.Error("send failed", zap.Error(err), zap.String("to", handle))
			code = "retry_later"
		}
		http.Redirect(w, r, "/chat/"+handle+"?error="+code, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/chat/"+handle, http.StatusSeeOther)
}

// UnreadCount feeds the navigation badge. Polling must never take the UI
// down, so storage failures degrade to zero.
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	n, err := h.messages.UnreadCount(r.Context(), uid)
	if err != nil {
		h.log.Error("unread count unavailable", zap.Error(err))
		n = 0
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"unread_count": n})
}
