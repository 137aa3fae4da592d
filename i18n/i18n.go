package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when nothing usable is found in cookie, query or header.
const DefaultLang = "en"

type ctxKey struct{}

var supported = map[string]bool{"en": true, "ru": true}

// Languages lists the selectable UI languages in display order.
func Languages() []string { return []string{"en", "ru"} }

// Supported reports whether lang is one of the UI languages.
func Supported(lang string) bool { return supported[strings.ToLower(lang)] }

// WithLang stores the resolved UI language in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFrom returns the UI language stored in the context, or the default.
func LangFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && supported[v] {
		return v
	}
	return DefaultLang
}

// DetectLanguage picks the first supported language from an Accept-Language
// header value.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, "-;"); i >= 0 {
			tag = tag[:i]
		}
		if supported[tag] {
			return tag
		}
	}
	return DefaultLang
}

// T translates a message code. Unknown languages fall back to the default
// language, unknown codes fall back to the code itself so missing entries
// stay visible instead of rendering blank.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

var messages = map[string]map[string]string{
	"en": {
		// error codes surfaced by the services layer
		"invalid_handle":         "Handle must be 3-20 characters: letters, digits or underscore",
		"invalid_email":          "That does not look like a valid email address",
		"password_too_short":     "Password must be at least 6 characters",
		"password_mismatch":      "Passwords do not match",
		"handle_taken":           "This handle is already taken",
		"email_taken":            "An account with this email already exists",
		"invalid_credentials":    "Wrong handle or password",
		"not_found":              "Nothing here",
		"self_message_forbidden": "You cannot message yourself",
		"message_empty":          "Message cannot be empty",
		"message_too_long":       "Message is too long (1000 characters max)",
		"forbidden":              "You are not allowed to do that",
		"retry_later":            "Something went wrong, please try again later",
		"storage_degraded":       "Some data is temporarily unavailable, showing what we have",
		"required":               "This field is required",
		"too_long":               "Too long",

		// navigation and shared chrome
		"app_name":     "TeamUp",
		"nav_home":     "Home",
		"nav_find":     "Find teammates",
		"nav_messages": "Messages",
		"nav_profile":  "My profile",
		"nav_admin":    "Admin",
		"nav_login":    "Log in",
		"nav_logout":   "Log out",
		"nav_register": "Sign up",

		// pages
		"landing_title":      "Find your next teammate",
		"landing_subtitle":   "Pick your games, set your contacts and squad up.",
		"recent_players":     "Recently joined players",
		"find_title":         "Search players",
		"find_button":        "Search",
		"games_label":        "Games",
		"contact_label":      "Contact",
		"contact_filter":     "Must have a contact",
		"has_discord":        "Discord",
		"has_telegram":       "Telegram",
		"no_results":         "No players matched your filters",
		"register_title":     "Create account",
		"login_title":        "Welcome back",
		"handle_label":       "Handle",
		"email_label":        "Email",
		"password_label":     "Password",
		"password_confirm":   "Repeat password",
		"register_button":    "Sign up",
		"login_button":       "Log in",
		"profile_games":      "Plays",
		"no_games_yet":       "No games picked yet",
		"edit_profile":       "Edit profile",
		"manage_games":       "Manage games",
		"delete_account":     "Delete account",
		"description_label":  "About",
		"discord_label":      "Discord",
		"telegram_label":     "Telegram",
		"role_label":         "Preferred role",
		"save_button":        "Save",
		"add_game_title":     "Your games",
		"add_button":         "Add",
		"remove_button":      "Remove",
		"messages_title":     "Conversations",
		"no_conversations":   "No conversations yet. Find a teammate and say hi!",
		"write_message":      "Message",
		"send_button":        "Send",
		"message_input":      "Type a message",
		"deactivated_badge":  "deactivated",
		"member_since":       "Member since",
		"admin_title":        "Admin dashboard",
		"admin_players":      "Players",
		"admin_active":       "Active",
		"admin_games":        "Game entries",
		"admin_messages":     "Messages",
		"admin_unread":       "Unread",
		"admin_recent":       "Latest signups",
		"deactivate_button":  "Deactivate",
		"activate_button":    "Reactivate",
		"page_not_found":     "This page does not exist",
		"back_home":          "Back to the home page",
		"confirm_delete":     "Delete your account? Your handle stays reserved and chats remain visible to others.",
		"confirm_deactivate": "Deactivate this player?",
	},
	"ru": {
		"invalid_handle":         "Ник должен быть 3-20 символов: буквы, цифры или подчёркивание",
		"invalid_email":          "Это не похоже на настоящий email",
		"password_too_short":     "Пароль должен быть не короче 6 символов",
		"password_mismatch":      "Пароли не совпадают",
		"handle_taken":           "Этот ник уже занят",
		"email_taken":            "Аккаунт с таким email уже существует",
		"invalid_credentials":    "Неверный ник или пароль",
		"not_found":              "Здесь ничего нет",
		"self_message_forbidden": "Нельзя писать самому себе",
		"message_empty":          "Сообщение не может быть пустым",
		"message_too_long":       "Сообщение слишком длинное (максимум 1000 символов)",
		"forbidden":              "У вас нет прав на это действие",
		"retry_later":            "Что-то пошло не так, попробуйте позже",
		"storage_degraded":       "Часть данных временно недоступна, показываем что есть",
		"required":               "Обязательное поле",
		"too_long":               "Слишком длинно",

		"app_name":     "TeamUp",
		"nav_home":     "Главная",
		"nav_find":     "Поиск тиммейтов",
		"nav_messages": "Сообщения",
		"nav_profile":  "Мой профиль",
		"nav_admin":    "Админка",
		"nav_login":    "Войти",
		"nav_logout":   "Выйти",
		"nav_register": "Регистрация",

		"landing_title":      "Найди себе тиммейта",
		"landing_subtitle":   "Выбери игры, укажи контакты и собирай команду.",
		"recent_players":     "Недавно присоединились",
		"find_title":         "Поиск игроков",
		"find_button":        "Искать",
		"games_label":        "Игры",
		"contact_label":      "Контакт",
		"contact_filter":     "Должен быть контакт",
		"has_discord":        "Discord",
		"has_telegram":       "Telegram",
		"no_results":         "Никто не подошёл под фильтры",
		"register_title":     "Создать аккаунт",
		"login_title":        "С возвращением",
		"handle_label":       "Ник",
		"email_label":        "Email",
		"password_label":     "Пароль",
		"password_confirm":   "Повторите пароль",
		"register_button":    "Зарегистрироваться",
		"login_button":       "Войти",
		"profile_games":      "Играет в",
		"no_games_yet":       "Игры ещё не выбраны",
		"edit_profile":       "Редактировать профиль",
		"manage_games":       "Мои игры",
		"delete_account":     "Удалить аккаунт",
		"description_label":  "О себе",
		"discord_label":      "Discord",
		"telegram_label":     "Telegram",
		"role_label":         "Любимая роль",
		"save_button":        "Сохранить",
		"add_game_title":     "Ваши игры",
		"add_button":         "Добавить",
		"remove_button":      "Убрать",
		"messages_title":     "Диалоги",
		"no_conversations":   "Диалогов пока нет. Найдите тиммейта и напишите ему!",
		"write_message":      "Написать",
		"send_button":        "Отправить",
		"message_input":      "Введите сообщение",
		"deactivated_badge":  "деактивирован",
		"member_since":       "На сайте с",
		"admin_title":        "Панель администратора",
		"admin_players":      "Игроки",
		"admin_active":       "Активные",
		"admin_games":        "Записи об играх",
		"admin_messages":     "Сообщения",
		"admin_unread":       "Непрочитанные",
		"admin_recent":       "Последние регистрации",
		"deactivate_button":  "Деактивировать",
		"activate_button":    "Вернуть",
		"page_not_found":     "Такой страницы нет",
		"back_home":          "Вернуться на главную",
		"confirm_delete":     "Удалить аккаунт? Ник останется занятым, а переписка будет видна собеседникам.",
		"confirm_deactivate": "Деактивировать этого игрока?",
	},
}
