package services

import (
	"fmt"
	"html"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskhub/internal/models"
)

// TelegramService pushes task-event notifications to users who linked a
// telegram chat. A nil service (no bot token configured) is safe to call.
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramService(botToken string) (*TelegramService, error) {
	if botToken == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramService{bot: bot}, nil
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.bot == nil || chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] chatID=%d: %v", chatID, err)
		return err
	}
	return nil
}

// NotifyTask sends a short formatted summary of a task, prefixed by the
// event description.
func (t *TelegramService) NotifyTask(chatID int64, prefix string, task *models.Task) error {
	return t.SendMessage(chatID, formatTask(prefix, task))
}

func formatTask(prefix string, task *models.Task) string {
	due := "—"
	if task.DueDate != nil {
		due = task.DueDate.Format("02/01/2006 15:04")
	}
	return prefix + "\n" +
		"• <b>" + html.EscapeString(task.Title) + "</b>\n" +
		"• Status: <code>" + models.StatusLabel(task.Status) + "</code>\n" +
		"• Prioridade: <code>" + string(task.Priority) + "</code>\n" +
		"• Vencimento: <code>" + due + "</code>\n" +
		"• #" + strconv.FormatInt(task.ID, 10)
}
