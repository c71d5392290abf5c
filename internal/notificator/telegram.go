package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot

	db models.Repository
}

func NewTelegramNotificator(logger *logger.Logger, token string, db models.Repository) (*TelegramNotificator, error) {
	provider := &TelegramNotificator{
		logger: logger,
		db:     db,
	}
	opts := []bot.Option{
		bot.WithDefaultHandler(provider.handler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	go b.Start(context.Background())
	provider.bot = b

	return provider, nil
}

func (t *TelegramNotificator) SendMessage(chatID, message string) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   message,
	}
	_, err := t.bot.SendMessage(context.Background(), params)
	if err != nil {
		t.logger.Error("Failed to send telegram message: ", err)
	}
}

// handler links the chat ID to the delivery link when a user with a
// linked username messages /start.
func (t *TelegramNotificator) handler(ctx context.Context, b *bot.Bot, update *tgModels.Update) {
	if update.Message == nil {
		return
	}
	user := update.Message.From
	if user == nil {
		t.logger.Error("User is nil")
		return
	}
	t.logger.Debug("Telegram update: ", user.Username, " ", update.Message.Text)
	if update.Message.Text == "/start" {
		link, err := t.db.GetDeliveryLinkByTelegramUsername(user.Username)
		if err != nil {
			t.logger.Error("Failed to get delivery link by telegram username: ", err, " username: ", user.Username)
			return
		}
		if link == nil {
			t.logger.Error("Delivery link is nil")
			return
		}
		if err := t.db.SetTelegramChatID(user.Username, fmt.Sprint(update.Message.Chat.ID)); err != nil {
			t.logger.Error("Failed to set telegram chat ID: ", err)
			return
		}
		t.SendMessage(fmt.Sprint(update.Message.Chat.ID), "You will now receive habit motivation here. Wallet: "+link.Address)
	}
}
