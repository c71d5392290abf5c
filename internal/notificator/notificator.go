// Package notificator pushes generated motivational messages to the
// delivery channels a wallet has linked. Delivery is best effort:
// failures are logged, never retried, never fatal.
package notificator

import (
	"runtime/debug"

	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

type Notificator struct {
	logger *logger.Logger
	db     models.Repository

	TelegramNotificator *TelegramNotificator
	EmailNotificator    *EmailNotificator
}

func NewNotificator(logger *logger.Logger, db models.Repository, telNotif *TelegramNotificator, emailNotif *EmailNotificator) *Notificator {
	return &Notificator{logger: logger, db: db, TelegramNotificator: telNotif, EmailNotificator: emailNotif}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// DeliverMotivation pushes the message to every channel linked to the
// wallet address. A wallet without a delivery link is not an error.
func (n *Notificator) DeliverMotivation(address, message string) {
	link, err := n.db.GetDeliveryLink(address)
	if err != nil {
		n.logger.Debug("No delivery link for wallet: ", address)
		return
	}

	if n.TelegramNotificator != nil && link.TelegramChatID != "" {
		chatID := link.TelegramChatID
		n.safeCall(func() { n.TelegramNotificator.SendMessage(chatID, message) }, "telegramDelivery")
	}
	if n.EmailNotificator != nil && link.Email != "" {
		email := link.Email
		n.safeCall(func() { n.EmailNotificator.SendMessage(email, message) }, "emailDelivery")
	}
}
