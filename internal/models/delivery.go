package models

// DeliveryLink associates a wallet address with optional delivery
// channels for generated motivational messages.
type DeliveryLink struct {
	// ID is the unique identifier for the delivery link.
	ID int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the wallet address the link belongs to.
	Address string `json:"address" gorm:"column:address;unique;not null"`
	// TelegramUsername is the telegram username, empty if unlinked.
	TelegramUsername string `json:"telegram_username" gorm:"column:telegram_username;index"`
	// TelegramChatID is filled in when the user messages the bot.
	TelegramChatID string `json:"telegram_chat_id" gorm:"column:telegram_chat_id"`
	// Email is the email address, empty if unlinked.
	Email string `json:"email" gorm:"column:email"`
}

// MotivationRequest is the /motivate request body.
type MotivationRequest struct {
	Habit       string `json:"habit"`
	Progress    string `json:"progress"`
	Description string `json:"description"`
}
