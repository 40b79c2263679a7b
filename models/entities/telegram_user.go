package entities

// TelegramUser is a chat subscribed to dashboard digests.
type TelegramUser struct {
	ChatID int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name   string `json:"name,omitempty"`
}
