package telegram

import (
	"iris-dashboard/models/entities"
	"iris-dashboard/utils/databases"
)

// Repository stores the chats subscribed to dashboard digests.
type Repository interface {
	Save(user entities.TelegramUser) error
	Delete(chatID int64) error
	FetchAll() ([]entities.TelegramUser, error)
}

type Impl struct {
	db databases.SqlConnection
}
