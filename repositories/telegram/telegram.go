package telegram

import (
	"fmt"
	"iris-dashboard/models/entities"
	"iris-dashboard/utils/databases"

	"gorm.io/gorm/clause"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.TelegramUser, error) {
	var users []entities.TelegramUser
	result := repo.db.GetDB().Order("chat_id").Find(&users)

	return users, result.Error
}

// Save creates the subscription or refreshes the stored chat name.
func (repo *Impl) Save(user entities.TelegramUser) error {
	result := repo.db.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&user)
	if result.Error != nil {
		return fmt.Errorf("failed to save chat %d: %w", user.ChatID, result.Error)
	}

	return nil
}

func (repo *Impl) Delete(chatID int64) error {
	result := repo.db.GetDB().Delete(&entities.TelegramUser{}, chatID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete chat %d: %w", chatID, result.Error)
	}

	return nil
}
