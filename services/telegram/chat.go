package telegram

import (
	"fmt"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/observer"
	"strconv"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

func newChat(chatID int64, userName string, s sender, now func() time.Time) *chat {
	return &chat{chatID: chatID, userName: userName, sender: s, now: now}
}

func chatObserverID(chatID int64) string {
	return chatIDPrefix + strconv.FormatInt(chatID, 10)
}

func (c *chat) ID() string {
	return chatObserverID(c.chatID)
}

func (c *chat) OnNotify(e observer.Event) error {
	update, ok := e.Payload.(*entities.DashboardUpdate)
	if !ok || update == nil {
		return nil
	}

	text := formatDashboard(update, c.userName, c.now())
	if _, err := c.sender.SendMessage(c.chatID, text, &gotgbot.SendMessageOpts{ParseMode: parseMode}); err != nil {
		return fmt.Errorf("failed to send %s to chat %d: %w", e.Name, c.chatID, err)
	}
	return nil
}
