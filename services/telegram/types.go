package telegram

import (
	"errors"
	"iris-dashboard/pkg/observer"
	telegramRepo "iris-dashboard/repositories/telegram"
	"iris-dashboard/services/aggregator"
	"iris-dashboard/services/news"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

type MessageType int

const (
	MessageTypeWelcome MessageType = iota
	MessageTypeHelp
	MessageTypeSubscribe
	MessageTypeUnsubscribe
	MessageTypeNoData
	MessageTypeUnknown
)

const (
	chatIDPrefix     = "telegram:"
	parseMode        = "HTML"
	newsHeadlines    = 5
	techNewsMessages = 10
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

type Service interface {
	ListenAndDispatch() error
	Shutdown()
}

// Impl answers chat commands directly and pushes the daily digest to subscribed chats. Chats are
// kept in their own registry so they never count as websocket subscribers.
type Impl struct {
	bot          *gotgbot.Bot
	sender       sender
	updater      *ext.Updater
	telegramRepo telegramRepo.Repository
	chats        observer.Notifier
	aggregator   aggregator.Service
	techNews     news.Service
	userName     string
	now          func() time.Time
}

type sender interface {
	SendMessage(chatID int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

// chat is a subscribed Telegram conversation.
type chat struct {
	chatID   int64
	userName string
	sender   sender
	now      func() time.Time
}
