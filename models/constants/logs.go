package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogFeedURL       = "feedURL"
	LogCategory      = "category"
	LogFeedNumber    = "feedNumber"
	LogArticleNumber = "articleNumber"
	LogSourceKey     = "sourceKey"
	LogCity          = "city"
	LogSessionID     = "sessionID"
	LogChatID        = "chatID"
	LogEvent         = "event"
	LogState         = "state"
	LogSubscribers   = "subscribers"
	LogStatusCode    = "statusCode"
	LogLevelFallback = zerolog.InfoLevel
)
