package telegram

import (
	"context"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/observer"
	telegramRepo "iris-dashboard/repositories/telegram"
	"iris-dashboard/services/aggregator"
	"iris-dashboard/services/news"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler, token string, telegramRepo telegramRepo.Repository,
	aggregatorService aggregator.Service, techNews news.Service) (*Impl, error) {
	if token == "" {
		return nil, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return nil, ErrBotNotInitialized
	}

	service := newService(b, telegramRepo, aggregatorService, techNews)
	service.bot = b

	updateDispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(_ *gotgbot.Bot, _ *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("An error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updateDispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	updateDispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	updateDispatcher.AddHandler(handlers.NewCommand("subscribe", service.subscribeCmd))
	updateDispatcher.AddHandler(handlers.NewCommand("unsubscribe", service.unsubscribeCmd))
	updateDispatcher.AddHandler(handlers.NewCommand("dashboard", service.dashboardCmd))
	updateDispatcher.AddHandler(handlers.NewCommand("technews", service.techNewsCmd))
	service.updater = ext.NewUpdater(updateDispatcher, nil)

	if errRestore := service.restore(); errRestore != nil {
		return nil, errRestore
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(viper.GetString(constants.DigestCronTab), false),
		gocron.NewTask(func() { service.sendDigest(context.Background()) }),
		gocron.WithName("Send daily dashboard digest"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func newService(s sender, telegramRepo telegramRepo.Repository, aggregatorService aggregator.Service, techNews news.Service) *Impl {
	return &Impl{
		sender:       s,
		telegramRepo: telegramRepo,
		chats:        observer.NewRegistry(nil),
		aggregator:   aggregatorService,
		techNews:     techNews,
		userName:     viper.GetString(constants.UserName),
		now:          time.Now,
	}
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	log.Info().Str("username", service.bot.User.Username).Msg("Telegram bot is listening")
	service.updater.Idle()
	return nil
}

func (service *Impl) Shutdown() {
	if service.updater == nil {
		return
	}
	if err := service.updater.Stop(); err != nil {
		log.Error().Err(err).Msg("Cannot stop telegram updater, continuing...")
	}
}

// restore registers every stored chat for the digest.
func (service *Impl) restore() error {
	users, err := service.telegramRepo.FetchAll()
	if err != nil {
		return err
	}

	for _, user := range users {
		service.chats.Register(newChat(user.ChatID, service.userName, service.sender, service.now))
	}
	log.Info().Int(constants.LogSubscribers, len(users)).Msg("Telegram subscriptions restored")
	return nil
}

func (service *Impl) subscribe(ctx context.Context, chatID int64, name string) error {
	if err := service.telegramRepo.Save(entities.TelegramUser{ChatID: chatID, Name: name}); err != nil {
		return err
	}

	service.chats.Register(newChat(chatID, service.userName, service.sender, service.now))
	return service.sendDashboard(ctx, chatID)
}

func (service *Impl) unsubscribe(chatID int64) error {
	if err := service.telegramRepo.Delete(chatID); err != nil {
		return err
	}

	service.chats.Unregister(chatObserverID(chatID))
	return nil
}

func (service *Impl) sendDashboard(ctx context.Context, chatID int64) error {
	update, err := service.aggregator.Aggregate(ctx, false)
	if err != nil {
		return err
	}

	return service.send(chatID, formatDashboard(update, service.userName, service.now()))
}

func (service *Impl) sendTechNews(ctx context.Context, chatID int64) error {
	articles := service.techNews.FetchArticles(ctx)
	return service.send(chatID, formatTechNews(articles, service.now()))
}

// sendDigest aggregates once and pushes the result to every subscribed chat.
func (service *Impl) sendDigest(ctx context.Context) {
	subscribers := service.chats.Count()
	if subscribers == 0 {
		return
	}

	log.Info().Int(constants.LogSubscribers, subscribers).Msg("Send daily digest")
	update, err := service.aggregator.Aggregate(ctx, false)
	if err != nil {
		log.Warn().Err(err).Msg("No digest today, aggregation failed")
		return
	}

	if errBroadcast := service.chats.Broadcast(observer.NewEvent(constants.DashboardUpdateEvent, update)); errBroadcast != nil {
		log.Warn().Err(errBroadcast).Msg("Cannot deliver digest")
	}
}

func (service *Impl) send(chatID int64, text string) error {
	_, err := service.sender.SendMessage(chatID, text, &gotgbot.SendMessageOpts{ParseMode: parseMode})
	return err
}

func (service *Impl) reply(chatID int64, messageType MessageType) {
	if err := service.send(chatID, getMessageFromMessageType(messageType)); err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot reply")
	}
}

func (service *Impl) startCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("Command received")
	service.reply(ctx.EffectiveChat.Id, MessageTypeWelcome)
	return nil
}

func (service *Impl) helpCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("Command received")
	service.reply(ctx.EffectiveChat.Id, MessageTypeHelp)
	return nil
}

func (service *Impl) subscribeCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	log.Info().Str("cmd", "subscribe").Str("username", ctx.EffectiveChat.Username).Int64(constants.LogChatID, chatID).Msg("Command received")

	service.reply(chatID, MessageTypeSubscribe)
	if err := service.subscribe(context.Background(), chatID, ctx.EffectiveChat.Username); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot subscribe chat")
		service.reply(chatID, MessageTypeNoData)
	}
	return nil
}

func (service *Impl) unsubscribeCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	log.Info().Str("cmd", "unsubscribe").Int64(constants.LogChatID, chatID).Msg("Command received")

	if err := service.unsubscribe(chatID); err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot unsubscribe chat")
	}
	service.reply(chatID, MessageTypeUnsubscribe)
	return nil
}

func (service *Impl) dashboardCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	log.Info().Str("cmd", "dashboard").Int64(constants.LogChatID, chatID).Msg("Command received")
	service.answer(chatID, service.sendDashboard(context.Background(), chatID))
	return nil
}

func (service *Impl) techNewsCmd(_ *gotgbot.Bot, ctx *ext.Context) error {
	chatID := ctx.EffectiveChat.Id
	log.Info().Str("cmd", "technews").Int64(constants.LogChatID, chatID).Msg("Command received")
	service.answer(chatID, service.sendTechNews(context.Background(), chatID))
	return nil
}

func (service *Impl) answer(chatID int64, err error) {
	if err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, chatID).Msg("Cannot answer command")
		service.reply(chatID, MessageTypeNoData)
	}
}
