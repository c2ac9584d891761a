package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/fridgechef/pkg/logger"
)

// Sender is the part of the Telegram API the handlers need
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents a Telegram bot instance
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logger.Logger
}

// HandlerFunc is a function that handles a Telegram update
type HandlerFunc func(update tgbotapi.Update)

// CommandHandler is a function that handles a Telegram command
type CommandHandler func(message *tgbotapi.Message)

// CallbackHandler is a function that handles a Telegram callback query
type CallbackHandler func(callback *tgbotapi.CallbackQuery)

// Router sends each update to the matching handler
type Router struct {
	Commands  map[string]CommandHandler
	Callbacks map[string]CallbackHandler // keyed by data prefix
	Default   HandlerFunc
	logger    *logger.Logger
}

// New creates a new Telegram bot instance
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	bot := &Bot{
		api:    api,
		logger: logger.New("telegram"),
	}

	bot.logger.Info("Telegram bot created: @%s", api.Self.UserName)
	return bot, nil
}

// Start listens for updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context, router Router) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	router.logger = b.logger

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			router.Dispatch(update)
		}
	}
}

// Dispatch routes a single update. It reports whether a handler ran.
func (r Router) Dispatch(update tgbotapi.Update) bool {
	log := r.logger
	if log == nil {
		log = logger.Global
	}

	// Handle commands
	if update.Message != nil && update.Message.IsCommand() {
		command := update.Message.Command()
		if handler, ok := r.Commands[command]; ok {
			log.Info("Handling command /%s in chat %d", command, chatID(update))
			handler(update.Message)
			return true
		}
	}

	// Handle callback queries
	if update.CallbackQuery != nil {
		data := update.CallbackQuery.Data
		for prefix, handler := range r.Callbacks {
			if strings.HasPrefix(data, prefix) {
				log.Info("Handling callback %s in chat %d", data, chatID(update))
				handler(update.CallbackQuery)
				return true
			}
		}
		return false
	}

	// Use default handler for other updates
	if r.Default != nil {
		r.Default(update)
		return true
	}
	return false
}

func chatID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// Send sends a Chattable to Telegram
func (b *Bot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return b.api.Send(c)
}

// Request sends a Chattable that does not produce a message, such as a
// callback answer
func (b *Bot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return b.api.Request(c)
}
