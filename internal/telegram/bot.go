// Package telegram is a thin chat frontend: every Telegram chat is
// mapped to one answering session, message text goes straight to the
// question pipeline.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/akorchak/docchat-backend/internal/config"
	"github.com/akorchak/docchat-backend/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatUsecase interface {
	Ask(ctx context.Context, sessionID, question string) (*entity.Answer, error)
}

// Bot long-polls Telegram updates and answers each text message
// within the chat's session.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      config.TelegramConfig
	chat     ChatUsecase
	logger   *zap.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup

	mu       sync.Mutex
	sessions map[int64]string
}

// NewBot authorizes against the Telegram API and prepares the update loop.
func NewBot(cfg config.TelegramConfig, chat ChatUsecase, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return &Bot{
		api:      api,
		cfg:      cfg,
		chat:     chat,
		logger:   logger,
		stopChan: make(chan struct{}),
		sessions: make(map[int64]string),
	}, nil
}

// Start runs the update loop until the context is cancelled or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.stopChan:
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}

			b.wg.Add(1)
			go func(msg *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleMessage(ctx, msg)
			}(update.Message)
		}
	}
}

// Stop shuts down the update loop and waits for in-flight handlers.
func (b *Bot) Stop() error {
	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Duration(b.cfg.ShutdownTimeout) * time.Second):
		b.logger.Warn("shutdown timeout reached, handlers still running")
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start":
		b.reply(chatID, "Hi! Ask me anything about the uploaded documents.")
		return
	case text == "/reset":
		b.resetSession(chatID)
		b.reply(chatID, "Conversation history cleared.")
		return
	}

	// Show typing while the pipeline works.
	b.api.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	answer, err := b.chat.Ask(ctx, b.sessionID(chatID), text)
	if err != nil {
		b.logger.Error("failed to answer telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	b.logger.Info("telegram question answered",
		zap.Int64("chat_id", chatID),
		zap.String("source", string(answer.Source)),
	)

	b.reply(chatID, answer.Text)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sessionID returns the stable session for a chat, creating one on first use.
func (b *Bot) sessionID(chatID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.sessions[chatID]
	if !ok {
		id = uuid.New().String()
		b.sessions[chatID] = id
	}
	return id
}

// resetSession drops the chat's session mapping; the next question
// starts a fresh conversation.
func (b *Bot) resetSession(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, chatID)
}
