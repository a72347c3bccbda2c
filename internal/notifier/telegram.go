package notifier

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Telegram caps messages at ~4096 characters; we split well below that so a
// part never gets rejected mid-briefing.
const (
	maxMessageLen = 3800
	// minSplitPos guards against a degenerate split when the only newline
	// sits near the top of the window.
	minSplitPos = 800
)

// TelegramNotifier delivers briefings to one chat via the Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier connects to the Bot API and verifies the token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

// SplitMessage cuts text into Telegram-sized parts, preferring to break on
// the last newline inside the window.
func SplitMessage(text string) []string {
	runes := []rune(text)
	var parts []string

	for len(runes) > maxMessageLen {
		cut := -1
		for i := maxMessageLen - 1; i >= 0; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		if cut < minSplitPos {
			cut = maxMessageLen
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	parts = append(parts, string(runes))
	return parts
}

// Send splits text and delivers every part in order, retrying each part with
// exponential backoff.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	for i, part := range SplitMessage(text) {
		if err := t.sendPart(ctx, part); err != nil {
			return fmt.Errorf("send part %d: %w", i+1, err)
		}
	}
	return nil
}

func (t *TelegramNotifier) sendPart(ctx context.Context, text string) error {
	operation := func() error {
		msg := tgbotapi.NewMessage(t.chatID, text)
		msg.DisableWebPagePreview = true
		_, err := t.bot.Send(msg)
		if err != nil {
			t.logger.Warn().Err(err).Msg("telegram send failed, retrying")
		}
		return err
	}
	strategy := backoff.NewExponentialBackOff()
	return backoff.Retry(operation, backoff.WithContext(strategy, ctx))
}
