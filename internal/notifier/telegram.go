// Package notifier pushes alerts when an instrument reaches full
// confluence, so high-conviction setups surface without watching the
// dashboard.
package notifier

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxconfluence/internal/model"
)

// Telegram sends confluence alerts through the Telegram Bot API. An
// instrument alerts at most once per cooldown window so repeated
// scans of a persisting setup do not spam the chat.
type Telegram struct {
	bot      *tgbotapi.BotAPI
	chatID   int64
	cooldown time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
	logger   zerolog.Logger
}

// NewTelegram authorizes the bot. Fails only on an invalid token.
func NewTelegram(token string, chatID int64, cooldown time.Duration) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:      bot,
		chatID:   chatID,
		cooldown: cooldown,
		lastSent: make(map[string]time.Time),
		logger:   log.With().Str("component", "notifier").Logger(),
	}, nil
}

// NotifyStrong sends an alert for every record with a unanimous
// directional summary, respecting the per-instrument cooldown.
func (t *Telegram) NotifyStrong(ctx context.Context, records []model.ConfluenceRecord) {
	for _, rec := range records {
		if !strings.HasPrefix(rec.Summary, "Strong ") {
			continue
		}
		if !t.shouldSend(rec.Symbol) {
			continue
		}
		msg := tgbotapi.NewMessage(t.chatID, FormatAlert(rec))
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := t.bot.Send(msg); err != nil {
			t.logger.Error().Err(err).Str("symbol", rec.Symbol).Msg("send alert failed")
			continue
		}
		t.logger.Info().Str("symbol", rec.Symbol).Str("summary", rec.Summary).Msg("alert sent")

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (t *Telegram) shouldSend(symbol string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if last, ok := t.lastSent[symbol]; ok && time.Since(last) < t.cooldown {
		return false
	}
	t.lastSent[symbol] = time.Now()
	return true
}
