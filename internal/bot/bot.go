// Package bot lets teachers run the grade book from Telegram: broadcast and
// stop PA announcements, lock grades, and look up a student's rows.
package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/app"
	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	grades *gradebook.Service
	api    *tgbotapi.BotAPI
	out    sender
	admins map[int64]bool
}

func New(config *app.Config, grades *gradebook.Service) (*Bot, error) {
	if config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is not configured")
	}
	api, err := tgbotapi.NewBotAPI(config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	b := newBot(api, config.Bot.AdminIDs, grades)
	b.api = api
	return b, nil
}

func newBot(out sender, adminIDs []int64, grades *gradebook.Service) *Bot {
	admins := make(map[int64]bool)
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Bot{
		grades: grades,
		out:    out,
		admins: admins,
	}
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info.Printf("Bot @%s listening for updates", b.api.Self.UserName)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go b.handleMessage(update.Message)

		case <-sigChan:
			logger.Info.Println("Shutting down bot...")
			b.api.StopReceivingUpdates()
			return nil
		}
	}
}
