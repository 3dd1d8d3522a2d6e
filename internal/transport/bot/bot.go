package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deal_analyzer/internal/transport/bot/handler"
	"deal_analyzer/pkg/contextx"
	"deal_analyzer/pkg/logx"
)

const longPollingTimeout = 60

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot представляет собой Telegram-бота с админскими командами
type Bot struct {
	bot     *telego.Bot
	adminID int64
	handler *handler.Handler
}

// New создает бота поверх уже настроенного клиента
func New(bot *telego.Bot, adminID int64, scheduler handler.Scheduler) *Bot {
	return &Bot{
		bot:     bot,
		adminID: adminID,
		handler: handler.New(scheduler),
	}
}

// Run принимает обновления через long polling, пока ctx не завершится
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	botHandler.Use(th.PanicRecoveryHandler(func(recovered any) error {
		return fmt.Errorf("bot handler panic: %v", recovered)
	}))

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	logger(ctx).Info("admin bot started", logx.FieldUserID, b.adminID)

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", logx.Error(err))
	}

	logger(ctx).Info("admin bot stopped")

	return nil
}
