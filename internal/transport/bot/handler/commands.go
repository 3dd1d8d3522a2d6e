package handler

import (
	"errors"
	"fmt"
	"html"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_analyzer/internal/transport/bot/view"
	"deal_analyzer/internal/worker"
	"deal_analyzer/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.Status(h.scheduler.Status()))
}

// OnRun starts a run without waiting for it; the report is delivered by the
// run itself.
func (h *Handler) OnRun(ctx *th.Context, msg telego.Message) error {
	err := h.scheduler.RunNow()

	switch {
	case errors.Is(err, worker.ErrRunInProgress):
		return h.sendHTML(ctx, msg.Chat.ID, view.RunAlreadyRunning)
	case err != nil:
		logger(ctx).Error("manual run not started", logx.Error(err))
		return h.sendHTML(ctx, msg.Chat.ID, fmt.Sprintf(view.RunFailedToStart, html.EscapeString(err.Error())))
	}

	logger(ctx).Info("manual run requested", logx.FieldUserID, msg.Chat.ID)

	return h.sendHTML(ctx, msg.Chat.ID, view.RunStarted)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeHTML))
	if err != nil {
		return fmt.Errorf("bot.SendMessage: %w", err)
	}

	return nil
}
