package notifier

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deal_analyzer/internal/domain"
	"deal_analyzer/pkg/errcodes"
)

// TelegramBot delivers run results to one chat through the Bot API.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

type Option func(*[]telego.BotOption)

// WithAPIServer points the bot at another Bot API server.
func WithAPIServer(url string) Option {
	return func(opts *[]telego.BotOption) {
		*opts = append(*opts, telego.WithAPIServer(url), telego.WithHTTPClient(http.DefaultClient))
	}
}

func NewTelegramBot(token string, chatID int64, opts ...Option) (*TelegramBot, error) {
	botOpts := []telego.BotOption{telego.WithDiscardLogger()}
	for _, opt := range opts {
		opt(&botOpts)
	}

	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Bot exposes the underlying client for the command handlers.
func (b *TelegramBot) Bot() *telego.Bot {
	return b.bot
}

// SendText отправляет текст как есть, без разметки.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return domain.WrapError(err, errcodes.NotificationError, "send message")
	}

	return nil
}

// SendFile uploads the file at path as a document.
func (b *TelegramBot) SendFile(ctx context.Context, path, caption string) error {
	file, err := os.Open(path)
	if err != nil {
		return domain.WrapError(err, errcodes.NotificationError, "open document")
	}
	defer file.Close()

	doc := tu.Document(tu.ID(b.chatID), tu.File(file))
	if caption != "" {
		doc = doc.WithCaption(caption)
	}

	if _, err := b.bot.SendDocument(ctx, doc); err != nil {
		return domain.WrapError(err, errcodes.NotificationError, "send document")
	}

	return nil
}
