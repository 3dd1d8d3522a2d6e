package config

type Telegram struct {
	Token  string `env:"TELE_BOT_TOKEN,required" validate:"required"`
	ChatID int64  `env:"TELE_CHAT_ID,required"   validate:"required"`
	// AdminID defaults to ChatID when zero.
	AdminID         int64  `env:"BOT_ADMIN_ID"`
	CommandsEnabled bool   `env:"BOT_COMMANDS_ENABLED" envDefault:"false"`
	Headline        string `env:"NOTIFY_HEADLINE"`
}

func (t Telegram) Admin() int64 {
	if t.AdminID != 0 {
		return t.AdminID
	}

	return t.ChatID
}
