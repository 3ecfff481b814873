package model

// Update is a normalized inbound chat event: just the parts the command
// router needs, independent of the Telegram wire schema.
type Update struct {
	// SenderID is the platform-assigned user identifier, stable per user.
	SenderID string
	// ChatID is where the reply goes.
	ChatID int64
	// Text is the trimmed message text.
	Text string
	// Command is the bot command without the leading slash, empty for free text.
	Command string
	// Args are the whitespace-separated command arguments.
	Args []string
}

// IsCommand reports whether the update carries a bot command.
func (u *Update) IsCommand() bool { return u.Command != "" }
