package bot

// Discord message and command constants
const (
	MaxDiscordMessageLength = 2000
	CommandPrefix           = "!"
	DefaultPersonaID        = "coonbot"
)
