package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Session defines the Discord session operations used by the bot
type Session interface {
	// Open opens a websocket connection to Discord
	Open() error

	// Close closes the websocket connection to Discord
	Close() error

	// User returns the current user
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)

	// ChannelMessageSend sends a message to a channel
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// ChannelTyping shows the typing indicator in a channel
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error

	// AddHandler adds an event handler
	AddHandler(handler interface{}) func()
}

// DiscordSession wraps discordgo.Session to implement the Session interface
type DiscordSession struct {
	*discordgo.Session
}

// NewDiscordSession creates a bot session that receives guild and direct messages
func NewDiscordSession(token string) (*DiscordSession, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return &DiscordSession{Session: session}, nil
}
