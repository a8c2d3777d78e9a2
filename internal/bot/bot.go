package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Dmetrikx/goPersonaChatter/internal/config"
	"github.com/Dmetrikx/goPersonaChatter/internal/cot"
	"github.com/Dmetrikx/goPersonaChatter/internal/discord"
	"github.com/Dmetrikx/goPersonaChatter/internal/persona"
	"github.com/Dmetrikx/goPersonaChatter/internal/responder"
)

// Responder produces persona responses
type Responder interface {
	GetResponse(ctx context.Context, personaID, query string, opts responder.Options) string
}

// Personas resolves and lists registered personas
type Personas interface {
	Lookup(id string) (persona.Persona, bool)
	IDs() []string
}

// Bot represents the Discord bot
type Bot struct {
	session   discord.Session
	responder Responder
	personas  Personas
	logger    *slog.Logger
}

// NewBot creates a new bot instance
func NewBot(cfg *config.Config, r Responder, personas Personas, logger *slog.Logger) (*Bot, error) {
	session, err := discord.NewDiscordSession(cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return newBot(session, r, personas, logger), nil
}

func newBot(session discord.Session, r Responder, personas Personas, logger *slog.Logger) *Bot {
	bot := &Bot{
		session:   session,
		responder: r,
		personas:  personas,
		logger:    logger,
	}

	// Register message handler
	session.AddHandler(bot.messageHandler)

	return bot
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	user, err := b.session.User("@me")
	if err != nil {
		return fmt.Errorf("error obtaining account details: %w", err)
	}

	b.logger.InfoContext(ctx, "bot started",
		"username", user.Username,
		"user_id", user.ID)

	return nil
}

// Close closes the bot session
func (b *Bot) Close(ctx context.Context) error {
	b.logger.InfoContext(ctx, "closing bot session")
	return b.session.Close()
}

// messageHandler handles incoming messages
func (b *Bot) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from the bot itself
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	b.handleMessage(context.Background(), m.Message)
}

// handleMessage parses a command message and routes it to its handler
func (b *Bot) handleMessage(ctx context.Context, m *discordgo.Message) {
	if m.Author != nil && m.Author.Bot {
		return
	}

	// Check if message starts with command prefix
	if !strings.HasPrefix(m.Content, CommandPrefix) {
		return
	}

	// Parse command and arguments
	parts := strings.Fields(m.Content)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(strings.TrimPrefix(parts[0], CommandPrefix))
	args := parts[1:]

	b.logger.InfoContext(ctx, "received command",
		"command", command,
		"channel_id", m.ChannelID,
		"args_count", len(args))

	// Route to appropriate command handler
	switch command {
	case "ping":
		b.send(ctx, m.ChannelID, "Pong!")
	case "ask":
		b.handleAsk(ctx, m.ChannelID, args, responder.DefaultOptions())
	case "quick":
		b.handleAsk(ctx, m.ChannelID, args, responder.Options{})
	case "steps":
		b.handleAsk(ctx, m.ChannelID, args, responder.Options{UseCoT: true, CompareModels: true, Formatter: cot.StepFormatter{}})
	case "personas":
		b.handlePersonas(ctx, m.ChannelID)
	case "help":
		b.send(ctx, m.ChannelID, helpText)
	default:
		b.logger.InfoContext(ctx, "unknown command", "command", command)
	}
}

const helpText = "Commands:\n" +
	"`!ask [persona] <question>` - answer with chain-of-thought, comparing models\n" +
	"`!quick [persona] <question>` - single model, no chain-of-thought\n" +
	"`!steps [persona] <question>` - step-by-step JSON reasoning, comparing models\n" +
	"`!personas` - list personas\n" +
	"`!ping` - check the bot is alive"

// handleAsk handles the !ask, !quick and !steps commands
func (b *Bot) handleAsk(ctx context.Context, channelID string, args []string, opts responder.Options) {
	personaID, args := extractPersonaAndArgs(args, b.personas, DefaultPersonaID)
	if len(args) == 0 {
		b.send(ctx, channelID, "Usage: !ask [persona] <question>")
		return
	}
	query := strings.Join(args, " ")

	b.sendThinkingMessage(ctx, channelID, personaID, opts)

	response := b.responder.GetResponse(ctx, personaID, query, opts)
	if strings.TrimSpace(response) == "" {
		b.logger.WarnContext(ctx, "empty persona response", "persona_id", personaID)
		response = "I've got nothing on that one."
	}

	b.sendLongResponse(ctx, channelID, response)
}

// handlePersonas lists the registered personas
func (b *Bot) handlePersonas(ctx context.Context, channelID string) {
	b.sendLongResponse(ctx, channelID, formatPersonaList(b.personas))
}

// sendThinkingMessage tells the channel which persona is answering
func (b *Bot) sendThinkingMessage(ctx context.Context, channelID, personaID string, opts responder.Options) {
	p, _ := b.personas.Lookup(personaID)
	message := fmt.Sprintf("%s is thinking...", p.Name())
	if opts.CompareModels {
		message = fmt.Sprintf("%s is thinking (comparing models)...", p.Name())
	}

	b.logger.InfoContext(ctx, "sending thinking message",
		"channel_id", channelID,
		"persona", p.Name(),
		"compare_models", opts.CompareModels,
		"use_cot", opts.UseCoT)

	if err := b.session.ChannelTyping(channelID); err != nil {
		b.logger.DebugContext(ctx, "failed to send typing indicator", "error", err)
	}
	b.send(ctx, channelID, message)
}

// send sends a single message, logging failures
func (b *Bot) send(ctx context.Context, channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		b.logger.ErrorContext(ctx, "failed to send message",
			"channel_id", channelID,
			"error", err)
	}
}
