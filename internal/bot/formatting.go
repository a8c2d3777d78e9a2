package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// sendLongResponse sends long responses in chunks to respect Discord's message length limit
func (b *Bot) sendLongResponse(ctx context.Context, channelID, response string) {
	for i, chunk := range splitMessage(response, MaxDiscordMessageLength) {
		_, err := b.session.ChannelMessageSend(channelID, chunk)
		if err != nil {
			b.logger.ErrorContext(ctx, "failed to send message chunk",
				"channel_id", channelID,
				"chunk_index", i,
				"error", err)
		}
	}
}

// splitMessage cuts s into chunks of at most limit bytes without splitting a
// UTF-8 sequence.
func splitMessage(s string, limit int) []string {
	var chunks []string
	for len(s) > 0 {
		end := limit
		if end >= len(s) {
			chunks = append(chunks, s)
			break
		}
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		if end == 0 {
			end = limit
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}

// extractPersonaAndArgs takes a leading persona id off args when it names a
// registered persona
func extractPersonaAndArgs(args []string, personas Personas, defaultPersona string) (string, []string) {
	if len(args) > 1 {
		if _, ok := personas.Lookup(args[0]); ok {
			return strings.ToLower(args[0]), args[1:]
		}
	}
	return defaultPersona, args
}

// formatPersonaList renders one line per registered persona
func formatPersonaList(personas Personas) string {
	ids := personas.IDs()
	if len(ids) == 0 {
		return "No personas registered."
	}

	lines := make([]string, 0, len(ids)+1)
	lines = append(lines, "Personas:")
	for _, id := range ids {
		p, _ := personas.Lookup(id)
		lines = append(lines, fmt.Sprintf("`%s` - %s", id, p.Summary()))
	}
	return strings.Join(lines, "\n")
}
