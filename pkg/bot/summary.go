package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// buildTranscript formats channel history for the summary prompt. The input
// slice comes from the API newest-first; the bot's own messages and the
// invoking message are skipped, and the result is chronological.
func buildTranscript(messages []*discordgo.Message, botID, skipID string, limit int) []string {
	var kept []*discordgo.Message
	for _, msg := range messages {
		if msg.Author != nil && msg.Author.ID == botID {
			continue
		}
		if msg.ID == skipID {
			continue
		}
		kept = append(kept, msg)
		if len(kept) >= limit {
			break
		}
	}

	// Reverse to oldest-first for the model.
	lines := make([]string, 0, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		lines = append(lines, transcriptLine(kept[i]))
	}
	return lines
}

func transcriptLine(msg *discordgo.Message) string {
	name := "Unknown"
	if msg.Author != nil {
		name = displayName(msg.Author)
	}

	content := msg.Content

	if len(msg.Attachments) > 0 {
		names := make([]string, 0, len(msg.Attachments))
		for _, att := range msg.Attachments {
			names = append(names, att.Filename)
		}
		content += fmt.Sprintf(" [Đính kèm: %s]", strings.Join(names, ", "))
	}

	if len(msg.Embeds) > 0 {
		content += " [Có embed/link]"
	}

	if len(msg.Reactions) > 0 {
		reactions := make([]string, 0, len(msg.Reactions))
		for _, r := range msg.Reactions {
			reactions = append(reactions, fmt.Sprintf("%s(%d)", r.Emoji.Name, r.Count))
		}
		content += fmt.Sprintf(" [Reactions: %s]", strings.Join(reactions, ", "))
	}

	return fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format("15:04"), name, content)
}

func summaryPrompt(lines []string) string {
	return fmt.Sprintf(`Hãy tóm tắt cuộc trò chuyện sau đây bằng tiếng Việt một cách chi tiết và thú vị:

%s

Yêu cầu tóm tắt:
- Nội dung chính của cuộc trò chuyện
- Ai nói về vấn đề gì (chỉ tóm tắt chứ không cần chi tiết nội dung)
- Không khí trao đổi như nào, tâm trạng có ai không vui ko, có gì hay ho đặc biệt không
Tổng quan về không khí cuộc trò chuyện

Hãy viết một cách hài hước, dễ hiểu và đừng quá dài dòng văn tự quá nhé.`, strings.Join(lines, "\n"))
}

// formatSummary wraps the generated summary for Discord, leaving headroom for
// the surrounding formatting.
func formatSummary(count int, summary string) string {
	return fmt.Sprintf("📋 **Tóm tắt %d tin nhắn gần đây:**\n\n%s\n\n*- Ô sin đã tóm tắt xong ạ! 🫡*", count, truncate(summary, 1900))
}
