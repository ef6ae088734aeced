package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyMessage(id, authorID, authorName, content string, hour, minute int) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		Content:   content,
		Author:    &discordgo.User{ID: authorID, GlobalName: authorName},
		Timestamp: time.Date(2024, 5, 1, hour, minute, 0, 0, time.UTC),
	}
}

func TestBuildTranscript_ChronologicalAndFiltered(t *testing.T) {
	// Newest first, the way the history API returns them.
	messages := []*discordgo.Message{
		historyMessage("5", "u2", "Bình", "tạm biệt", 10, 30),
		historyMessage("4", testBotID, "Osin", "dạ vâng ạ", 10, 20),
		historyMessage("3", "u1", "An", "xin chào", 10, 10),
	}

	lines := buildTranscript(messages, testBotID, "", 10)

	require.Len(t, lines, 2, "bot's own messages are skipped")
	assert.Equal(t, "[10:10] An: xin chào", lines[0])
	assert.Equal(t, "[10:30] Bình: tạm biệt", lines[1])
}

func TestBuildTranscript_SkipsInvokingMessage(t *testing.T) {
	messages := []*discordgo.Message{
		historyMessage("cmd", "u1", "An", "/summary", 10, 30),
		historyMessage("1", "u1", "An", "nội dung", 10, 10),
	}

	lines := buildTranscript(messages, testBotID, "cmd", 10)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "nội dung")
}

func TestBuildTranscript_RespectsLimit(t *testing.T) {
	var messages []*discordgo.Message
	for i := 0; i < 20; i++ {
		messages = append(messages, historyMessage(fmt.Sprintf("%d", 20-i), "u1", "An", "msg", 10, i))
	}

	lines := buildTranscript(messages, testBotID, "", 5)
	assert.Len(t, lines, 5)
}

func TestTranscriptLine_Annotations(t *testing.T) {
	msg := historyMessage("1", "u1", "An", "nhìn này", 9, 5)
	msg.Attachments = []*discordgo.MessageAttachment{{Filename: "cat.png"}, {Filename: "dog.jpg"}}
	msg.Embeds = []*discordgo.MessageEmbed{{}}
	msg.Reactions = []*discordgo.MessageReactions{
		{Emoji: &discordgo.Emoji{Name: "👍"}, Count: 2},
	}

	line := transcriptLine(msg)
	assert.Contains(t, line, "[Đính kèm: cat.png, dog.jpg]")
	assert.Contains(t, line, "[Có embed/link]")
	assert.Contains(t, line, "[Reactions: 👍(2)]")
}

func TestSummaryPrompt_ContainsTranscript(t *testing.T) {
	prompt := summaryPrompt([]string{"[10:10] An: xin chào", "[10:11] Bình: chào"})
	assert.Contains(t, prompt, "[10:10] An: xin chào")
	assert.Contains(t, prompt, "tóm tắt")
}

func TestFormatSummary(t *testing.T) {
	out := formatSummary(12, "mọi người bàn về mèo")
	assert.Contains(t, out, "Tóm tắt 12 tin nhắn")
	assert.Contains(t, out, "mọi người bàn về mèo")
}

// pagedSession returns history in fixed-size pages to exercise paging.
type pagedSession struct {
	MockSession
	all      []*discordgo.Message
	pageSize int
	fetches  int
}

func (p *pagedSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	p.fetches++

	start := 0
	if beforeID != "" {
		for idx, msg := range p.all {
			if msg.ID == beforeID {
				start = idx + 1
				break
			}
		}
	}
	if start >= len(p.all) {
		return nil, nil
	}

	end := start + limit
	if end-start > p.pageSize {
		end = start + p.pageSize
	}
	if end > len(p.all) {
		end = len(p.all)
	}
	return p.all[start:end], nil
}

func TestFetchRecentMessages_Pages(t *testing.T) {
	var all []*discordgo.Message
	for i := 0; i < 250; i++ {
		all = append(all, historyMessage(fmt.Sprintf("id%d", i), "u1", "An", "msg", 10, 0))
	}
	s := &pagedSession{all: all, pageSize: 100}

	messages, err := fetchRecentMessages(s, "c1", 201)
	require.NoError(t, err)
	assert.Len(t, messages, 201)
	assert.GreaterOrEqual(t, s.fetches, 3)
}

func TestFetchRecentMessages_ShortChannel(t *testing.T) {
	s := &pagedSession{all: []*discordgo.Message{historyMessage("1", "u1", "An", "msg", 10, 0)}, pageSize: 100}

	messages, err := fetchRecentMessages(s, "c1", 50)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
