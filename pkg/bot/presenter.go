package bot

import (
	"errors"
	"fmt"

	"osinbot/pkg/chat"
	"osinbot/pkg/tone"
)

// fallbackAddress is used when no display name is available.
const fallbackAddress = "quý ngài/quý cô"

// renderChatError turns a typed core error into the servant persona's
// Vietnamese apology. The core never produces these strings itself.
func renderChatError(err error, name string) string {
	if name == "" {
		name = fallbackAddress
	}

	var blocked *chat.BlockedError
	switch {
	case errors.As(err, &blocked):
		return fmt.Sprintf("Úi giời ơi, em không thể trả lời được vì: %s. %s hãy thử hỏi câu khác ạ! 🙏", blocked.Reason, name)
	case errors.Is(err, chat.ErrPermissionDenied):
		return "Thưa ngài, chỉ quản trị viên mới được đổi tone của máy chủ ạ! 🙏"
	case errors.Is(err, chat.ErrInvalidLevel):
		return fmt.Sprintf("Thưa %s, mức tone phải nằm trong khoảng 1 đến %d ạ! 🙏", name, tone.MaxLevel())
	default:
		// Timeout and transport failures read the same to the user.
		return fmt.Sprintf("Ố dồi ôi, nô tỳ gặp lỗi khi xử lý yêu cầu. Mong %s thông cảm giúp em nhé! 😔", name)
	}
}

// renderImageError is the image-generation variant; blocked prompts get the
// reason code so the user can rephrase.
func renderImageError(err error, name string) string {
	if name == "" {
		name = fallbackAddress
	}

	var blocked *chat.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Sprintf("Ối dồi ôi, nô tỳ không thể tạo ảnh được. Yêu cầu bị chặn vì: %s. %s thông cảm giúp em nhé! 😔", blocked.Reason, name)
	}
	return fmt.Sprintf("Ố dồi ôi, em không thể tạo ảnh ngay lúc này. %s thông cảm giúp nô tỳ nhé! 😔", name)
}

// renderSummaryError covers the /summary path.
func renderSummaryError(err error, name string) string {
	if name == "" {
		name = fallbackAddress
	}

	var blocked *chat.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Sprintf("Úi giời ơi, em không thể tóm tắt được vì: %s. %s thông cảm giúp em nhé! 🙏", blocked.Reason, name)
	}
	return fmt.Sprintf("Ố dồi ôi, em gặp lỗi khi tóm tắt tin nhắn. %s thông cảm giúp nô tỳ nhé! 😔", name)
}

// truncate caps a reply at max runes, leaving room for the ellipsis. Rune
// based so Vietnamese text never gets cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-10]) + "..."
}
