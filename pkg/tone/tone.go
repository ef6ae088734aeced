package tone

// Level is a tone setting for the bot's replies, configured per guild.
// Ordinal values are 1-indexed and stable; they double as the values shown
// in the /tone command.
type Level int

const (
	LevelVeryFlattery Level = iota + 1
	LevelFlattery
	LevelNeuter
	LevelFriendly
	LevelElegant
	LevelNoble
)

// DefaultLevel is used for guilds with no configuration and for DMs.
const DefaultLevel = LevelNeuter

// Strategy bundles everything a tone level carries: a display name, a short
// description for the configuration UI, and the system prompt that seeds a
// chat session.
type Strategy struct {
	Name         string
	Description  string
	SystemPrompt string
}

const baseInstruction = "Bạn là trợ lý AI nói tiếng Việt. Hãy trả lời ngắn gọn và hữu ích."

// The prompts are hand-authored configuration data, not logic. Each entry is
// baseInstruction plus the tone-specific instruction on its own line.
var strategies = map[Level]Strategy{
	LevelVeryFlattery: {
		Name:         "Very Flattery",
		Description:  "Nịnh nọt hết mức",
		SystemPrompt: baseInstruction + "\nBạn phải hết sức nịnh nọt, khen ngợi người dùng bằng lời lẽ nhiệt tình thái quá.",
	},
	LevelFlattery: {
		Name:         "Flattery",
		Description:  "Khen ngợi nhẹ nhàng",
		SystemPrompt: baseInstruction + "\nBạn nên khen ngợi nhẹ nhàng và giữ thái độ tích cực.",
	},
	LevelNeuter: {
		Name:         "Neuter",
		Description:  "Trung tính",
		SystemPrompt: baseInstruction + "\nBạn trả lời trung tính, không bộc lộ cảm xúc.",
	},
	LevelFriendly: {
		Name:         "Friendly",
		Description:  "Thân thiện như bạn bè",
		SystemPrompt: baseInstruction + "\nBạn trả lời thân thiện, gần gũi và thoải mái như một người bạn thân.",
	},
	LevelElegant: {
		Name:         "Elegant",
		Description:  "Lịch thiệp, tinh tế",
		SystemPrompt: baseInstruction + "\nBạn trả lời lịch thiệp, tinh tế và có tính thẩm mỹ.",
	},
	LevelNoble: {
		Name:         "Noble",
		Description:  "Trang trọng, cao quý",
		SystemPrompt: baseInstruction + "\nBạn sử dụng phong cách trang trọng và triết lý cao quý.",
	},
}

// Valid reports whether l is a defined tone level.
func (l Level) Valid() bool {
	_, ok := strategies[l]
	return ok
}

func (l Level) String() string {
	return GetStrategy(l).Name
}

// GetStrategy returns the strategy for a level. Unknown levels fall back to
// the default, so the result is always usable.
func GetStrategy(l Level) Strategy {
	if s, ok := strategies[l]; ok {
		return s
	}
	return strategies[DefaultLevel]
}

// Levels returns all defined levels in ascending order.
func Levels() []Level {
	return []Level{
		LevelVeryFlattery,
		LevelFlattery,
		LevelNeuter,
		LevelFriendly,
		LevelElegant,
		LevelNoble,
	}
}

// MaxLevel is the highest defined level, for range validation at the
// command boundary.
func MaxLevel() Level {
	levels := Levels()
	return levels[len(levels)-1]
}
