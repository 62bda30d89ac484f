package badges

var icons = []string{
	"🌟", "💎", "🔮", "🧪", "👑", "🦄", "🐉", "🌈", "🪄", "⭐",
	"💖", "🏰", "🦋", "🌸", "🍄", "✨", "🧚", "🦊", "🦉", "🐇",
	"🎭", "🎪", "💫", "🌙", "🎀", "🫧", "🪻", "🩵", "🎠", "🪽",
}

var names = []string{
	"Starlight", "Diamond", "Mystic", "Alchemist", "Royal", "Unicorn", "Dragon", "Rainbow", "Wizard", "Celestial",
	"Heartkeeper", "Castle", "Butterfly", "Blossom", "Mushroom", "Sparkle", "Fairy", "Fox", "Owl", "Bunny",
	"Masquerade", "Carnival", "Comet", "Moonbeam", "Ribbon", "Bubble", "Orchid", "Crystal", "Carousel", "Winged",
}

var prizeIcons = []string{"🎁", "🎀", "🎊", "🎪", "🏆", "🎠", "🎡", "🎢", "🧸", "🎮"}

// PaletteSize is the number of distinct badge designs.
func PaletteSize() int { return len(icons) }

// Icon returns the badge icon for ledger position index.
func Icon(index int) string { return icons[mod(index, len(icons))] }

// Name returns the badge name for ledger position index.
func Name(index int) string { return names[mod(index, len(names))] }

// PrizeIcon returns the prize icon for prize row row.
func PrizeIcon(row int) string { return prizeIcons[mod(row, len(prizeIcons))] }

func mod(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
