package news

import "unicode/utf8"

const (
	// Header opens every posted digest.
	Header = "## 🗞️ Veckosummering (från våra källor)\n"

	// NoArticlesMessage is posted when no feed produced anything.
	NoArticlesMessage = "⚠️ Kunde inte läsa någon RSS-feed just nu (alla misslyckades)."

	TruncationMarker = "\n…(trunkerat)"

	// Discord rejects messages over 2000 characters.
	MaxMessageRunes = 1900
	TruncateAtRunes = 1880
)

// AssembleMessage prefixes body with header and caps the result below the
// Discord message limit. Lengths are counted in characters, not bytes.
func AssembleMessage(header, body string) string {
	out := header + body
	if utf8.RuneCountInString(out) <= MaxMessageRunes {
		return out
	}
	runes := []rune(out)
	return string(runes[:TruncateAtRunes]) + TruncationMarker
}
