package summary

import (
	"fmt"
	"strings"

	"github.com/deusflow/veckonytt/internal/news"
)

const promptTemplate = `
Du skriver en VECKOSUMMERING för utvecklare inom VR/AR/XR/AI.
Utgå ENBART från artikellistan nedan (gissa inte).

KRAV:
- Svara på svenska
- Max 5 punkter
- Max 1–2 meningar per punkt
- Totalt MAX 1500 tecken
- Fokusera på dev-relevanta saker (SDK, standarder, ramverk, verktyg, plattformar, releases)
- Om listan är tunn: skriv färre punkter hellre än att hitta på
- Avsluta med: "Källor:" och lista 3–6 viktigaste länkar

ARTIKLAR:
%s
`

// Listing renders the numbered article list embedded in the prompt. Dates
// are shown as their first ten characters, unparsed.
func Listing(items []news.Article) string {
	lines := make([]string, len(items))
	for i, it := range items {
		date := ""
		if it.Date != "" {
			date = " (" + firstRunes(it.Date, 10) + ")"
		}
		lines[i] = fmt.Sprintf("%d. [%s] %s%s\n%s", i+1, it.Source, it.Title, date, it.Link)
	}
	return strings.Join(lines, "\n\n")
}

// BuildPrompt embeds the listing in the fixed Swedish instructions.
func BuildPrompt(items []news.Article) string {
	return fmt.Sprintf(promptTemplate, Listing(items))
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
