package rss

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText strips markup and entities some feeds leave in titles and
// collapses whitespace.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
