package news

import (
	"strings"
	"time"
)

// Article is one feed entry, normalised for ranking and prompting.
type Article struct {
	Source string // feed title, or feed URL when the feed has none
	Title  string
	Link   string
	Date   string // best effort; may be empty or unparsable
}

// UntitledPlaceholder replaces a missing article title.
const UntitledPlaceholder = "(utan titel)"

// NewArticle applies the field defaults.
func NewArticle(source, title, link, date string) Article {
	if title == "" {
		title = UntitledPlaceholder
	}
	return Article{
		Source: source,
		Title:  title,
		Link:   link,
		Date:   date,
	}
}

// ParseFeedSpec splits a comma separated feed list, trimming entries and
// dropping empty ones.
func ParseFeedSpec(spec string) []string {
	var urls []string
	for _, part := range strings.Split(spec, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// JoinFeedSpec appends extra feed URLs to a comma separated spec.
func JoinFeedSpec(spec string, extra []string) string {
	urls := append(ParseFeedSpec(spec), extra...)
	return strings.Join(urls, ",")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.ANSIC,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate returns the parsed time and whether raw was a valid date.
// Empty or unparsable values yield the Unix epoch.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Unix(0, 0), false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Unix(0, 0), false
}
