package news

import (
	"sort"
	"time"
)

const (
	PerFeedLimit = 10
	TotalLimit   = 30
)

type rankedArticle struct {
	Article
	at time.Time
}

// TakeLatest returns at most n articles, newest first. When no article has
// a usable date the input order is kept. Articles with a missing or broken
// date rank as the Unix epoch, so they follow every dated one.
func TakeLatest(items []Article, n int) []Article {
	if n <= 0 || len(items) == 0 {
		return []Article{}
	}

	ranked := make([]rankedArticle, len(items))
	anyDated := false
	for i, it := range items {
		at, ok := parseDate(it.Date)
		ranked[i] = rankedArticle{Article: it, at: at}
		anyDated = anyDated || ok
	}

	if anyDated {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].at.After(ranked[j].at)
		})
	}

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]Article, n)
	for i := range out {
		out[i] = ranked[i].Article
	}
	return out
}
