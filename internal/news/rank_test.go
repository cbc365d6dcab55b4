package news

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []Article) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestTakeLatest_SortsDescendingWhenAnyDated(t *testing.T) {
	items := []Article{
		{Title: "old", Date: "2024-01-01T10:00:00Z"},
		{Title: "undated"},
		{Title: "new", Date: "Mon, 15 Jan 2024 08:00:00 +0000"},
		{Title: "garbage", Date: "not a date"},
		{Title: "mid", Date: "2024-01-10"},
	}

	got := TakeLatest(items, 10)
	assert.Equal(t, []string{"new", "mid", "old", "undated", "garbage"}, titles(got))
}

func TestTakeLatest_KeepsOrderWhenNoneDated(t *testing.T) {
	items := []Article{
		{Title: "c", Date: "yesterday"},
		{Title: "a"},
		{Title: "b", Date: "soon"},
	}

	got := TakeLatest(items, 10)
	assert.Equal(t, []string{"c", "a", "b"}, titles(got))
}

func TestTakeLatest_Caps(t *testing.T) {
	var items []Article
	for i := 0; i < 15; i++ {
		items = append(items, Article{Title: fmt.Sprint(i), Date: fmt.Sprintf("2024-02-%02dT00:00:00Z", i+1)})
	}

	for _, n := range []int{-1, 0, 1, 10, 15, 40} {
		got := TakeLatest(items, n)
		want := n
		if want < 0 {
			want = 0
		}
		if want > len(items) {
			want = len(items)
		}
		assert.Len(t, got, want, "n=%d", n)
	}

	top := TakeLatest(items, 3)
	assert.Equal(t, []string{"14", "13", "12"}, titles(top))
}

func TestTakeLatest_DoesNotMutateInput(t *testing.T) {
	items := []Article{
		{Title: "a", Date: "2024-01-01"},
		{Title: "b", Date: "2024-03-01"},
	}
	_ = TakeLatest(items, 2)
	assert.Equal(t, "a", items[0].Title)
}

func TestTakeLatest_UndatedNeverBeforeDated(t *testing.T) {
	items := []Article{
		{Title: "u1"},
		{Title: "d1", Date: "2023-05-05T00:00:00Z"},
		{Title: "u2", Date: "???"},
		{Title: "d2", Date: "2025-05-05T00:00:00Z"},
		{Title: "u3"},
	}

	got := TakeLatest(items, 5)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"d2", "d1"}, titles(got[:2]))
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, titles(got[2:]))
}

func TestParseFeedSpec(t *testing.T) {
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/atom"},
		ParseFeedSpec(" https://a.example/rss, ,https://b.example/atom ,"))
	assert.Empty(t, ParseFeedSpec(""))
	assert.Empty(t, ParseFeedSpec(" , ,"))
	assert.Equal(t, "a,b,c", JoinFeedSpec("a, b", []string{"c"}))
}

func TestNewArticle_Defaults(t *testing.T) {
	a := NewArticle("Feed", "", "", "")
	assert.Equal(t, UntitledPlaceholder, a.Title)
	assert.Equal(t, "", a.Link)
	assert.Equal(t, "Feed", a.Source)
}
