package relevance

import (
	"testing"

	"github.com/iWorld-y/vetting_radar/pkg/search"
)

func result(title, content, url string) search.Result {
	return search.Result{Title: title, URL: url, Content: content}
}

func TestIsRelevant_SingleWord(t *testing.T) {
	r := result("Tesla announces new factory", "Tesla will build in Austin", "https://example.com/tesla")
	if !IsRelevant(r, "Tesla") {
		t.Error("exact single-word subject should match")
	}
	if !IsRelevant(r, "tesla") {
		t.Error("matching must be case-insensitive")
	}
	if IsRelevant(r, "Toyota") {
		t.Error("absent subject should not match")
	}
}

func TestIsRelevant_MultiWord(t *testing.T) {
	tests := []struct {
		name    string
		r       search.Result
		subject string
		want    bool
	}{
		{
			"全部词命中",
			result("Goldman Sachs quarterly report", "Goldman Sachs posts profits", ""),
			"Goldman Sachs",
			true,
		},
		{
			"半数词命中",
			result("Goldman family history", "the Goldman legacy", ""),
			"Goldman Sachs",
			true, // 2 词中命中 1 词，恰好达到一半
		},
		{
			"无词命中",
			result("Morgan Stanley report", "Morgan Stanley earnings", ""),
			"Goldman Sachs",
			false,
		},
		{
			"短词不参与计数",
			result("JP profile page", "all about JP", ""),
			"JP Morgan Chase",
			false, // "jp" 长度不足，morgan/chase 均未命中
		},
		{
			"URL 参与匹配",
			result("Company profile", "a large agribusiness", "https://news.example.com/archer-daniels-midland"),
			"Archer Daniels Midland",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelevant(tt.r, tt.subject); got != tt.want {
				t.Errorf("IsRelevant(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}

func TestIsRelevant_EmptySubject(t *testing.T) {
	r := result("anything", "anything", "")
	if IsRelevant(r, "") || IsRelevant(r, "   ") {
		t.Error("empty subject must never match")
	}
}

func TestFilter(t *testing.T) {
	results := []search.Result{
		result("Acme Inc overview", "Acme Inc corporate profile", ""),
		result("Gardening tips", "roses and tulips", ""),
		result("Acme Inc lawsuit", "Acme Inc sued", ""),
	}

	filtered := Filter(results, "Acme Inc")
	if len(filtered) != 2 {
		t.Fatalf("Filter returned %d results, want 2", len(filtered))
	}
	// 顺序保持
	if filtered[0].Title != "Acme Inc overview" || filtered[1].Title != "Acme Inc lawsuit" {
		t.Errorf("Filter reordered results: %v", filtered)
	}

	// 幂等
	again := Filter(filtered, "Acme Inc")
	if len(again) != len(filtered) {
		t.Errorf("Filter is not idempotent: %d -> %d", len(filtered), len(again))
	}
}

func TestFilter_Empty(t *testing.T) {
	if got := Filter(nil, "Acme Inc"); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}
}
