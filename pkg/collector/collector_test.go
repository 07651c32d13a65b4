package collector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iWorld-y/vetting_radar/pkg/search"
)

// mockSearcher 按查询关键词返回脚本化结果
type mockSearcher struct {
	results map[string][]search.Result // 查询子串 -> 结果
	err     error
}

func (m *mockSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	for key, results := range m.results {
		if strings.Contains(req.Query, key) {
			return &search.Response{Results: results}, nil
		}
	}
	return &search.Response{}, nil
}

// mockCompleter 按 system prompt 区分应答
type mockCompleter struct {
	extractResponse  string
	classifyResponse string
	err              error
}

func (m *mockCompleter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if strings.Contains(system, "extract") {
		return m.extractResponse, nil
	}
	return m.classifyResponse, nil
}

func newTestCollector(s search.Searcher, c *mockCompleter) *Collector {
	col := NewCollector(s, c)
	col.fetchContent = func(url string) (string, error) {
		return "", errors.New("fetch disabled in tests")
	}
	return col
}

func acmeResult(title string) search.Result {
	return search.Result{Title: title, URL: "https://example.com/acme", Content: "Acme Inc business news"}
}

func TestCollector_Collect_CountInvariant(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]search.Result{
		"overview reputation":    {acmeResult("Acme Inc overview"), acmeResult("Acme Inc profile")},
		"scandal controversy":    {acmeResult("Acme Inc lawsuit news")},
		"regulatory enforcement": {acmeResult("Acme Inc SEC filing")},
		"latest news":            {acmeResult("Acme Inc quarterly update")},
		"social media":           {acmeResult("Acme Inc on social media")},
	}}
	completer := &mockCompleter{extractResponse: "[]"}
	col := newTestCollector(searcher, completer)

	raw := col.Collect(context.Background(), "Acme Inc", nil)

	want := len(raw.General) + len(raw.News) + len(raw.LegalRegulatory) + len(raw.RecentNews)
	for _, results := range raw.SocialMedia {
		want += len(results)
	}
	if raw.TotalResults != want {
		t.Errorf("TotalResults = %d, want %d (列表长度之和)", raw.TotalResults, want)
	}
	if !raw.HasData {
		t.Error("HasData = false with non-empty lists")
	}
	if raw.CompanyName != "Acme Inc" {
		t.Errorf("CompanyName = %q", raw.CompanyName)
	}
}

func TestCollector_Collect_AllProvidersFail(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("provider down")}
	col := newTestCollector(searcher, &mockCompleter{extractResponse: "[]"})

	raw := col.Collect(context.Background(), "Acme Inc", nil)
	if raw == nil {
		t.Fatal("Collect returned nil on provider failure")
	}
	if raw.TotalResults != 0 || raw.HasData {
		t.Errorf("TotalResults = %d, HasData = %v, want 0/false", raw.TotalResults, raw.HasData)
	}
}

func TestCollector_Collect_IrrelevantFiltered(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]search.Result{
		"overview reputation": {
			acmeResult("Acme Inc overview"),
			{Title: "Unrelated gardening blog", URL: "https://example.com/garden", Content: "roses and tulips"},
		},
	}}
	col := newTestCollector(searcher, &mockCompleter{extractResponse: "[]"})

	raw := col.Collect(context.Background(), "Acme Inc", nil)
	for _, r := range raw.General {
		if strings.Contains(r.Title, "gardening") {
			t.Errorf("irrelevant result survived filtering: %q", r.Title)
		}
	}
}

func TestCollector_ExecutiveDossier(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]search.Result{
		"biography achievements": {{Title: "Jane Doe wins award", Content: "Jane Doe of Acme Inc honored"}},
		"scandal controversy":    {{Title: "Jane Doe lawsuit", Content: "Jane Doe sued over fraud"}},
	}}
	completer := &mockCompleter{
		classifyResponse: "CLASSIFICATION: NEGATIVE\nABOUT_PERSON: YES\nREASON: lawsuit coverage",
	}
	col := newTestCollector(searcher, completer)

	dossiers := col.collectExecutives(context.Background(), "Acme Inc", []string{"Jane Doe"})
	dossier, ok := dossiers["Jane Doe"]
	if !ok {
		t.Fatal("missing dossier for Jane Doe")
	}
	if dossier.Total != dossier.PositiveCount+dossier.NegativeCount+dossier.NeutralCount {
		t.Errorf("Total = %d, counts sum = %d", dossier.Total, dossier.PositiveCount+dossier.NegativeCount+dossier.NeutralCount)
	}
	if dossier.NegativeCount == 0 {
		t.Error("expected negative findings to be classified as such")
	}
}

func TestCollector_ClassifyFailure_AllNeutral(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]search.Result{
		"biography achievements": {{Title: "Jane Doe profile", Content: "Jane Doe biography"}},
	}}
	completer := &mockCompleter{err: errors.New("rate limited")}
	col := newTestCollector(searcher, completer)

	dossier := col.backgroundCheck(context.Background(), "Jane Doe", "Acme Inc")
	if dossier.PositiveCount != 0 || dossier.NegativeCount != 0 {
		t.Errorf("classify failure must not produce positive/negative: %+v", dossier)
	}
	if dossier.NeutralCount != dossier.Total {
		t.Errorf("NeutralCount = %d, want all %d findings neutral", dossier.NeutralCount, dossier.Total)
	}
}

func TestCollector_DiscoverExecutives(t *testing.T) {
	searcher := &mockSearcher{results: map[string][]search.Result{
		"leadership management": {{Title: "Acme Inc leadership", Content: "CEO Jane Doe leads Acme Inc"}},
	}}
	completer := &mockCompleter{extractResponse: "```json\n[\"Jane Doe (CEO)\"]\n```"}
	col := newTestCollector(searcher, completer)

	names := col.discoverExecutives(context.Background(), "Acme Inc")
	if len(names) != 1 || names[0] != "Jane Doe (CEO)" {
		t.Errorf("discoverExecutives = %v", names)
	}
}

func TestCollector_ExecutiveCap(t *testing.T) {
	searcher := &mockSearcher{}
	completer := &mockCompleter{classifyResponse: "CLASSIFICATION: NEUTRAL\nABOUT_PERSON: YES\nREASON: neutral"}
	col := newTestCollector(searcher, completer)

	names := []string{"A One", "B Two", "C Three", "D Four", "E Five", "F Six", "G Seven"}
	dossiers := col.collectExecutives(context.Background(), "Acme Inc", names)
	if len(dossiers) != maxExecutives {
		t.Errorf("investigated %d executives, want cap %d", len(dossiers), maxExecutives)
	}
}
