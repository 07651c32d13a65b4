package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iWorld-y/vetting_radar/pkg/collector"
	"github.com/iWorld-y/vetting_radar/pkg/config"
	"github.com/iWorld-y/vetting_radar/pkg/model"
	"github.com/iWorld-y/vetting_radar/pkg/pipeline"
	"github.com/iWorld-y/vetting_radar/pkg/search"
	"github.com/iWorld-y/vetting_radar/pkg/validate"
)

// scriptedSearcher 对任意查询返回同一批结果
type scriptedSearcher struct {
	results []search.Result
}

func (s *scriptedSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	return &search.Response{Results: s.results}, nil
}

// scriptedCompleter 按 system prompt 区分应答
type scriptedCompleter struct {
	verifyResponse string
}

func (c *scriptedCompleter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	switch {
	case strings.Contains(system, "verification"):
		return c.verifyResponse, nil
	case strings.Contains(system, "extract executive"):
		return "[]", nil
	default:
		return "analysis text", nil
	}
}

func testEngine(searcher search.Searcher, completer *scriptedCompleter) *Engine {
	cfg := &config.Config{}
	cfg.Search.Provider = "tavily"
	cfg.Search.Tavily.APIKey = "tvly-test"
	cfg.LLM.APIKey = "sk-test"

	return &Engine{
		cfg:       cfg,
		searcher:  searcher,
		completer: completer,
		validator: validate.NewValidator(cfg, completer),
		collector: collector.NewCollector(searcher, completer),
		pipeline:  pipeline.NewPipeline(completer),
	}
}

func TestEngine_Run_RejectsPersonalName(t *testing.T) {
	eng := testEngine(&scriptedSearcher{}, &scriptedCompleter{})

	_, _, err := eng.Run(context.Background(), RunOptions{CompanyName: "John Smith"})
	var rejection *validate.RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Verdict.Code != validate.CodePossiblePersonalName {
		t.Errorf("Code = %q, want %q", rejection.Verdict.Code, validate.CodePossiblePersonalName)
	}
}

func TestEngine_Run_RejectsNoResults(t *testing.T) {
	eng := testEngine(&scriptedSearcher{}, &scriptedCompleter{})

	_, _, err := eng.Run(context.Background(), RunOptions{CompanyName: "Acme Inc"})
	var rejection *validate.RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.Verdict.Code != validate.CodeNoResults {
		t.Errorf("Code = %q, want %q", rejection.Verdict.Code, validate.CodeNoResults)
	}
}

func TestEngine_Run_FullRun(t *testing.T) {
	searcher := &scriptedSearcher{results: []search.Result{
		{Title: "Acme Inc overview", URL: "https://example.com/1", Content: strings.Repeat("Acme Inc corporate profile. ", 20)},
		{Title: "Acme Inc earnings", URL: "https://example.com/2", Content: strings.Repeat("Acme Inc quarterly earnings. ", 20)},
	}}
	completer := &scriptedCompleter{
		verifyResponse: "TYPE: COMPANY\nEXACT_NAME: Acme Inc\nMATCH: YES\nACTUAL_SUBJECT: Acme Inc\nCONFIDENCE: HIGH",
	}
	eng := testEngine(searcher, completer)

	var lastStatus string
	st, rep, err := eng.Run(context.Background(), RunOptions{
		CompanyName: "Acme Inc",
		ProgressCallback: func(status string, progress int) {
			lastStatus = status
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.CurrentStep != model.StepReportGenerated {
		t.Errorf("CurrentStep = %s, want %s", st.CurrentStep, model.StepReportGenerated)
	}
	if rep == nil || rep.CompanyName != "Acme Inc" || rep.RunID == "" {
		t.Errorf("report not assembled: %+v", rep)
	}
	if lastStatus != "completed" {
		t.Errorf("last progress status = %q, want %q", lastStatus, "completed")
	}
}
