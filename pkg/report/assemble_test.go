package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/iWorld-y/vetting_radar/pkg/model"
	"github.com/iWorld-y/vetting_radar/pkg/search"
)

func sampleState() *model.VettingState {
	raw := model.NewRawIntelligence()
	raw.CompanyName = "Acme Inc"
	for i := 0; i < 12; i++ {
		raw.News = append(raw.News, search.Result{
			Title: fmt.Sprintf("News %d", i),
			URL:   fmt.Sprintf("https://example.com/news/%d", i),
		})
	}
	for i := 0; i < 10; i++ {
		raw.LegalRegulatory = append(raw.LegalRegulatory, search.Result{
			Title: fmt.Sprintf("Legal %d", i),
			URL:   fmt.Sprintf("https://example.com/legal/%d", i),
		})
	}
	raw.SocialMedia["twitter"] = []search.Result{{Title: "tweet"}}
	raw.SocialMedia["reddit"] = []search.Result{{Title: "thread"}, {Title: "thread 2"}}
	raw.Executives["Bob Lee"] = model.NewExecutiveDossier("Bob Lee", nil, nil, []search.Result{{Title: "bio"}})
	raw.Executives["Ann Wu"] = model.NewExecutiveDossier("Ann Wu",
		[]search.Result{{Title: "award"}}, []search.Result{{Title: "lawsuit"}}, nil)
	raw.Recount()

	st := model.NewVettingState("Acme Inc", raw)
	st.Risks = model.RiskAnalysis{Analysis: "Low risk overall", NegativeItemsFound: 3, Processed: true}
	st.PGQuestions = model.QuestionAnswers{Answers: "All YES", Processed: true}
	st.Final = model.FinalReport{ExecutiveSummary: "APPROVED", DataSourcesChecked: 22, Processed: true}
	st.CurrentStep = model.StepReportGenerated
	return st
}

func TestAssemble(t *testing.T) {
	rep := Assemble(sampleState())

	if rep.RunID == "" {
		t.Error("RunID should be set")
	}
	if rep.CompanyName != "Acme Inc" {
		t.Errorf("CompanyName = %q", rep.CompanyName)
	}
	if rep.ExecutiveSummary != "APPROVED" || rep.RiskAnalysis != "Low risk overall" || rep.Questionnaire != "All YES" {
		t.Errorf("narrative fields not projected: %+v", rep)
	}
	if rep.Metrics.DataSourcesChecked != 22 || rep.Metrics.NegativeItemsFound != 3 {
		t.Errorf("Metrics = %+v", rep.Metrics)
	}
	if rep.Metrics.CurrentStep != string(model.StepReportGenerated) {
		t.Errorf("CurrentStep = %q", rep.Metrics.CurrentStep)
	}

	if len(rep.NewsCitations) != 10 {
		t.Errorf("news citations = %d, want cap 10", len(rep.NewsCitations))
	}
	if len(rep.LegalCitations) != 8 {
		t.Errorf("legal citations = %d, want cap 8", len(rep.LegalCitations))
	}
	if rep.SocialCounts["reddit"] != 2 || rep.SocialCounts["twitter"] != 1 {
		t.Errorf("SocialCounts = %v", rep.SocialCounts)
	}

	if len(rep.ExecutiveFindings) != 2 {
		t.Fatalf("ExecutiveFindings = %d, want 2", len(rep.ExecutiveFindings))
	}
	// 按姓名排序
	if rep.ExecutiveFindings[0].Name != "Ann Wu" || rep.ExecutiveFindings[1].Name != "Bob Lee" {
		t.Errorf("findings not sorted by name: %+v", rep.ExecutiveFindings)
	}
	if rep.ExecutiveFindings[0].Negative != 1 || rep.ExecutiveFindings[0].Total != 2 {
		t.Errorf("Ann Wu findings = %+v", rep.ExecutiveFindings[0])
	}
}

func TestAssemble_NilRawData(t *testing.T) {
	st := model.NewVettingState("Acme Inc", nil)
	st.CurrentStep = model.StepError

	rep := Assemble(st)
	if rep == nil {
		t.Fatal("Assemble returned nil")
	}
	if len(rep.NewsCitations) != 0 || len(rep.SocialCounts) != 0 {
		t.Errorf("nil raw data should yield empty citations: %+v", rep)
	}
}

func TestRender(t *testing.T) {
	rep := Assemble(sampleState())

	var buf bytes.Buffer
	if err := Render(rep, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Acme Inc", rep.RunID, "CONFIDENTIAL", "Executive Summary"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	rep := Assemble(sampleState())
	dir := t.TempDir()

	path, err := WriteFile(rep, dir)
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("report written outside output dir: %s", path)
	}
	if !strings.Contains(path, "Acme_Inc_") || !strings.HasSuffix(path, ".html") {
		t.Errorf("unexpected report file name: %s", path)
	}
}
