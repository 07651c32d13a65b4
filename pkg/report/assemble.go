package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iWorld-y/vetting_radar/pkg/model"
)

const analysisType = "Comprehensive Brand Safety & Risk Assessment"

// Citation 报告中的单条引用来源
type Citation struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Metrics 报告指标三元组
type Metrics struct {
	DataSourcesChecked int    `json:"data_sources_checked"`
	NegativeItemsFound int    `json:"negative_items_found"`
	CurrentStep        string `json:"current_step"`
}

// ExecutiveFindings 单个高管的调查计数
type ExecutiveFindings struct {
	Name     string `json:"name"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
	Total    int    `json:"total"`
}

// Report 对外输出的审查报告结构
// 纯投影：不做决策，不发起任何外部调用。
type Report struct {
	RunID             string              `json:"run_id"`
	CompanyName       string              `json:"company_name"`
	GeneratedAt       time.Time           `json:"generated_at"`
	AnalysisType      string              `json:"analysis_type"`
	ExecutiveSummary  string              `json:"executive_summary"`
	Metrics           Metrics             `json:"metrics"`
	RiskAnalysis      string              `json:"risk_analysis"`
	Questionnaire     string              `json:"questionnaire"`
	NewsCitations     []Citation          `json:"news_citations"`
	LegalCitations    []Citation          `json:"legal_citations"`
	SocialCounts      map[string]int      `json:"social_counts"`
	ExecutiveFindings []ExecutiveFindings `json:"executive_findings"`
}

// Assemble 把最终审查状态映射为对外报告
func Assemble(st *model.VettingState) *Report {
	rep := &Report{
		RunID:            uuid.NewString(),
		CompanyName:      st.CompanyName,
		GeneratedAt:      time.Now(),
		AnalysisType:     analysisType,
		ExecutiveSummary: st.Final.ExecutiveSummary,
		Metrics: Metrics{
			DataSourcesChecked: st.Final.DataSourcesChecked,
			NegativeItemsFound: st.Risks.NegativeItemsFound,
			CurrentStep:        string(st.CurrentStep),
		},
		RiskAnalysis:  st.Risks.Analysis,
		Questionnaire: st.PGQuestions.Answers,
		SocialCounts:  make(map[string]int),
	}

	raw := st.RawData
	if raw == nil {
		return rep
	}

	for i, r := range raw.News {
		if i >= 10 {
			break
		}
		rep.NewsCitations = append(rep.NewsCitations, Citation{Title: r.Title, URL: r.URL})
	}
	for i, r := range raw.LegalRegulatory {
		if i >= 8 {
			break
		}
		rep.LegalCitations = append(rep.LegalCitations, Citation{Title: r.Title, URL: r.URL})
	}
	for platform, results := range raw.SocialMedia {
		rep.SocialCounts[platform] = len(results)
	}

	for _, dossier := range raw.Executives {
		rep.ExecutiveFindings = append(rep.ExecutiveFindings, ExecutiveFindings{
			Name:     dossier.Name,
			Positive: dossier.PositiveCount,
			Negative: dossier.NegativeCount,
			Neutral:  dossier.NeutralCount,
			Total:    dossier.Total,
		})
	}
	// map 遍历无序，按姓名排序保证输出稳定
	sort.Slice(rep.ExecutiveFindings, func(i, j int) bool {
		return rep.ExecutiveFindings[i].Name < rep.ExecutiveFindings[j].Name
	})

	return rep
}
