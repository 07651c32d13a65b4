package model

import "github.com/iWorld-y/vetting_radar/pkg/search"

// Step 审查流水线所处的阶段
type Step string

const (
	StepInitialized       Step = "initialized"
	StepEntitiesExtracted Step = "entities_extracted"
	StepRisksAnalyzed     Step = "risks_analyzed"
	StepQuestionsAnswered Step = "questions_answered"
	StepReportGenerated   Step = "report_generated"
	StepInsufficientData  Step = "insufficient_data"
	StepError             Step = "error"
)

// RawIntelligence 一次审查运行采集到的全部原始情报
// 由 collector 构建完成后视为只读。
type RawIntelligence struct {
	CompanyName     string
	General         []search.Result
	News            []search.Result
	LegalRegulatory []search.Result
	RecentNews      []search.Result
	SocialMedia     map[string][]search.Result
	Executives      map[string]*ExecutiveDossier
	TotalResults    int
	HasData         bool
}

// NewRawIntelligence 创建空情报容器，map 字段已初始化
func NewRawIntelligence() *RawIntelligence {
	return &RawIntelligence{
		SocialMedia: make(map[string][]search.Result),
		Executives:  make(map[string]*ExecutiveDossier),
	}
}

// Recount 按当前各列表长度重算汇总字段
// 高管档案的发现数不计入 TotalResults，与原始口径保持一致。
func (r *RawIntelligence) Recount() {
	total := len(r.General) + len(r.News) + len(r.LegalRegulatory) + len(r.RecentNews)
	for _, results := range r.SocialMedia {
		total += len(results)
	}
	r.TotalResults = total
	r.HasData = total > 0
}

// ExecutiveDossier 单个高管的背景调查档案
type ExecutiveDossier struct {
	Name          string
	Positive      []search.Result
	Negative      []search.Result
	Neutral       []search.Result
	Total         int
	PositiveCount int
	NegativeCount int
	NeutralCount  int
}

// NewExecutiveDossier 由分类结果构建档案，汇总字段与列表长度强一致
func NewExecutiveDossier(name string, positive, negative, neutral []search.Result) *ExecutiveDossier {
	return &ExecutiveDossier{
		Name:          name,
		Positive:      positive,
		Negative:      negative,
		Neutral:       neutral,
		Total:         len(positive) + len(negative) + len(neutral),
		PositiveCount: len(positive),
		NegativeCount: len(negative),
		NeutralCount:  len(neutral),
	}
}

// EntityExtraction 实体提取阶段的输出
type EntityExtraction struct {
	RawAnalysis string
	DataPoints  int
	Processed   bool
}

// RiskAnalysis 风险分析阶段的输出
type RiskAnalysis struct {
	Analysis           string
	NegativeItemsFound int
	Processed          bool
}

// QuestionAnswers 合规问卷阶段的输出
type QuestionAnswers struct {
	Answers   string
	Processed bool
}

// FinalReport 报告生成阶段的输出
type FinalReport struct {
	ExecutiveSummary   string
	DataSourcesChecked int
	Processed          bool
}

// VettingState 贯穿流水线各阶段的审查状态
// 每个阶段只写入自己独占的字段并推进 CurrentStep，之前的字段不再修改。
type VettingState struct {
	CompanyName string
	RawData     *RawIntelligence
	Entities    EntityExtraction
	Risks       RiskAnalysis
	PGQuestions QuestionAnswers
	Final       FinalReport
	CurrentStep Step
}

// NewVettingState 创建初始状态
func NewVettingState(companyName string, raw *RawIntelligence) *VettingState {
	return &VettingState{
		CompanyName: companyName,
		RawData:     raw,
		CurrentStep: StepInitialized,
	}
}
