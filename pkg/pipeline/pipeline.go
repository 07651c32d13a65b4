package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/iWorld-y/vetting_radar/pkg/llm"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/model"
)

// minResultsForAnalysis 进入完整分析所需的最少相关结果数
// 与门禁共享同一阈值；流水线可能被独立调用，因此这里再查一次。
const minResultsForAnalysis = 3

// Pipeline 审查分析状态机
// 四个阶段严格串行：实体提取 → 风险分析 → 问卷回答 → 报告生成。
// 单阶段的补全调用失败只降级该阶段，绝不中断整条流水线。
type Pipeline struct {
	completer llm.Completer
}

// NewPipeline 创建流水线
func NewPipeline(completer llm.Completer) *Pipeline {
	return &Pipeline{completer: completer}
}

// Run 对给定情报包执行完整分析，总是返回一个非 nil 的状态
func (p *Pipeline) Run(ctx context.Context, companyName string, raw *model.RawIntelligence) *model.VettingState {
	if p.completer == nil {
		return p.errorState(companyName, raw, fmt.Errorf("completion provider not configured"))
	}
	if raw == nil {
		raw = &model.RawIntelligence{CompanyName: companyName}
	}

	// 数据不足时直接短路，不发起任何补全调用
	if raw.TotalResults < minResultsForAnalysis {
		logger.Log.Warnf("公司 [%s] 仅有 %d 条数据，跳过完整分析", companyName, raw.TotalResults)
		return p.insufficientDataState(companyName, raw)
	}

	logger.Log.Infof("开始对公司 [%s] 进行审查分析", companyName)
	st := model.NewVettingState(companyName, raw)

	p.extractEntities(ctx, st)
	p.analyzeRisks(ctx, st)
	p.answerQuestions(ctx, st)
	p.generateReport(ctx, st)

	logger.Log.Infof("公司 [%s] 审查分析完成 (step=%s)", companyName, st.CurrentStep)
	return st
}

// extractEntities 阶段一：从原始数据中提取关键实体
func (p *Pipeline) extractEntities(ctx context.Context, st *model.VettingState) {
	raw := st.RawData

	socialCount := 0
	for _, results := range raw.SocialMedia {
		socialCount += len(results)
	}
	dataSummary := fmt.Sprintf(`Company: %s

General Search Results: %d results
News Articles: %d articles
Legal/Regulatory Info: %d items
Recent News: %d recent articles
Social Media: %d mentions`,
		st.CompanyName, len(raw.General), len(raw.News), len(raw.LegalRegulatory), len(raw.RecentNews), socialCount)

	var samples []string
	for i, r := range raw.General {
		if i >= 5 {
			break
		}
		samples = append(samples, fmt.Sprintf("Title: %s\nContent: %s", r.Title, r.Content))
	}
	for i, r := range raw.News {
		if i >= 5 {
			break
		}
		samples = append(samples, fmt.Sprintf("News: %s\nContent: %s", r.Title, r.Content))
	}
	if len(samples) > 10 {
		samples = samples[:10]
	}
	contentText := strings.Join(samples, "\n\n---\n\n")

	prompt := fmt.Sprintf(`Analyze the following information about %s and extract:

1. Key executives and their roles
2. Any incidents, scandals, or controversies mentioned
3. Legal or regulatory issues
4. Timeframes for any negative events
5. Overall reputation indicators

Data Summary:
%s

Sample Content:
%s

Provide a structured JSON response with these categories.`, st.CompanyName, dataSummary, contentText)

	resp, err := p.completer.Complete(ctx, extractionSystem, prompt, 0.1, 0)
	if err != nil {
		logger.Log.Errorf("实体提取失败 [%s]: %v", st.CompanyName, err)
		st.Entities = model.EntityExtraction{
			RawAnalysis: fmt.Sprintf("Error: entity extraction failed: %v", err),
			DataPoints:  len(samples),
			Processed:   false,
		}
	} else {
		st.Entities = model.EntityExtraction{
			RawAnalysis: resp,
			DataPoints:  len(samples),
			Processed:   true,
		}
	}
	st.CurrentStep = model.StepEntitiesExtracted
}

// analyzeRisks 阶段二：汇总负面线索并做风险评估
func (p *Pipeline) analyzeRisks(ctx context.Context, st *model.VettingState) {
	raw := st.RawData

	var negative []string
	for _, item := range raw.News {
		content := strings.ToLower(item.Content)
		for _, keyword := range riskKeywords {
			if strings.Contains(content, keyword) {
				negative = append(negative, fmt.Sprintf("NEWS: %s - %s", item.Title, excerpt(item.Content, 200)))
				break
			}
		}
	}
	for _, item := range raw.LegalRegulatory {
		negative = append(negative, fmt.Sprintf("LEGAL: %s - %s", item.Title, excerpt(item.Content, 200)))
	}

	digest := negative
	if len(digest) > 15 {
		digest = digest[:15]
	}
	negativeText := strings.Join(digest, "\n\n")
	if negativeText == "" {
		negativeText = "No significant negative indicators found"
	}

	prompt := fmt.Sprintf(`You are a corporate risk assessment expert for brand safety compliance.

Analyze the following information about %s and assess:

1. SEVERITY: How serious are any negative findings? (Critical/High/Medium/Low/None)
2. RECENCY: Are issues current (last 12 months) or historical?
3. CREDIBILITY: Are sources credible and verified?
4. PATTERN: Is there a pattern of misconduct or isolated incidents?
5. IMPACT: Could this cause a PR "black eye" for the brand?

Negative Indicators Found:
%s

Provide a detailed risk assessment with specific evidence and reasoning.`, st.CompanyName, negativeText)

	resp, err := p.completer.Complete(ctx, riskSystem, prompt, 0.1, 0)
	if err != nil {
		logger.Log.Errorf("风险分析失败 [%s]: %v", st.CompanyName, err)
		st.Risks = model.RiskAnalysis{
			Analysis:           fmt.Sprintf("Error: risk analysis failed: %v", err),
			NegativeItemsFound: len(negative),
			Processed:          false,
		}
	} else {
		st.Risks = model.RiskAnalysis{
			Analysis:           resp,
			NegativeItemsFound: len(negative),
			Processed:          true,
		}
	}
	st.CurrentStep = model.StepRisksAnalyzed
}

// answerQuestions 阶段三：基于风险分析回答固定问卷
func (p *Pipeline) answerQuestions(ctx context.Context, st *model.VettingState) {
	riskContext := st.Risks.Analysis
	if !st.Risks.Processed || riskContext == "" {
		riskContext = "No analysis available"
	}

	var questions strings.Builder
	for i, q := range complianceQuestions {
		fmt.Fprintf(&questions, "%d. %s\n", i+1, q)
	}

	prompt := fmt.Sprintf(`Based on your risk analysis of %s, answer these brand safety questions.

For EACH question, provide:
- Answer: YES / NO / MAYBE
- Confidence: High / Medium / Low
- Reasoning: 2-3 sentence explanation with specific evidence

Risk Analysis Summary:
%s

Questions:
%s
Provide structured answers in JSON format.`, st.CompanyName, riskContext, questions.String())

	resp, err := p.completer.Complete(ctx, questionsSystem, prompt, 0.1, 0)
	if err != nil {
		logger.Log.Errorf("问卷回答失败 [%s]: %v", st.CompanyName, err)
		st.PGQuestions = model.QuestionAnswers{
			Answers:   fmt.Sprintf("Error: questionnaire answering failed: %v", err),
			Processed: false,
		}
	} else {
		st.PGQuestions = model.QuestionAnswers{Answers: resp, Processed: true}
	}
	st.CurrentStep = model.StepQuestionsAnswered
}

// generateReport 阶段四：生成执行摘要
func (p *Pipeline) generateReport(ctx context.Context, st *model.VettingState) {
	riskExcerpt := "N/A"
	if st.Risks.Analysis != "" {
		riskExcerpt = excerpt(st.Risks.Analysis, 500)
	}
	answersExcerpt := "N/A"
	if st.PGQuestions.Answers != "" {
		answersExcerpt = excerpt(st.PGQuestions.Answers, 500)
	}

	prompt := fmt.Sprintf(`Create a comprehensive executive summary for %s vetting report.

Include:
1. Overall Recommendation (APPROVED / REJECTED / REQUIRES REVIEW)
2. Key Findings (3-5 bullet points)
3. Risk Level (Low / Medium / High / Critical)
4. Action Items (if any)

Based on:
- Risk Analysis: %s
- Compliance Questions: %s

Be concise, professional, and actionable.`, st.CompanyName, riskExcerpt, answersExcerpt)

	raw := st.RawData
	sourcesChecked := len(raw.General) + len(raw.News) + len(raw.RecentNews)

	resp, err := p.completer.Complete(ctx, reportSystem, prompt, 0.1, 0)
	if err != nil {
		logger.Log.Errorf("报告生成失败 [%s]: %v", st.CompanyName, err)
		st.Final = model.FinalReport{
			ExecutiveSummary:   fmt.Sprintf("Error: report generation failed: %v", err),
			DataSourcesChecked: sourcesChecked,
			Processed:          false,
		}
	} else {
		st.Final = model.FinalReport{
			ExecutiveSummary:   resp,
			DataSourcesChecked: sourcesChecked,
			Processed:          true,
		}
	}
	st.CurrentStep = model.StepReportGenerated
}

// insufficientDataState 数据不足时的预置终态，建议人工复核
func (p *Pipeline) insufficientDataState(companyName string, raw *model.RawIntelligence) *model.VettingState {
	st := model.NewVettingState(companyName, raw)
	total := raw.TotalResults

	st.Entities = model.EntityExtraction{
		RawAnalysis: "Insufficient data for entity extraction",
		Processed:   false,
	}
	st.Risks = model.RiskAnalysis{
		Analysis: fmt.Sprintf("**INSUFFICIENT DATA WARNING**: Only %d data points found for '%s'. "+
			"This company may not exist, may be too small/private, or the name may be incorrect. "+
			"**Recommendation**: REQUIRES MANUAL REVIEW - Verify company existence and spelling before proceeding.",
			total, companyName),
		NegativeItemsFound: 0,
		Processed:          true,
	}
	st.PGQuestions = model.QuestionAnswers{
		Answers:   "**INSUFFICIENT DATA**: Unable to answer the compliance questions due to lack of information. Manual vetting required.",
		Processed: false,
	}
	st.Final = model.FinalReport{
		ExecutiveSummary: fmt.Sprintf(`## INSUFFICIENT DATA FOR: %s

**Status**: REQUIRES MANUAL REVIEW

**Reason**: Only %d data points found during search.

**Possible Causes**:
- Company name misspelled or incorrect
- Company does not exist or is not publicly known
- Company is too small/private for public data
- Company operates under a different legal name

**Recommended Action**: Verify company information manually before proceeding with vetting.`, companyName, total),
		DataSourcesChecked: total,
		Processed:          true,
	}
	st.CurrentStep = model.StepInsufficientData
	return st
}

// errorState 流水线编排本身失败时的终态
func (p *Pipeline) errorState(companyName string, raw *model.RawIntelligence, err error) *model.VettingState {
	st := model.NewVettingState(companyName, raw)
	st.Final = model.FinalReport{
		ExecutiveSummary: fmt.Sprintf("## ERROR DURING ANALYSIS\n\n**Error**: %v\n\n**Recommendation**: Check API credentials and try again.", err),
		Processed:        false,
	}
	st.CurrentStep = model.StepError
	return st
}

// excerpt 按字节截断文本，控制 prompt 上下文长度
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
