package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iWorld-y/vetting_radar/pkg/llm"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/model"
	"github.com/iWorld-y/vetting_radar/pkg/relevance"
	"github.com/iWorld-y/vetting_radar/pkg/search"
)

const (
	maxExecutives       = 5
	maxClassifyFindings = 10
)

const extractionSystemPrompt = "You extract executive names from text. Return only valid JSON array."

const classifySystemPrompt = "You classify executive information accurately."

// collectExecutives 执行高管背景调查
// 未显式提供名单时，先搜索领导层并用 LLM 提取姓名。
func (c *Collector) collectExecutives(ctx context.Context, companyName string, execNames []string) map[string]*model.ExecutiveDossier {
	dossiers := make(map[string]*model.ExecutiveDossier)

	if len(execNames) == 0 {
		execNames = c.discoverExecutives(ctx, companyName)
	}
	if len(execNames) == 0 {
		return dossiers
	}
	if len(execNames) > maxExecutives {
		execNames = execNames[:maxExecutives]
	}

	logger.Log.Infof("开始调查 %d 位高管 [%s]", len(execNames), companyName)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, name := range execNames {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			dossier := c.backgroundCheck(ctx, name, companyName)
			mu.Lock()
			dossiers[name] = dossier
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	return dossiers
}

// discoverExecutives 搜索领导层信息并用 LLM 提取高管姓名
// 任何环节失败都返回空名单，高管调查是尽力而为的补充情报。
func (c *Collector) discoverExecutives(ctx context.Context, companyName string) []string {
	results := c.query(ctx, &search.Request{
		Query:      fmt.Sprintf("%s CEO CFO COO executives leadership management team board", companyName),
		Depth:      "advanced",
		MaxResults: 10,
	})
	results = relevance.Filter(results, companyName)
	if len(results) == 0 {
		return nil
	}

	var sb strings.Builder
	for i, r := range results {
		if i >= 5 {
			break
		}
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Title))
		sb.WriteString(fmt.Sprintf("Content: %s\n\n", truncate(r.Content, 300)))
	}

	prompt := fmt.Sprintf(`Extract the names of executives (CEO, CFO, COO, President, etc.) from this text about %s.

Text:
%s

Return ONLY a JSON array of executive names with their titles, like this:
["John Doe (CEO)", "Jane Smith (CFO)", "Bob Johnson (COO)"]

If no executives found, return: []
Be strict: only return names that are clearly identified as executives of %s.`, companyName, sb.String(), companyName)

	resp, err := c.completer.Complete(ctx, extractionSystemPrompt, prompt, 0.1, 200)
	if err != nil {
		logger.Log.Warnf("高管姓名提取失败 [%s]: %v", companyName, err)
		return nil
	}

	names := llm.ParseStringArray(resp)
	if len(names) > 0 {
		logger.Log.Infof("识别到高管: %s", strings.Join(names, ", "))
	}
	return names
}

// backgroundCheck 对单个高管执行三类定向查询并分类调查结果
func (c *Collector) backgroundCheck(ctx context.Context, execName, companyName string) *model.ExecutiveDossier {
	logger.Log.Infof("正在调查高管: %s", execName)

	queries := []*search.Request{
		{
			Query:      fmt.Sprintf("%q %s CEO executive biography achievements", execName, companyName),
			Depth:      "basic",
			MaxResults: 5,
		},
		{
			Query:      fmt.Sprintf("%q %s scandal controversy misconduct allegations", execName, companyName),
			Depth:      "advanced",
			MaxResults: 8,
		},
		{
			Query:      fmt.Sprintf("%q lawsuit arrest charges indictment fraud criminal investigation SEC", execName),
			Depth:      "advanced",
			MaxResults: 8,
		},
	}

	buckets := make([][]search.Result, len(queries))
	var wg sync.WaitGroup
	for i, req := range queries {
		wg.Add(1)
		go func(i int, req *search.Request) {
			defer wg.Done()
			buckets[i] = c.query(ctx, req)
		}(i, req)
	}
	wg.Wait()

	var findings []search.Result
	for _, b := range buckets {
		findings = append(findings, b...)
	}

	// 针对高管本人做相关性过滤
	findings = relevance.Filter(findings, execName)

	positive, negative, neutral := c.classifyFindings(ctx, execName, findings)
	dossier := model.NewExecutiveDossier(execName, positive, negative, neutral)

	if dossier.NegativeCount > 0 {
		logger.Log.Warnf("高管 [%s] 存在 %d 条负面记录", execName, dossier.NegativeCount)
	}
	return dossier
}

// classifyFindings 用 LLM 逐条分类调查结果
// 与本人无关的条目直接丢弃；分类调用失败时保守地全部归为中性。
func (c *Collector) classifyFindings(ctx context.Context, execName string, findings []search.Result) (positive, negative, neutral []search.Result) {
	for i, finding := range findings {
		if i >= maxClassifyFindings {
			break
		}
		if finding.Title == "" && finding.Content == "" {
			continue
		}

		prompt := fmt.Sprintf(`Analyze this information about %s:

Title: %s
Content: %s

Classify as:
- POSITIVE: Awards, achievements, positive leadership, good reviews, charity work
- NEGATIVE: Scandals, crimes, lawsuits, misconduct, fraud, violations, controversies
- NEUTRAL: General information, job announcements, neutral facts

Also verify: Is this actually about %s (the person)?

Respond ONLY with:
CLASSIFICATION: [POSITIVE/NEGATIVE/NEUTRAL]
ABOUT_PERSON: [YES/NO]
REASON: [one sentence why]`, execName, finding.Title, truncate(finding.Content, 300), execName)

		resp, err := c.completer.Complete(ctx, classifySystemPrompt, prompt, 0.1, 100)
		if err != nil {
			logger.Log.Warnf("高管信息分类失败 [%s]: %v，全部保守归为中性", execName, err)
			return nil, nil, findings
		}

		// 与本人无关的结果直接跳过
		if !strings.Contains(resp, "ABOUT_PERSON: YES") {
			continue
		}

		switch {
		case strings.Contains(resp, "CLASSIFICATION: POSITIVE"):
			positive = append(positive, finding)
		case strings.Contains(resp, "CLASSIFICATION: NEGATIVE"):
			negative = append(negative, finding)
		default:
			neutral = append(neutral, finding)
		}
	}
	return positive, negative, neutral
}

// truncate 按字节截断内容，防止 prompt 过长
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
