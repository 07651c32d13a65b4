package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/vetting_radar/pkg/llm"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/model"
	"github.com/iWorld-y/vetting_radar/pkg/relevance"
	"github.com/iWorld-y/vetting_radar/pkg/search"
)

// Collector 负责为一家公司聚合全部原始情报
// 不持有跨运行状态，可被多个审查运行并发使用。
type Collector struct {
	searcher  search.Searcher
	completer llm.Completer

	// fetchContent 可替换，便于测试时避免真实抓取
	fetchContent func(url string) (string, error)
}

// NewCollector 创建采集器
func NewCollector(searcher search.Searcher, completer llm.Completer) *Collector {
	return &Collector{
		searcher:     searcher,
		completer:    completer,
		fetchContent: fetchAndCleanContent,
	}
}

// Collect 执行固定的查询计划并返回情报包
// 单条查询失败只影响对应列表（记日志、置空），绝不中断整体采集。
func (c *Collector) Collect(ctx context.Context, companyName string, execNames []string) *model.RawIntelligence {
	logger.Log.Infof("开始为公司 [%s] 采集情报", companyName)

	raw := &model.RawIntelligence{
		CompanyName: companyName,
		SocialMedia: make(map[string][]search.Result),
		Executives:  make(map[string]*model.ExecutiveDossier),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() {
		results := c.query(ctx, &search.Request{
			Query:      fmt.Sprintf("%s company overview reputation", companyName),
			Depth:      "advanced",
			MaxResults: 10,
		})
		mu.Lock()
		raw.General = results
		mu.Unlock()
	})

	run(func() {
		results := c.query(ctx, &search.Request{
			Query:      fmt.Sprintf("%s news scandal controversy lawsuit", companyName),
			Depth:      "advanced",
			Topic:      "news",
			MaxResults: 10,
		})
		mu.Lock()
		raw.News = results
		mu.Unlock()
	})

	run(func() {
		results := c.query(ctx, &search.Request{
			Query:      fmt.Sprintf("%s legal violations regulatory enforcement SEC violations", companyName),
			Depth:      "advanced",
			MaxResults: 8,
		})
		mu.Lock()
		raw.LegalRegulatory = results
		mu.Unlock()
	})

	run(func() {
		results := c.query(ctx, &search.Request{
			Query:      fmt.Sprintf("%s latest news updates", companyName),
			Depth:      "advanced",
			Topic:      "news",
			MaxResults: 15,
			Days:       90,
		})
		mu.Lock()
		raw.RecentNews = results
		mu.Unlock()
	})

	// 社交媒体：一条泛查询加三条平台定向查询
	socialPlan := []struct {
		platform string
		req      *search.Request
	}{
		{"general", &search.Request{
			Query:      fmt.Sprintf("%s social media reputation", companyName),
			Depth:      "basic",
			MaxResults: 5,
		}},
		{"twitter", &search.Request{
			Query:      fmt.Sprintf("%s site:twitter.com OR site:x.com", companyName),
			MaxResults: 5,
		}},
		{"linkedin", &search.Request{
			Query:      fmt.Sprintf("%s site:linkedin.com company", companyName),
			MaxResults: 3,
		}},
		{"reddit", &search.Request{
			Query:      fmt.Sprintf("%s site:reddit.com controversy opinion", companyName),
			MaxResults: 5,
		}},
	}
	for _, p := range socialPlan {
		platform, req := p.platform, p.req
		run(func() {
			results := c.query(ctx, req)
			mu.Lock()
			raw.SocialMedia[platform] = results
			mu.Unlock()
		})
	}

	// 高管背调：发现环节依赖 LLM 提取，整体作为一个并发任务
	run(func() {
		dossiers := c.collectExecutives(ctx, companyName, execNames)
		mu.Lock()
		raw.Executives = dossiers
		mu.Unlock()
	})

	wg.Wait()

	// 所有列表逐一做相关性过滤后再汇总计数
	raw.General = relevance.Filter(raw.General, companyName)
	raw.News = relevance.Filter(raw.News, companyName)
	raw.LegalRegulatory = relevance.Filter(raw.LegalRegulatory, companyName)
	raw.RecentNews = relevance.Filter(raw.RecentNews, companyName)
	for platform, results := range raw.SocialMedia {
		raw.SocialMedia[platform] = relevance.Filter(results, companyName)
	}

	c.enrichGeneral(raw.General)

	raw.Recount()
	if raw.HasData {
		logger.Log.Infof("公司 [%s] 共采集到 %d 条相关结果", companyName, raw.TotalResults)
	} else {
		logger.Log.Warnf("公司 [%s] 未找到任何相关结果，可能不存在或名称有误", companyName)
	}

	return raw
}

// query 执行单条查询，失败时降级为零结果
func (c *Collector) query(ctx context.Context, req *search.Request) []search.Result {
	resp, err := c.searcher.Search(ctx, req)
	if err != nil {
		logger.Log.Errorf("查询失败 [%s]: %v", req.Query, err)
		return nil
	}
	return resp.Results
}

// enrichGeneral 为摘要过短的综合结果抓取可读正文
func (c *Collector) enrichGeneral(results []search.Result) {
	for i := range results {
		if len(results[i].Content) >= 500 {
			continue
		}
		fetched, err := c.fetchContent(results[i].URL)
		if err != nil || len(fetched) <= len(results[i].Content) {
			continue
		}
		if len(fetched) > 5000 {
			fetched = fetched[:5000]
		}
		results[i].Content = fetched
	}
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
