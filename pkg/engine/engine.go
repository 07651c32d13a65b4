package engine

import (
	"context"
	"fmt"

	"github.com/iWorld-y/vetting_radar/pkg/collector"
	"github.com/iWorld-y/vetting_radar/pkg/config"
	"github.com/iWorld-y/vetting_radar/pkg/llm"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/model"
	"github.com/iWorld-y/vetting_radar/pkg/pipeline"
	"github.com/iWorld-y/vetting_radar/pkg/report"
	"github.com/iWorld-y/vetting_radar/pkg/search"
	"github.com/iWorld-y/vetting_radar/pkg/search/factory"
	"github.com/iWorld-y/vetting_radar/pkg/validate"
)

// Engine 核心审查引擎
// 把采集、门禁校验、分析流水线和报告组装串成一次完整运行。
// 引擎本身不持有跨运行状态，多个公司可并发审查。
type Engine struct {
	cfg       *config.Config
	searcher  search.Searcher
	completer llm.Completer
	validator *validate.Validator
	collector *collector.Collector
	pipeline  *pipeline.Pipeline
}

// NewEngine 创建引擎实例
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	completer, err := llm.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("补全客户端初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	return &Engine{
		cfg:       cfg,
		searcher:  searcher,
		completer: completer,
		validator: validate.NewValidator(cfg, completer),
		collector: collector.NewCollector(searcher, completer),
		pipeline:  pipeline.NewPipeline(completer),
	}, nil
}

// RunOptions 单次审查运行的选项
type RunOptions struct {
	CompanyName      string
	Executives       []string // 可选，指定要调查的高管；为空则自动发现
	ProgressCallback func(status string, progress int)
}

// Run 执行一次完整的公司审查
// 门禁阻断以 *validate.RejectionError 返回；通过门禁后总会产出报告。
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*model.VettingState, *report.Report, error) {
	progress := func(status string, pct int) {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(status, pct)
		}
	}

	logger.Log.Infof("开始审查公司: %s", opts.CompanyName)
	progress("starting", 0)

	// 搜索前先做廉价检查，避免无效输入浪费查询配额
	if verdict := e.validator.CheckCredentials(); !verdict.Proceed {
		return nil, nil, &validate.RejectionError{Verdict: verdict}
	}
	if verdict := e.validator.CheckName(opts.CompanyName); !verdict.Proceed {
		return nil, nil, &validate.RejectionError{Verdict: verdict}
	}

	progress("collecting intelligence", 10)
	raw := e.collector.Collect(ctx, opts.CompanyName, opts.Executives)

	progress("validating results", 40)
	if verdict := e.validator.CheckSufficiency(raw); !verdict.Proceed {
		return nil, nil, &validate.RejectionError{Verdict: verdict}
	}
	if verdict := e.validator.CrossVerify(ctx, opts.CompanyName, raw); !verdict.Proceed {
		return nil, nil, &validate.RejectionError{Verdict: verdict}
	}

	progress("running analysis", 50)
	st := e.pipeline.Run(ctx, opts.CompanyName, raw)

	progress("assembling report", 90)
	rep := report.Assemble(st)

	progress("completed", 100)
	logger.Log.Infof("公司 [%s] 审查完成 (step=%s)", opts.CompanyName, st.CurrentStep)
	return st, rep, nil
}
