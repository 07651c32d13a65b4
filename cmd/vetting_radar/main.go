package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/iWorld-y/vetting_radar/pkg/config"
	"github.com/iWorld-y/vetting_radar/pkg/engine"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
	"github.com/iWorld-y/vetting_radar/pkg/report"
	"github.com/iWorld-y/vetting_radar/pkg/validate"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "配置文件路径")
		company    = flag.String("company", "", "待审查的公司名称 (必填)")
		execs      = flag.String("execs", "", "高管名单, 逗号分隔 (可选, 留空则自动发现)")
		output     = flag.String("output", "", "报告输出目录 (可选, 覆盖配置文件)")
	)
	flag.Parse()

	if *company == "" {
		flag.Usage()
		os.Exit(2)
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if *output != "" {
		cfg.Report.OutputDir = *output
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动公司审查代理...")

	ctx := context.Background()

	// 3. 初始化引擎
	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	var execNames []string
	for _, name := range strings.Split(*execs, ",") {
		if name = strings.TrimSpace(name); name != "" {
			execNames = append(execNames, name)
		}
	}

	// 4. 执行审查
	_, rep, err := eng.Run(ctx, engine.RunOptions{
		CompanyName: *company,
		Executives:  execNames,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Infof("[%3d%%] %s", progress, status)
		},
	})
	if err != nil {
		var rejection *validate.RejectionError
		if errors.As(err, &rejection) {
			fmt.Fprintf(os.Stderr, "审查被拒绝 [%s]: %s\n", rejection.Verdict.Code, rejection.Verdict.Message)
			os.Exit(1)
		}
		logger.Log.Fatalf("审查执行失败: %v", err)
	}

	// 5. 生成 HTML 报告
	path, err := report.WriteFile(rep, cfg.Report.OutputDir)
	if err != nil {
		logger.Log.Fatalf("写入报告失败: %v", err)
	}
	logger.Log.Infof("报告已生成: %s", path)
	fmt.Println(path)
}
