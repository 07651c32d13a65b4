package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/vetting_radar/internal/conf"
	"github.com/iWorld-y/vetting_radar/internal/server"
	"github.com/iWorld-y/vetting_radar/internal/service"
	"github.com/iWorld-y/vetting_radar/pkg/engine"
	"github.com/iWorld-y/vetting_radar/pkg/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "vetting_radar"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(hs *http.Server, kratosLogger log.Logger) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Logger(kratosLogger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	// 初始化日志记录器，包含时间戳、调用者信息、服务ID等上下文
	kratosLogger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	// 初始化配置加载器
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	// 扫描配置到 Bootstrap 结构体
	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	engineCfg := bc.Vetting.ToEngineConfig()
	if err := logger.InitLogger(engineCfg.Log.Level, engineCfg.Log.File); err != nil {
		panic(err)
	}

	eng, err := engine.NewEngine(context.Background(), engineCfg)
	if err != nil {
		panic(err)
	}

	svc := service.NewVettingService(eng, kratosLogger)
	hs := server.NewHTTPServer(bc.Server, svc, kratosLogger)

	app := newApp(hs, kratosLogger)
	if err := app.Run(); err != nil {
		panic(err)
	}
}
