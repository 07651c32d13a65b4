package conf

import "github.com/iWorld-y/vetting_radar/pkg/config"

type Bootstrap struct {
	Server  *Server
	Vetting *Vetting
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Vetting struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Report      *Report      `json:"report"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Search struct {
	Provider string   `json:"provider"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type Report struct {
	OutputDir string `json:"output_dir"`
}

// ToEngineConfig 把服务配置映射为引擎配置
func (v *Vetting) ToEngineConfig() *config.Config {
	cfg := &config.Config{}
	if v == nil {
		return cfg
	}
	if v.Llm != nil {
		cfg.LLM.BaseURL = v.Llm.BaseUrl
		cfg.LLM.APIKey = v.Llm.ApiKey
		cfg.LLM.Model = v.Llm.Model
	}
	if v.Search != nil {
		cfg.Search.Provider = v.Search.Provider
		if v.Search.Tavily != nil {
			cfg.Search.Tavily.APIKey = v.Search.Tavily.ApiKey
		}
		if v.Search.Searxng != nil {
			cfg.Search.SearXNG.BaseURL = v.Search.Searxng.BaseUrl
			cfg.Search.SearXNG.Timeout = int(v.Search.Searxng.Timeout)
		}
	}
	if v.Log != nil {
		cfg.Log.Level = v.Log.Level
		cfg.Log.File = v.Log.File
	}
	if v.Concurrency != nil {
		cfg.Concurrency.QPS = int(v.Concurrency.Qps)
		cfg.Concurrency.RPM = int(v.Concurrency.Rpm)
	}
	if v.Report != nil {
		cfg.Report.OutputDir = v.Report.OutputDir
	}
	return cfg
}
