package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/vetting_radar/pkg/config"
)

// Completer 定义文本补全能力的通用接口
// temperature 控制随机性；maxTokens 为 0 时表示不限制。
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Client 基于 eino OpenAI ChatModel 的补全客户端
type Client struct {
	chatModel model.ChatModel
	limiter   *rate.Limiter
}

// Ensure Client implements Completer
var _ Completer = (*Client)(nil)

// NewClient 创建补全客户端
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	rpm := cfg.Concurrency.RPM
	if rpm <= 0 {
		rpm = 60
	}
	burst := cfg.Concurrency.QPS
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	return &Client{chatModel: chatModel, limiter: limiter}, nil
}

// Complete 执行一次补全调用 (带 429 重试机制)
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: user},
	}

	opts := []model.Option{model.WithTemperature(temperature)}
	if maxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(maxTokens))
	}

	maxRetries := 3
	baseDelay := 2 * time.Second
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := c.chatModel.Generate(ctx, messages, opts...)
		if err != nil {
			if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "too many requests") {
				lastErr = err
				if i < maxRetries {
					time.Sleep(baseDelay * time.Duration(1<<i))
					continue
				}
			}
			return "", err
		}

		return strings.TrimSpace(resp.Content), nil
	}
	return "", lastErr
}
