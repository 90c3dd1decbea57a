package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Client 策略模型客户端抽象,便于替换/Mock
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Model() string
}

// OpenAIClient 基于openai-go SDK的实现(chat completions)
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient 创建策略模型客户端
// apiBase为空时使用官方地址,兼容任意OpenAI协议的服务。
func NewOpenAIClient(apiBase, apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("未配置策略模型API密钥")
	}
	if model == "" {
		return nil, errors.New("未配置策略模型名称")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if apiBase != "" {
		opts = append(opts, option.WithBaseURL(apiBase))
	}

	return &OpenAIClient{model: model, opts: opts}, nil
}

// Model 返回模型名称
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete 发起一次对话补全
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(c.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, openai.UserMessage(user))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("策略模型返回空结果")
	}

	return resp.Choices[0].Message.Content, nil
}
