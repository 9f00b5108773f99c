package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/weibaohui/landingkit/config"
	"k8s.io/klog/v2"
)

// ErrEmptyResponse 模型返回了空内容
var ErrEmptyResponse = errors.New("empty response from LLM")

// ChatModel 封装 Eino ChatModel，补充日志和便捷调用
type ChatModel struct {
	chatModel model.BaseChatModel
}

// Wrap 包装任意 Eino ChatModel
func Wrap(chatModel model.BaseChatModel) *ChatModel {
	return &ChatModel{chatModel: chatModel}
}

// NewChatModel 按配置创建 OpenAI 兼容的 ChatModel
func NewChatModel(ctx context.Context, cfg *config.Config) (*ChatModel, error) {
	klog.V(6).Infof("[LLMChatModel] 创建 OpenAI ChatModel: model=%s, baseURL=%s", cfg.LLM.Model, cfg.LLM.APIURL)

	chatConfig := &openai.ChatModelConfig{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.Model,
	}
	if cfg.LLM.APIURL != "" {
		chatConfig.BaseURL = cfg.LLM.APIURL
	}
	if cfg.LLM.MaxTokens > 0 {
		maxTokens := cfg.LLM.MaxTokens
		chatConfig.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(ctx, chatConfig)
	if err != nil {
		klog.Errorf("[LLMChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[LLMChatModel] ChatModel 创建成功")
	return Wrap(chatModel), nil
}

// Generate 同步生成响应
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	klog.V(6).Infof("[LLMChatModel] Generate 开始: messageCount=%d", len(input))
	for i, msg := range input {
		klog.V(8).Infof("[LLMChatModel]   Message[%d]: role=%s, content=%s", i, msg.Role, msg.Content)
	}

	resp, err := m.chatModel.Generate(ctx, input, opts...)
	if err != nil {
		klog.Errorf("[LLMChatModel] Generate 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[LLMChatModel] Generate 完成: responseLength=%d", len(resp.Content))
	return resp, nil
}

// Complete 以一条 system + 一条 user 消息发起对话，返回去除首尾空白的文本
func (m *ChatModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userPrompt},
	}
	resp, err := m.Generate(ctx, messages)
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
