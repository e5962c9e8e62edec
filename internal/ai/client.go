package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"mediassist/internal/ai/component"
	"mediassist/internal/config"
	appmodel "mediassist/internal/model"
)

// systemPrompt is sent with every completion request
const systemPrompt = `You are MediAssist, a healthcare assistant. Your role is to:
1. Assess patient symptoms and concerns
2. Provide evidence-based medical information
3. Triage cases based on severity
4. Guide patients through self-care when appropriate
5. Escalate to human providers when necessary

Always:
- Maintain patient privacy and confidentiality
- Be clear about your limitations
- Recommend professional medical care for serious conditions
- Follow established medical protocols`

// Completer is the boundary to the external completion service. The chat
// service depends on this interface so the AI call can be swapped for a
// test double.
type Completer interface {
	Complete(ctx context.Context, history []appmodel.Message, userMessage string) (string, error)
}

// Client wraps an eino ChatModel behind the Completer interface
type Client struct {
	cfg       *config.AIConfig
	chatModel model.BaseChatModel
}

// NewClient creates the AI client. Returns an error when no API key is
// configured; callers treat that as "AI path disabled" and rely on the
// local synthesizer instead.
func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key not configured")
	}

	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Client{
		cfg:       cfg,
		chatModel: chatModel,
	}, nil
}

// Complete sends the conversation history plus the new user message to the
// model and returns the completion text.
func (c *Client) Complete(ctx context.Context, history []appmodel.Message, userMessage string) (string, error) {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))

	for _, msg := range history {
		switch msg.Role {
		case appmodel.RoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case appmodel.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		case appmodel.RoleSystem:
			messages = append(messages, schema.SystemMessage(msg.Content))
		}
	}
	messages = append(messages, schema.UserMessage(userMessage))

	resp, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if resp.Content == "" {
		return "", errors.New("empty response from chat model")
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		log.Debug().
			Int("prompt_tokens", resp.ResponseMeta.Usage.PromptTokens).
			Int("completion_tokens", resp.ResponseMeta.Usage.CompletionTokens).
			Msg("completion finished")
	}

	return resp.Content, nil
}
