// Package groq 封装 Groq 的 OpenAI 兼容接口：
// 对话补全、JSON模式的结构化调用和 Whisper 语音转写。
package groq

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"solace-backend/internal/config"
	"solace-backend/internal/model"
	"solace-backend/internal/utils"
	"solace-backend/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrDialogue 对话补全调用失败
	ErrDialogue = errors.New("dialogue completion failed")
	// ErrTranscription 语音转写失败或音频为空
	ErrTranscription = errors.New("audio transcription failed")
)

type Client struct {
	client       *openai.Client
	chatModel    string
	whisperModel string
	assessment   config.AssessmentConfig
}

func New(cfg config.GroqConfig, assessment config.AssessmentConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = utils.NewHTTPClient(cfg.Timeout)

	return &Client{
		client:       openai.NewClientWithConfig(clientConfig),
		chatModel:    cfg.ChatModel,
		whisperModel: cfg.WhisperModel,
		assessment:   assessment,
	}
}

// Complete 基于完整会话历史生成医生回复
func (c *Client) Complete(ctx context.Context, messages []model.Message) (string, error) {
	openaiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		openaiMessages = append(openaiMessages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: openaiMessages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDialogue, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrDialogue)
	}

	logger.Debugf("dialogue completion returned %d characters", len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}

// CompleteJSON 结构化评估调用，强制 json_object 响应格式
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.assessment.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature:      c.assessment.Temperature,
		MaxTokens:        c.assessment.MaxTokens,
		TopP:             c.assessment.TopP,
		FrequencyPenalty: c.assessment.FrequencyPenalty,
		PresencePenalty:  c.assessment.PresencePenalty,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe Whisper 语音转写，文件名用于推断音频格式
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio payload", ErrTranscription)
	}
	if filename == "" {
		filename = "audio.wav"
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.whisperModel,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	return resp.Text, nil
}
