// Package elevenlabs 调用 ElevenLabs 的语音合成接口，把医生回复转成 mp3 字节流。
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"solace-backend/internal/config"
	"solace-backend/internal/utils"
)

// ErrSynthesis 语音合成失败，调用方按尽力而为处理
var ErrSynthesis = errors.New("speech synthesis failed")

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
	model      string
}

func New(cfg config.ElevenLabsConfig) *Client {
	return &Client{
		httpClient: utils.NewHTTPClient(cfg.Timeout),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		voiceID:    cfg.VoiceID,
		model:      cfg.Model,
	}
}

// Synthesize 文本转语音，返回mp3音频字节
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s?output_format=mp3_22050_32", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrSynthesis, resp.StatusCode, string(body))
	}
	return body, nil
}
