// Package hfinference 通过 Hugging Face 推理接口调用两个文本分类器，
// 分别给出一般心理困扰概率和自杀风险概率。
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"solace-backend/internal/config"
	"solace-backend/internal/utils"
)

// ErrClassifier 分类器调用失败，回合处理遇到该错误时直接失败
var ErrClassifier = errors.New("text classification failed")

type Client struct {
	httpClient    *http.Client
	token         string
	distressURL   string
	suicideURL    string
	positiveLabel string
}

func New(cfg config.ClassifierConfig) *Client {
	return &Client{
		httpClient:    utils.NewHTTPClient(cfg.Timeout),
		token:         cfg.Token,
		distressURL:   cfg.DistressURL,
		suicideURL:    cfg.SuicideURL,
		positiveLabel: cfg.PositiveLabel,
	}
}

// DistressProbability 一般心理困扰的正类概率
func (c *Client) DistressProbability(ctx context.Context, text string) (float64, error) {
	return c.classify(ctx, c.distressURL, text)
}

// SuicideProbability 自杀风险的正类概率
func (c *Client) SuicideProbability(ctx context.Context, text string) (float64, error) {
	return c.classify(ctx, c.suicideURL, text)
}

func (c *Client) classify(ctx context.Context, modelURL, text string) (float64, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, modelURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d: %s", ErrClassifier, resp.StatusCode, string(body))
	}

	// 推理接口返回 [[{"label": ..., "score": ...}, ...]]
	var result [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return 0, fmt.Errorf("%w: empty classification result", ErrClassifier)
	}

	for _, entry := range result[0] {
		if entry.Label == c.positiveLabel {
			return entry.Score, nil
		}
	}
	return 0, fmt.Errorf("%w: label %s not found in result", ErrClassifier, c.positiveLabel)
}
