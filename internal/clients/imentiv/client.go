// Package imentiv 对接 Imentiv 情绪分析API：提交文本后轮询取回报告。
package imentiv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"solace-backend/internal/config"
	"solace-backend/internal/utils"
	"solace-backend/pkg/logger"
)

var (
	// ErrSubmit 文本提交被拒绝
	ErrSubmit = errors.New("mood text submission failed")
	// ErrReport 报告获取失败或超时
	ErrReport = errors.New("mood report retrieval failed")
)

type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func New(cfg config.ImentivConfig) *Client {
	return &Client{
		httpClient:   utils.NewHTTPClient(cfg.PollTimeout + 10*time.Second),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		pollInterval: cfg.PollInterval,
		pollTimeout:  cfg.PollTimeout,
	}
}

// AnalyzeText 提交文本并轮询报告，返回原始表格文本
func (c *Client) AnalyzeText(ctx context.Context, text string) (string, error) {
	id, err := c.submit(ctx, text)
	if err != nil {
		return "", err
	}
	logger.Debugf("mood text accepted, id=%s", id)
	return c.pollReport(ctx, id)
}

func (c *Client) submit(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	// 置空video_url让接口按文本处理
	form.Set("video_url", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/texts", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrSubmit, resp.StatusCode, string(body))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSubmit, err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("%w: response has no id", ErrSubmit)
	}
	return result.ID, nil
}

// pollReport 固定间隔轮询直到报告就绪或超出时限，202表示仍在处理
func (c *Client) pollReport(ctx context.Context, id string) (string, error) {
	deadline := time.Now().Add(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrReport, ctx.Err())
		case <-ticker.C:
		}

		report, done, err := c.fetchReport(ctx, id)
		if err != nil {
			return "", err
		}
		if done {
			return report, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: report not ready after %s", ErrReport, c.pollTimeout)
		}
		logger.Debugf("mood report %s still processing", id)
	}
}

func (c *Client) fetchReport(ctx context.Context, id string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/texts/%s/report", c.baseURL, id), nil)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrReport, err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrReport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrReport, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return string(body), true, nil
	case http.StatusAccepted:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: status %d: %s", ErrReport, resp.StatusCode, string(body))
	}
}
