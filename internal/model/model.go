package model

import (
	"strings"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 会话中的一条消息，追加后不可变
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session 一次分诊会话的全部状态：
// 消息日志只增不减，第一条固定为系统前导语；
// RiskWindow 是最近若干条用户消息的风险分滑动窗口（容量见配置）
type Session struct {
	ID         string    `json:"id"`
	Messages   []Message `json:"messages"`
	RiskWindow []float64 `json:"risk_window"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FormatConversation 渲染完整对话文本，给前端的只读视图
func (s *Session) FormatConversation() string {
	var lines []string
	for _, msg := range s.Messages {
		switch msg.Role {
		case RoleUser:
			lines = append(lines, "User: "+msg.Content)
		case RoleAssistant:
			lines = append(lines, "Doctor: "+msg.Content)
		case RoleSystem:
			lines = append(lines, "(System): "+msg.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// UserPrompts 导出所有用户消息内容（原始顺序）
func (s *Session) UserPrompts() []string {
	prompts := make([]string, 0)
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			prompts = append(prompts, msg.Content)
		}
	}
	return prompts
}
