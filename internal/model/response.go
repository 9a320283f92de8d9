package model

import "time"

// ChatResponse 一次回合的结果。NoOp 表示输入为空、会话未变化
type ChatResponse struct {
	SessionID    string  `json:"session_id"`
	Reply        string  `json:"doctor_response,omitempty"`
	MoodReport   string  `json:"mood_report,omitempty"`
	RiskScore    float64 `json:"risk_score"`
	AvgRisk      float64 `json:"avg_risk"`
	Alert        bool    `json:"alert"`
	Conversation string  `json:"conversation"`
	AudioBase64  string  `json:"audio,omitempty"`
	NoOp         bool    `json:"no_op,omitempty"`
}

type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
