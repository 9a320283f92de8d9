package model

// ChatRequest 一次对话回合的输入。AudioBase64 与 Message 可任选其一或同时提供
type ChatRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	Message     string `json:"message"`
	AudioBase64 string `json:"audio"`
	AudioName   string `json:"audio_name"`
	WithSpeech  bool   `json:"with_speech"`
}

// AnalyzeRequest DSM-5 Level 1 整体筛查请求
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Level2Request 针对单个症状域、单个会谈记录的深度评估请求
type Level2Request struct {
	Domain  string `json:"domain" binding:"required"`
	Session string `json:"session" binding:"required"`
}
