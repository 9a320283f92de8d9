// Package service 实现分诊会话的回合处理与评估编排。
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"solace-backend/internal/config"
	"solace-backend/internal/model"
	"solace-backend/internal/mood"
	"solace-backend/internal/risk"
	"solace-backend/internal/storage"
	"solace-backend/pkg/logger"
)

// 首条系统前导语，奠定医生的应答风格
const defaultSystemPrompt = "You are a professional, empathetic doctor providing concise, safe, and clear advice. " +
	"Respond with empathy for mental health issues, suggest possible causes for physical ailments, " +
	"and always advise consulting a qualified professional when needed. " +
	"Keep your answers brief within 4-6 sentences. You are based in Singapore and part of the Institute of Mental Health in Singapore."

const alertMessage = "CRITICAL ALERT: High suicide risk detected. Immediate intervention is recommended."

// 情绪报告不可用时写进会话的降级文案
const (
	moodInvalidFormat = "Invalid mood report format"
	moodParseFailure  = "Error parsing mood scores"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type Dialoguer interface {
	Complete(ctx context.Context, messages []model.Message) (string, error)
}

type MoodAnalyzer interface {
	AnalyzeText(ctx context.Context, text string) (string, error)
}

type RiskClassifier interface {
	DistressProbability(ctx context.Context, text string) (float64, error)
	SuicideProbability(ctx context.Context, text string) (float64, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type ChatService struct {
	store       storage.Storage
	dialogue    Dialoguer
	transcriber Transcriber
	mood        MoodAnalyzer
	classifier  RiskClassifier
	speech      SpeechSynthesizer

	triageCfg  config.TriageConfig
	sessionCfg config.SessionConfig

	// 会话级互斥：同一会话的回合串行，不同会话并行
	sessionLocks sync.Map

	stopCleanup chan struct{}
	cleanupOnce sync.Once
}

func NewChatService(
	store storage.Storage,
	dialogue Dialoguer,
	transcriber Transcriber,
	moodAnalyzer MoodAnalyzer,
	classifier RiskClassifier,
	speech SpeechSynthesizer,
	triageCfg config.TriageConfig,
	sessionCfg config.SessionConfig,
) *ChatService {
	return &ChatService{
		store:       store,
		dialogue:    dialogue,
		transcriber: transcriber,
		mood:        moodAnalyzer,
		classifier:  classifier,
		speech:      speech,
		triageCfg:   triageCfg,
		sessionCfg:  sessionCfg,
		stopCleanup: make(chan struct{}),
	}
}

func (s *ChatService) lockSession(sessionID string) *sync.Mutex {
	lock, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// ProcessTurn 处理一个对话回合。
// 回合内的消息追加先暂存，全部步骤成功后一次性提交，
// 对话调用失败不会在会话里留下悬空的用户消息。
func (s *ChatService) ProcessTurn(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	lock := s.lockSession(req.SessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadOrCreateSession(req.SessionID)
	if err != nil {
		return nil, err
	}

	userInput, err := s.assembleInput(ctx, req)
	if err != nil {
		return nil, err
	}
	if userInput == "" {
		// 无有效输入：回合不落任何痕迹
		return &model.ChatResponse{
			SessionID:    session.ID,
			AvgRisk:      windowAverage(session.RiskWindow),
			Conversation: session.FormatConversation(),
			NoOp:         true,
		}, nil
	}

	staged := make([]model.Message, 0, 4)

	var moodReport string
	if s.triageCfg.EnableMood && s.mood != nil {
		moodReport = s.moodReport(ctx, userInput)
		staged = append(staged, s.newMessage(session.ID, model.RoleSystem, "Mood Report: "+moodReport))
	}

	score, err := s.riskScore(ctx, userInput)
	if err != nil {
		return nil, err
	}

	window := make([]float64, len(session.RiskWindow))
	copy(window, session.RiskWindow)
	window, avgRisk := risk.UpdateWindow(window, score, s.triageCfg.WindowSize)

	alert := avgRisk >= s.triageCfg.RiskThreshold
	if alert {
		logger.WithFields(map[string]interface{}{
			"session_id": session.ID,
			"risk_score": score,
			"avg_risk":   avgRisk,
		}).Warn("risk alert threshold reached")
		staged = append(staged, s.newMessage(session.ID, model.RoleSystem, alertMessage))
	}

	staged = append(staged, s.newMessage(session.ID, model.RoleUser, userInput))

	reply, err := s.dialogue.Complete(ctx, append(append([]model.Message{}, session.Messages...), staged...))
	if err != nil {
		return nil, err
	}
	staged = append(staged, s.newMessage(session.ID, model.RoleAssistant, reply))

	session.Messages = append(session.Messages, staged...)
	session.RiskWindow = window
	session.UpdatedAt = time.Now()
	if err := s.store.UpdateSession(session); err != nil {
		return nil, err
	}

	resp := &model.ChatResponse{
		SessionID:    session.ID,
		Reply:        reply,
		MoodReport:   moodReport,
		RiskScore:    score,
		AvgRisk:      avgRisk,
		Alert:        alert,
		Conversation: session.FormatConversation(),
	}

	if req.WithSpeech && s.triageCfg.EnableSpeech && s.speech != nil {
		if audio, err := s.speech.Synthesize(ctx, reply); err != nil {
			// 语音是锦上添花，失败只记日志
			logger.Warnf("speech synthesis failed for session %s: %v", session.ID, err)
		} else {
			resp.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
		}
	}

	return resp, nil
}

func (s *ChatService) loadOrCreateSession(sessionID string) (*model.Session, error) {
	session, err := s.store.GetSession(sessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, storage.ErrSessionNotFound) {
		return nil, err
	}

	prompt := s.triageCfg.SystemPrompt
	if prompt == "" {
		prompt = defaultSystemPrompt
	}

	now := time.Now()
	session = &model.Session{
		ID:         sessionID,
		Messages:   []model.Message{s.newMessage(sessionID, model.RoleSystem, prompt)},
		RiskWindow: []float64{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, err
	}
	logger.Infof("session created: %s", sessionID)
	return session, nil
}

// assembleInput 合并转写文本与键入文本，两者都有时转写在前
func (s *ChatService) assembleInput(ctx context.Context, req model.ChatRequest) (string, error) {
	typed := strings.TrimSpace(req.Message)

	if req.AudioBase64 == "" {
		return typed, nil
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		return "", err
	}
	transcription, err := s.transcriber.Transcribe(ctx, audio, req.AudioName)
	if err != nil {
		return "", err
	}
	transcription = strings.TrimSpace(transcription)

	switch {
	case transcription != "" && typed != "":
		return transcription + "\n" + typed, nil
	case transcription != "":
		return transcription, nil
	default:
		return typed, nil
	}
}

// moodReport 情绪标注尽力而为：接口或解析失败都降级为固定文案
func (s *ChatService) moodReport(ctx context.Context, text string) string {
	raw, err := s.mood.AnalyzeText(ctx, text)
	if err != nil {
		logger.Warnf("mood analysis failed: %v", err)
		return moodInvalidFormat
	}

	report, err := mood.ParseReport(raw)
	if err != nil {
		logger.Warnf("mood report parse failed: %v", err)
		if errors.Is(err, mood.ErrScoreParse) {
			return moodParseFailure
		}
		return moodInvalidFormat
	}
	return report
}

// riskScore 关键词命中时直接用提升值，不再请求分类器；
// 分类器错误向上传播，回合失败
func (s *ChatService) riskScore(ctx context.Context, text string) (float64, error) {
	opts := risk.Options{
		MentalScale:      s.triageCfg.MentalScale,
		SuicideThreshold: s.triageCfg.SuicideThreshold,
		BoostValue:       s.triageCfg.BoostValue,
	}

	if risk.ContainsCriticalKeyword(text) {
		return risk.Score(text, 0, 0, opts), nil
	}

	mentalProb, err := s.classifier.DistressProbability(ctx, text)
	if err != nil {
		return 0, err
	}
	suicideProb, err := s.classifier.SuicideProbability(ctx, text)
	if err != nil {
		return 0, err
	}

	return risk.Score(text, mentalProb, suicideProb, opts), nil
}

func (s *ChatService) newMessage(sessionID, role, content string) model.Message {
	return model.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func windowAverage(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

func (s *ChatService) GetSession(sessionID string) (*model.Session, error) {
	return s.store.GetSession(sessionID)
}

func (s *ChatService) ListSessions() ([]*model.Session, error) {
	return s.store.ListSessions()
}

func (s *ChatService) DeleteSession(sessionID string) error {
	s.sessionLocks.Delete(sessionID)
	return s.store.DeleteSession(sessionID)
}

// ExportUserPrompts 导出会话里用户消息的原文
func (s *ChatService) ExportUserPrompts(sessionID string) ([]string, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.UserPrompts(), nil
}

// StartCleanup 启动过期会话清理协程
func (s *ChatService) StartCleanup() {
	go func() {
		ticker := time.NewTicker(s.sessionCfg.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.cleanupOldSessions()
			case <-s.stopCleanup:
				return
			}
		}
	}()
}

func (s *ChatService) StopCleanup() {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *ChatService) cleanupOldSessions() {
	sessions, err := s.store.ListSessions()
	if err != nil {
		logger.Errorf("session cleanup list failed: %v", err)
		return
	}

	cutoff := time.Now().Add(-s.sessionCfg.TTL)
	for _, session := range sessions {
		if session.UpdatedAt.After(cutoff) {
			continue
		}
		if err := s.store.DeleteSession(session.ID); err != nil {
			logger.Errorf("session cleanup delete %s failed: %v", session.ID, err)
			continue
		}
		s.sessionLocks.Delete(session.ID)
		logger.Infof("expired session removed: %s", session.ID)
	}
}
