package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace-backend/internal/config"
	"solace-backend/internal/model"
	"solace-backend/internal/storage"
)

type fakeDialogue struct {
	reply string
	err   error
	calls int
	seen  []model.Message
}

func (f *fakeDialogue) Complete(_ context.Context, messages []model.Message) (string, error) {
	f.calls++
	f.seen = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.text, f.err
}

type fakeMood struct {
	raw string
	err error
}

func (f *fakeMood) AnalyzeText(_ context.Context, _ string) (string, error) {
	return f.raw, f.err
}

type fakeClassifier struct {
	mental  float64
	suicide float64
	err     error
	calls   int
}

func (f *fakeClassifier) DistressProbability(_ context.Context, _ string) (float64, error) {
	f.calls++
	return f.mental, f.err
}

func (f *fakeClassifier) SuicideProbability(_ context.Context, _ string) (float64, error) {
	f.calls++
	return f.suicide, f.err
}

func testTriageConfig() config.TriageConfig {
	return config.TriageConfig{
		MentalScale:      1.0,
		SuicideThreshold: 0.5,
		BoostValue:       0.8,
		WindowSize:       5,
		RiskThreshold:    0.7,
		EnableMood:       true,
	}
}

func newTestService(dialogue *fakeDialogue, moodAnalyzer *fakeMood, classifier *fakeClassifier) (*ChatService, *storage.MemoryStorage) {
	store := storage.NewMemoryStorage()
	svc := NewChatService(
		store,
		dialogue,
		&fakeTranscriber{},
		moodAnalyzer,
		classifier,
		nil,
		testTriageConfig(),
		config.SessionConfig{},
	)
	return svc, store
}

func moodCSV() string {
	return "id,name,Joy,Sadness\n1,report,0.7,0.3"
}

func TestProcessTurnEmptyInputIsNoOp(t *testing.T) {
	dialogue := &fakeDialogue{reply: "hello"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{})

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1"})
	require.NoError(t, err)
	assert.True(t, resp.NoOp)
	assert.Zero(t, dialogue.calls)

	session, err := store.GetSession("u1")
	require.NoError(t, err)
	// 只有系统前导语，回合没有留下痕迹
	require.Len(t, session.Messages, 1)
	assert.Equal(t, model.RoleSystem, session.Messages[0].Role)
	assert.Empty(t, session.RiskWindow)
}

func TestProcessTurnMessageOrdering(t *testing.T) {
	dialogue := &fakeDialogue{reply: "take care of yourself"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.2, suicide: 0.1})

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "I feel a bit down"})
	require.NoError(t, err)

	assert.Equal(t, "take care of yourself", resp.Reply)
	assert.Equal(t, "Joy: 70.00%, Sadness: 30.00%", resp.MoodReport)
	assert.InDelta(t, 0.15, resp.RiskScore, 1e-9)
	assert.False(t, resp.Alert)

	session, err := store.GetSession("u1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 4)
	assert.Equal(t, model.RoleSystem, session.Messages[0].Role)
	assert.Equal(t, "Mood Report: Joy: 70.00%, Sadness: 30.00%", session.Messages[1].Content)
	assert.Equal(t, model.RoleUser, session.Messages[2].Role)
	assert.Equal(t, "I feel a bit down", session.Messages[2].Content)
	assert.Equal(t, model.RoleAssistant, session.Messages[3].Role)
	assert.Equal(t, []float64{0.15}, session.RiskWindow)
}

func TestProcessTurnAlertPrecedesUserMessage(t *testing.T) {
	dialogue := &fakeDialogue{reply: "please seek help immediately"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.9, suicide: 0.9})

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "everything is falling apart"})
	require.NoError(t, err)
	assert.True(t, resp.Alert)
	assert.InDelta(t, 0.9, resp.AvgRisk, 1e-9)

	session, err := store.GetSession("u1")
	require.NoError(t, err)
	require.Len(t, session.Messages, 5)
	// 警报插在触发它的用户消息之前
	assert.Equal(t, alertMessage, session.Messages[2].Content)
	assert.Equal(t, model.RoleUser, session.Messages[3].Role)

	// 对话模型在生成回复时已经能看到警报
	var alertSeen bool
	for _, msg := range dialogue.seen {
		if msg.Content == alertMessage {
			alertSeen = true
		}
	}
	assert.True(t, alertSeen)
}

func TestProcessTurnDialogueFailureLeavesSessionUntouched(t *testing.T) {
	dialogue := &fakeDialogue{err: errors.New("model unavailable")}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.2, suicide: 0.1})

	_, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "hello"})
	require.Error(t, err)

	session, getErr := store.GetSession("u1")
	require.NoError(t, getErr)
	assert.Len(t, session.Messages, 1)
	assert.Empty(t, session.RiskWindow)
}

func TestProcessTurnCriticalKeywordSkipsClassifier(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("should not be called")}
	dialogue := &fakeDialogue{reply: "I hear you, please stay with me"}
	svc, _ := newTestService(dialogue, &fakeMood{raw: moodCSV()}, classifier)

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "I think about suicide a lot"})
	require.NoError(t, err)
	assert.Equal(t, 0.8, resp.RiskScore)
	assert.Zero(t, classifier.calls)
}

func TestProcessTurnClassifierErrorFailsTurn(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("inference backend down")}
	dialogue := &fakeDialogue{reply: "unused"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, classifier)

	_, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "ordinary message"})
	require.Error(t, err)
	assert.Zero(t, dialogue.calls)

	session, getErr := store.GetSession("u1")
	require.NoError(t, getErr)
	assert.Len(t, session.Messages, 1)
}

func TestProcessTurnAlertRepeatsEveryQualifyingTurn(t *testing.T) {
	dialogue := &fakeDialogue{reply: "please contact a professional"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.9, suicide: 0.9})

	for i := 0; i < 3; i++ {
		resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "it keeps getting worse"})
		require.NoError(t, err)
		assert.True(t, resp.Alert)
	}

	session, err := store.GetSession("u1")
	require.NoError(t, err)

	alerts := 0
	for _, msg := range session.Messages {
		if msg.Content == alertMessage {
			alerts++
		}
	}
	assert.Equal(t, 3, alerts)
}

func TestProcessTurnMoodFailureDegradesInline(t *testing.T) {
	dialogue := &fakeDialogue{reply: "noted"}
	svc, store := newTestService(dialogue, &fakeMood{err: errors.New("api down")}, &fakeClassifier{mental: 0.2, suicide: 0.1})

	resp, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Invalid mood report format", resp.MoodReport)

	session, getErr := store.GetSession("u1")
	require.NoError(t, getErr)
	assert.Equal(t, "Mood Report: Invalid mood report format", session.Messages[1].Content)
}

func TestProcessTurnCombinesAudioAndText(t *testing.T) {
	dialogue := &fakeDialogue{reply: "thanks for sharing"}
	store := storage.NewMemoryStorage()
	svc := NewChatService(
		store,
		dialogue,
		&fakeTranscriber{text: "spoken part"},
		&fakeMood{raw: moodCSV()},
		&fakeClassifier{mental: 0.2, suicide: 0.1},
		nil,
		testTriageConfig(),
		config.SessionConfig{},
	)

	// "aGVsbG8=" 解码为 "hello"
	_, err := svc.ProcessTurn(context.Background(), model.ChatRequest{
		SessionID:   "u1",
		Message:     "typed part",
		AudioBase64: "aGVsbG8=",
		AudioName:   "voice.wav",
	})
	require.NoError(t, err)

	session, err := store.GetSession("u1")
	require.NoError(t, err)
	assert.Equal(t, "spoken part\ntyped part", session.Messages[2].Content)
}

func TestProcessTurnRiskWindowEvicts(t *testing.T) {
	dialogue := &fakeDialogue{reply: "ok"}
	svc, store := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.4, suicide: 0.2})

	for i := 0; i < 7; i++ {
		_, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "another day"})
		require.NoError(t, err)
	}

	session, err := store.GetSession("u1")
	require.NoError(t, err)
	assert.Len(t, session.RiskWindow, 5)
}

func TestExportUserPrompts(t *testing.T) {
	dialogue := &fakeDialogue{reply: "ok"}
	svc, _ := newTestService(dialogue, &fakeMood{raw: moodCSV()}, &fakeClassifier{mental: 0.1, suicide: 0.1})

	_, err := svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "first"})
	require.NoError(t, err)
	_, err = svc.ProcessTurn(context.Background(), model.ChatRequest{SessionID: "u1", Message: "second"})
	require.NoError(t, err)

	prompts, err := svc.ExportUserPrompts("u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, prompts)
}
