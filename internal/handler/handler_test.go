package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace-backend/internal/assessment"
	"solace-backend/internal/config"
	"solace-backend/internal/model"
	"solace-backend/internal/service"
	"solace-backend/internal/storage"
)

type stubDialogue struct{ reply string }

func (s *stubDialogue) Complete(context.Context, []model.Message) (string, error) {
	return s.reply, nil
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", nil
}

type stubMood struct{}

func (stubMood) AnalyzeText(context.Context, string) (string, error) {
	return "id,name,Joy,Sadness\n1,report,0.6,0.4", nil
}

type stubClassifier struct{}

func (stubClassifier) DistressProbability(context.Context, string) (float64, error) { return 0.2, nil }
func (stubClassifier) SuicideProbability(context.Context, string) (float64, error)  { return 0.1, nil }

type stubCompleter struct{ response string }

func (s *stubCompleter) CompleteJSON(context.Context, string, string) (string, error) {
	return s.response, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *storage.MemoryStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStorage()
	chatService := service.NewChatService(
		store,
		&stubDialogue{reply: "stay safe"},
		stubTranscriber{},
		stubMood{},
		stubClassifier{},
		nil,
		config.TriageConfig{
			MentalScale:      1.0,
			SuicideThreshold: 0.5,
			BoostValue:       0.8,
			WindowSize:       5,
			RiskThreshold:    0.7,
			EnableMood:       true,
		},
		config.SessionConfig{},
	)
	engine := assessment.NewEngine(&stubCompleter{
		response: `{"domains": [{"name": "Depression", "scores": [1, 0], "evidence": ["a", "b"]}]}`,
	})
	assessmentService := service.NewAssessmentService(engine, store)

	chatHandler := NewChatHandler(chatService)
	assessmentHandler := NewAssessmentHandler(assessmentService)

	router := gin.New()
	api := router.Group("/api")
	chat := api.Group("/chat")
	chat.POST("", chatHandler.Chat)
	chat.POST("/session/list", chatHandler.GetSessionList)
	chat.GET("/session/del/:session_id", chatHandler.DeleteSession)
	chat.GET("/session/:session_id", chatHandler.GetSession)
	chat.GET("/session/:session_id/prompts", chatHandler.ExportPrompts)
	api.POST("/analyze", assessmentHandler.Analyze)
	api.GET("/assessment-files", assessmentHandler.ListResults)
	api.GET("/assessment-data", assessmentHandler.GetResult)
	api.POST("/run-assessment", assessmentHandler.RunLevel2)

	return router, store
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"session_id": "u1", "message": "I feel low"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doctor_response":"stay safe"`)
	assert.Contains(t, w.Body.String(), `"mood_report":"Joy: 60.00%, Sadness: 40.00%"`)
}

func TestChatEndpointRequiresSessionID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"message": "hello"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/session/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat", `{"session_id": "u1", "message": "first message"}`)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/session/u1/prompts", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "first message")

	req = httptest.NewRequest(http.MethodGet, "/api/chat/session/del/u1", nil)
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req)
	require.Equal(t, http.StatusOK, w3.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/chat/session/u1", nil)
	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, req)
	assert.Equal(t, http.StatusNotFound, w4.Code)
}

func TestAnalyzeEndpointPersistsResult(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/analyze", `{"text": "I have been feeling down lately"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"schema_version":1`)

	files, err := store.ListAssessments()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "mental_health_analysis_"))
}

func TestAnalyzeEndpointRequiresText(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssessmentDataQueryValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/assessment-data", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/assessment-data?file=missing.json", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

func TestRunAssessmentUnknownDomain(t *testing.T) {
	router, store := newTestRouter(t)
	store.PutTranscript("session_01.txt", "Patient: I feel anxious")

	w := doJSON(router, http.MethodPost, "/api/run-assessment", `{"domain": "Stress", "session": "session_01.txt"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAssessmentMissingTranscript(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/run-assessment", `{"domain": "Depression", "session": "nope.txt"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
