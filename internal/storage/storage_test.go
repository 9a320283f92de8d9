package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solace-backend/internal/model"
)

func newTestSession(id string) *model.Session {
	now := time.Now()
	return &model.Session{
		ID: id,
		Messages: []model.Message{
			{ID: "m1", SessionID: id, Role: model.RoleSystem, Content: "preamble", Timestamp: now},
		},
		RiskWindow: []float64{0.2, 0.4},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestMemorySessionLifecycle(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Init())

	session := newTestSession("user-1")
	require.NoError(t, store.CreateSession(session))

	got, err := store.GetSession("user-1")
	require.NoError(t, err)
	assert.Equal(t, session.RiskWindow, got.RiskWindow)

	_, err = store.GetSession("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.DeleteSession("user-1"))
	assert.ErrorIs(t, store.DeleteSession("user-1"), ErrSessionNotFound)
}

func TestMemoryAssessmentRoundTrip(t *testing.T) {
	store := NewMemoryStorage()

	require.NoError(t, store.SaveAssessment("mental_health_analysis_20250101_120000.json", []byte(`{"schema_version":1}`)))

	names, err := store.ListAssessments()
	require.NoError(t, err)
	assert.Equal(t, []string{"mental_health_analysis_20250101_120000.json"}, names)

	data, err := store.GetAssessment("mental_health_analysis_20250101_120000.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema_version":1}`, string(data))

	_, err = store.GetAssessment("nope.json")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDiskSessionPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store := NewDiskStorage(dir, 10)
	require.NoError(t, store.Init())

	session := newTestSession("user-7")
	require.NoError(t, store.CreateSession(session))

	session.Messages = append(session.Messages, model.Message{
		ID: "m2", SessionID: "user-7", Role: model.RoleUser, Content: "hello", Timestamp: time.Now(),
	})
	session.RiskWindow = append(session.RiskWindow, 0.8)
	require.NoError(t, store.UpdateSession(session))
	require.NoError(t, store.Close())

	reopened := NewDiskStorage(dir, 10)
	require.NoError(t, reopened.Init())

	got, err := reopened.GetSession("user-7")
	require.NoError(t, err)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, []float64{0.2, 0.4, 0.8}, got.RiskWindow)

	sessions, err := reopened.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "user-7", sessions[0].ID)
}

func TestDiskUpdateUnknownSession(t *testing.T) {
	store := NewDiskStorage(t.TempDir(), 10)
	require.NoError(t, store.Init())

	assert.ErrorIs(t, store.UpdateSession(newTestSession("ghost")), ErrSessionNotFound)
}

func TestDiskAssessmentsSortedNewestFirst(t *testing.T) {
	store := NewDiskStorage(t.TempDir(), 10)
	require.NoError(t, store.Init())

	require.NoError(t, store.SaveAssessment("mental_health_analysis_20250101_090000.json", []byte("{}")))
	require.NoError(t, store.SaveAssessment("mental_health_analysis_20250102_090000.json", []byte("{}")))

	names, err := store.ListAssessments()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mental_health_analysis_20250102_090000.json",
		"mental_health_analysis_20250101_090000.json",
	}, names)
}

func TestDiskRejectsPathTraversal(t *testing.T) {
	store := NewDiskStorage(t.TempDir(), 10)
	require.NoError(t, store.Init())

	assert.ErrorIs(t, store.SaveAssessment("../escape.json", []byte("{}")), ErrInvalidName)
	_, err := store.GetAssessment("../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = store.GetTranscript("..")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestDiskTranscripts(t *testing.T) {
	store := NewDiskStorage(t.TempDir(), 10)
	require.NoError(t, store.Init())

	_, err := store.GetTranscript("session_01.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)

	names, err := store.ListTranscripts()
	require.NoError(t, err)
	assert.Empty(t, names)
}
