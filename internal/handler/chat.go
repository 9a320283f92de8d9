package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"solace-backend/internal/clients/groq"
	"solace-backend/internal/clients/hfinference"
	"solace-backend/internal/model"
	"solace-backend/internal/service"
	"solace-backend/internal/storage"
	"solace-backend/pkg/logger"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Chat 处理一个对话回合
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.chatService.ProcessTurn(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("chat turn failed for session %s: %v", req.SessionID, err)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, groq.ErrTranscription):
			status = http.StatusBadRequest
		case errors.Is(err, groq.ErrDialogue), errors.Is(err, hfinference.ErrClassifier):
			status = http.StatusBadGateway
		}
		c.JSON(status, model.ErrorResponse{Error: "chat turn failed", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	session, err := h.chatService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":   session.ID,
		"created_at":   session.CreatedAt,
		"updated_at":   session.UpdatedAt,
		"messages":     session.Messages,
		"conversation": session.FormatConversation(),
	})
}

func (h *ChatHandler) GetSessionList(c *gin.Context) {
	sessions, err := h.chatService.ListSessions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	list := make([]model.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, model.SessionResponse{
			SessionID:    session.ID,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
			MessageCount: len(session.Messages),
		})
	}

	c.JSON(http.StatusOK, gin.H{"sessions": list})
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.chatService.DeleteSession(sessionID); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// ExportPrompts 导出会话中全部用户消息
func (h *ChatHandler) ExportPrompts(c *gin.Context) {
	sessionID := c.Param("session_id")

	prompts, err := h.chatService.ExportUserPrompts(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"prompts":    prompts,
	})
}
