package storage

import (
	"solace-backend/internal/model"
)

type Storage interface {
	// 会话管理
	CreateSession(session *model.Session) error
	GetSession(sessionID string) (*model.Session, error)
	UpdateSession(session *model.Session) error
	DeleteSession(sessionID string) error
	ListSessions() ([]*model.Session, error)

	// 评估结果文档（时间戳命名的JSON快照）
	SaveAssessment(name string, data []byte) error
	ListAssessments() ([]string, error)
	GetAssessment(name string) ([]byte, error)

	// 会谈记录文本文件，Level 2 评估的输入
	ListTranscripts() ([]string, error)
	GetTranscript(name string) (string, error)

	// 存储管理
	Init() error
	Close() error
	Backup() error
}
