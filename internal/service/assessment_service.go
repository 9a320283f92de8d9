package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solace-backend/internal/assessment"
	"solace-backend/internal/storage"
	"solace-backend/pkg/logger"
)

// AssessmentService 执行 DSM-5 评估并把结果落成时间戳命名的JSON文档
type AssessmentService struct {
	engine *assessment.Engine
	store  storage.Storage
}

func NewAssessmentService(engine *assessment.Engine, store storage.Storage) *AssessmentService {
	return &AssessmentService{engine: engine, store: store}
}

// Analyze Level 1 整体筛查，结果持久化后返回文件名
func (s *AssessmentService) Analyze(ctx context.Context, text string) (*assessment.Result, string, error) {
	result, err := s.engine.Analyze(ctx, text)
	if err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("mental_health_analysis_%s.json", time.Now().Format("20060102_150405"))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, "", err
	}
	if err := s.store.SaveAssessment(name, data); err != nil {
		// 结果算出来了，落盘失败不吞掉分析产出
		logger.Errorf("failed to persist assessment %s: %v", name, err)
		return result, "", err
	}

	return result, name, nil
}

// RunLevel2 读取指定会谈记录并做单域深度评估
func (s *AssessmentService) RunLevel2(ctx context.Context, domain, transcriptFile string) (*assessment.Level2Result, error) {
	transcript, err := s.store.GetTranscript(transcriptFile)
	if err != nil {
		return nil, err
	}
	return s.engine.AnalyzeDomain(ctx, domain, transcript)
}

func (s *AssessmentService) ListResults() ([]string, error) {
	return s.store.ListAssessments()
}

func (s *AssessmentService) GetResult(name string) ([]byte, error) {
	return s.store.GetAssessment(name)
}

func (s *AssessmentService) ListTranscripts() ([]string, error) {
	return s.store.ListTranscripts()
}

func (s *AssessmentService) GetTranscript(name string) (string, error) {
	return s.store.GetTranscript(name)
}
