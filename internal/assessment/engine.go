package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"solace-backend/pkg/logger"
)

const (
	// SchemaVersion 持久化评估结果的结构版本号
	SchemaVersion = 1

	evidenceSentinel       = "No explicit evidence found in the text."
	missingDomainSentinel  = "No data received from analysis."
	level2EvidenceSentinel = "No specific evidence found in the session."
)

var (
	// ErrAnalysis 模型响应在直接解析和正则提取后仍无法得到合法JSON
	ErrAnalysis = errors.New("analysis failed")
	// ErrUnknownDomain Level 2 请求的症状域没有对应量表
	ErrUnknownDomain = errors.New("no assessment tool found for domain")

	jsonObjectRe = regexp.MustCompile(`(?s)(\{.*\})`)
	scoreComment = regexp.MustCompile(`\s*\(score \d\)\s*`)
)

// Completer 结构化模型调用的窄接口，由groq客户端实现
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DomainResult 单个症状域的评估产出，校验完成后不再修改
type DomainResult struct {
	Name            string   `json:"name"`
	Questions       []string `json:"questions"`
	Scores          []int    `json:"scores"`
	Evidence        []string `json:"evidence"`
	Total           int      `json:"total"`
	RiskPercentage  float64  `json:"risk_percentage"`
	Severity        string   `json:"severity"`
	Threshold       int      `json:"threshold"`
	ClinicalConcern bool     `json:"clinical_concern"`
	Confidence      string   `json:"confidence"`
	ClinicalNotes   []string `json:"clinical_notes,omitempty"`
}

// Summary Level 1 筛查的汇总
type Summary struct {
	ClinicalConcerns []string          `json:"clinical_concerns"`
	ConfidenceLevels map[string]string `json:"confidence_levels"`
	Notes            []string          `json:"notes"`
}

// Result 一次 Level 1 筛查的完整结果
type Result struct {
	SchemaVersion int            `json:"schema_version"`
	Domains       []DomainResult `json:"domains"`
	Summary       Summary        `json:"summary"`
}

// Level2Result 单域深度评估的结果
type Level2Result struct {
	SchemaVersion  int      `json:"schema_version"`
	Domain         string   `json:"domain"`
	Tool           string   `json:"tool"`
	Questions      []string `json:"questions"`
	Scores         []int    `json:"scores"`
	Evidence       []string `json:"evidence"`
	Total          int      `json:"total"`
	MaxScore       int      `json:"max_score"`
	Level          string   `json:"level"`
	Recommendation string   `json:"recommendation"`
}

// Engine DSM-5 结构化评估引擎
type Engine struct {
	completer Completer
}

func NewEngine(completer Completer) *Engine {
	return &Engine{completer: completer}
}

// 模型返回的原始域结构，字段类型放宽以容忍不规范输出
type rawDomain struct {
	Name     string        `json:"name"`
	Scores   []interface{} `json:"scores"`
	Evidence []interface{} `json:"evidence"`
}

type rawAnalysis struct {
	Domains []rawDomain `json:"domains"`
}

// Analyze 对自由文本执行 Level 1 跨领域筛查
func (e *Engine) Analyze(ctx context.Context, text string) (*Result, error) {
	processed := PreprocessText(text)
	logger.Infof("preprocessed text length: %d", len(processed))

	raw, err := e.completer.CompleteJSON(ctx, level1SystemPrompt, buildLevel1UserPrompt(processed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	var parsed rawAnalysis
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		return nil, err
	}
	if parsed.Domains == nil {
		return nil, fmt.Errorf("%w: response is missing required domains field", ErrAnalysis)
	}

	domains := make([]DomainResult, 0, len(Level1Domains))
	for i, domain := range Level1Domains {
		if i < len(parsed.Domains) {
			domains = append(domains, validateDomain(domain, parsed.Domains[i]))
		} else {
			// 模型完全漏掉的域补成全零
			domains = append(domains, emptyDomain(domain))
		}
	}
	if len(parsed.Domains) > len(Level1Domains) {
		for _, extra := range parsed.Domains[len(Level1Domains):] {
			logger.Warnf("extra domain in response: %s", extra.Name)
		}
	}

	domains = validateClinicalConsistency(domains)

	return &Result{
		SchemaVersion: SchemaVersion,
		Domains:       domains,
		Summary:       summarize(domains),
	}, nil
}

// AnalyzeDomain 对一份会谈记录执行单域 Level 2 评估
func (e *Engine) AnalyzeDomain(ctx context.Context, domain, transcript string) (*Level2Result, error) {
	tool, ok := Level2Tools[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}

	processed := PreprocessText(transcript)

	raw, err := e.completer.CompleteJSON(ctx, buildLevel2SystemPrompt(domain, tool), buildLevel2UserPrompt(processed, domain, tool))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	var parsed struct {
		Scores   []interface{} `json:"scores"`
		Evidence []interface{} `json:"evidence"`
	}
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		return nil, err
	}
	if parsed.Scores == nil || parsed.Evidence == nil {
		return nil, fmt.Errorf("%w: response is missing required scores or evidence fields", ErrAnalysis)
	}

	scores := make([]int, len(tool.Questions))
	for i := range tool.Questions {
		if i < len(parsed.Scores) {
			scores[i] = clampScore(parsed.Scores[i])
		}
	}
	scores = rescaleToMax(scores, tool.MaxScore)
	logger.Infof("validated level-2 scores for %s: %v", domain, scores)

	evidence := make([]string, len(tool.Questions))
	for i := range tool.Questions {
		evidence[i] = level2EvidenceSentinel
		if i < len(parsed.Evidence) {
			if s, ok := parsed.Evidence[i].(string); ok && s != "" {
				// 去掉模型顺手写进证据里的评分标注
				evidence[i] = scoreComment.ReplaceAllString(s, "")
			}
		}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	band := tool.BandFor(total)

	return &Level2Result{
		SchemaVersion:  SchemaVersion,
		Domain:         domain,
		Tool:           tool.Name,
		Questions:      tool.Questions,
		Scores:         scores,
		Evidence:       evidence,
		Total:          total,
		MaxScore:       tool.MaxScore,
		Level:          band.Level,
		Recommendation: band.Description,
	}, nil
}

// rescaleToMax 总分超出量表上限时先按比例缩放（四舍六入五成双），
// 因取整仍超限的逐次递减当前最大项直到满足上限
func rescaleToMax(scores []int, maxScore int) []int {
	total := 0
	for _, s := range scores {
		total += s
	}
	if total <= maxScore {
		return scores
	}

	scale := float64(maxScore) / float64(total)
	for i, s := range scores {
		scores[i] = int(math.RoundToEven(float64(s) * scale))
	}

	for {
		total = 0
		for _, s := range scores {
			total += s
		}
		if total <= maxScore {
			break
		}
		maxIdx := 0
		for i, s := range scores {
			if s > scores[maxIdx] {
				maxIdx = i
			}
		}
		scores[maxIdx]--
	}
	return scores
}

// validateDomain 按位置对齐模型输出并做防御性校验：
// 名称以目录为准，分数夹取到[0,4]，证据补齐占位串
func validateDomain(domain Domain, raw rawDomain) DomainResult {
	if raw.Name != domain.Name {
		logger.Debugf("overwriting model domain name %q with %q", raw.Name, domain.Name)
	}

	scores := make([]int, len(domain.Questions))
	for i := range domain.Questions {
		if i < len(raw.Scores) {
			scores[i] = clampScore(raw.Scores[i])
		}
	}

	evidence := make([]string, len(domain.Questions))
	for i := range domain.Questions {
		evidence[i] = evidenceSentinel
		if i < len(raw.Evidence) {
			if s, ok := raw.Evidence[i].(string); ok && strings.TrimSpace(s) != "" {
				evidence[i] = s
			}
		}
	}

	total := 0
	maxScore := 0
	for _, s := range scores {
		total += s
		if s > maxScore {
			maxScore = s
		}
	}

	return DomainResult{
		Name:            domain.Name,
		Questions:       domain.Questions,
		Scores:          scores,
		Evidence:        evidence,
		Total:           total,
		RiskPercentage:  math.Round(float64(total)/float64(domain.MaxScore)*1000) / 10,
		Severity:        SeverityLabel(maxScore),
		Threshold:       domain.Threshold,
		ClinicalConcern: maxScore >= domain.Threshold,
	}
}

func emptyDomain(domain Domain) DomainResult {
	scores := make([]int, len(domain.Questions))
	evidence := make([]string, len(domain.Questions))
	for i := range evidence {
		evidence[i] = missingDomainSentinel
	}
	return DomainResult{
		Name:            domain.Name,
		Questions:       domain.Questions,
		Scores:          scores,
		Evidence:        evidence,
		Total:           0,
		RiskPercentage:  0,
		Severity:        SeverityLabel(0),
		Threshold:       domain.Threshold,
		ClinicalConcern: false,
	}
}

func summarize(domains []DomainResult) Summary {
	summary := Summary{
		ClinicalConcerns: make([]string, 0),
		ConfidenceLevels: make(map[string]string, len(domains)),
		Notes:            make([]string, 0),
	}
	for _, d := range domains {
		if d.ClinicalConcern {
			summary.ClinicalConcerns = append(summary.ClinicalConcerns, d.Name)
		}
		summary.ConfidenceLevels[d.Name] = d.Confidence
		if len(d.ClinicalNotes) > 0 {
			summary.Notes = append(summary.Notes, fmt.Sprintf("%s: %s", d.Name, strings.Join(d.ClinicalNotes, ", ")))
		}
	}
	return summary
}

// clampScore 任意JSON值转为[0,4]内的整数，非数值按0处理
func clampScore(v interface{}) int {
	f, ok := v.(float64)
	if !ok {
		switch n := v.(type) {
		case json.Number:
			parsed, err := n.Float64()
			if err != nil {
				return 0
			}
			f = parsed
		case int:
			f = float64(n)
		default:
			return 0
		}
	}
	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 4 {
		return 4
	}
	return score
}

// unmarshalModelJSON 先直接解析，失败后提取首个成对花括号片段重试
func unmarshalModelJSON(raw string, out interface{}) error {
	if err := json.Unmarshal([]byte(raw), out); err == nil {
		return nil
	}
	logger.Warn("JSON parsing failed, attempting to extract JSON from text")

	match := jsonObjectRe.FindStringSubmatch(raw)
	if match == nil {
		return fmt.Errorf("%w: no JSON object found in the model response", ErrAnalysis)
	}
	if err := json.Unmarshal([]byte(match[1]), out); err != nil {
		return fmt.Errorf("%w: failed to extract valid JSON from the model response", ErrAnalysis)
	}
	return nil
}
