// Package mood 解析情绪分析接口返回的表格报告。
package mood

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrReportFormat 报告不足两行（表头+数据行）
	ErrReportFormat = errors.New("invalid mood report format")
	// ErrScoreParse 数据行中的分数无法解析为浮点数
	ErrScoreParse = errors.New("error parsing mood scores")
)

const topEmotions = 3

// ParseReport 把两行CSV报告转成排名前三的情绪摘要。
// 表头前两列是序号和句子标签，忽略；其余列是情绪名，
// 数据行按位置对齐为分数。并列时保持原列顺序
func ParseReport(raw string) (string, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return "", ErrReportFormat
	}

	headerFields := strings.Split(lines[0], ",")
	dataFields := strings.Split(lines[1], ",")

	var emotions, rawScores []string
	if len(headerFields) > 2 {
		emotions = headerFields[2:]
	}
	if len(dataFields) > 2 {
		rawScores = dataFields[2:]
	}

	scores := make([]float64, 0, len(rawScores))
	for _, field := range rawScores {
		score, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", ErrScoreParse
		}
		scores = append(scores, score)
	}

	n := len(emotions)
	if len(scores) < n {
		n = len(scores)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	top := topEmotions
	if n < top {
		top = n
	}

	parts := make([]string, 0, top)
	for _, idx := range indices[:top] {
		parts = append(parts, fmt.Sprintf("%s: %.2f%%", strings.TrimSpace(emotions[idx]), scores[idx]*100))
	}
	return strings.Join(parts, ", "), nil
}
