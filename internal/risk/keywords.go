// Package risk 实现逐条消息的组合风险评分与滑动窗口聚合。
package risk

import "strings"

// 高危关键词，命中任意一个即触发评分短路
var criticalKeywords = []string{
	"self harm",
	"suicide",
	"kill myself",
	"end my life",
	"life has no meaning",
}

// ContainsCriticalKeyword 大小写不敏感的子串匹配
func ContainsCriticalKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range criticalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
