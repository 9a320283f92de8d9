package assessment

import (
	"fmt"

	"solace-backend/pkg/logger"
)

// 症状域间的已知临床相关性（简化版）。
// 有序切片保证备注追加顺序稳定
var domainCorrelations = []struct {
	primary string
	related []string
}{
	{"Depression", []string{"Suicidal Ideation", "Sleep Problems", "Memory"}},
	{"Anxiety", []string{"Sleep Problems", "Somatic Symptoms"}},
	{"Psychosis", []string{"Dissociation"}},
	{"Mania", []string{"Sleep Problems"}},
}

const (
	highPrimaryPercentage = 60.0
	lowRelatedPercentage  = 15.0
)

// validateClinicalConsistency 跨域一致性检查与域内方差检查。
// 只追加说明性备注，不改动任何分数
func validateClinicalConsistency(domains []DomainResult) []DomainResult {
	percentages := make(map[string]float64, len(domains))
	byName := make(map[string]int, len(domains))
	for i, d := range domains {
		maxTotal := 4 * len(d.Scores)
		if maxTotal > 0 {
			percentages[d.Name] = float64(d.Total) / float64(maxTotal) * 100
		}
		byName[d.Name] = i
	}

	for _, corr := range domainCorrelations {
		primary := corr.primary
		primaryPct, ok := percentages[primary]
		if !ok || primaryPct <= highPrimaryPercentage {
			continue
		}
		for _, name := range corr.related {
			relatedPct, ok := percentages[name]
			if !ok || relatedPct >= lowRelatedPercentage {
				continue
			}
			logger.Warnf("clinical inconsistency: %s is high (%.1f%%) but %s is very low (%.1f%%)",
				primary, primaryPct, name, relatedPct)
			idx := byName[name]
			domains[idx].ClinicalNotes = append(domains[idx].ClinicalNotes,
				fmt.Sprintf("Potential underestimation - high %s scores often correlate with %s symptoms", primary, name))
		}
	}

	// 多题域内最高3分以上同时存在0分，提示评估可能不完整
	for i := range domains {
		scores := domains[i].Scores
		if len(scores) < 2 {
			continue
		}
		maxScore, minScore := scores[0], scores[0]
		for _, s := range scores[1:] {
			if s > maxScore {
				maxScore = s
			}
			if s < minScore {
				minScore = s
			}
		}
		if maxScore >= 3 && minScore == 0 {
			domains[i].ClinicalNotes = append(domains[i].ClinicalNotes,
				"High variance in question scores may indicate incomplete assessment")
		}
	}

	for i := range domains {
		domains[i].Confidence = rateConfidence(domains[i])
	}

	return domains
}

// rateConfidence 按证据质量与最高分给出置信度
func rateConfidence(d DomainResult) string {
	var qualitySum, maxScore int
	for _, ev := range d.Evidence {
		switch {
		case ev == "" || ev == evidenceSentinel || ev == missingDomainSentinel || ev == level2EvidenceSentinel:
			qualitySum += 0
		case len(ev) < 20:
			qualitySum++
		default:
			qualitySum += 2
		}
	}
	for _, s := range d.Scores {
		if s > maxScore {
			maxScore = s
		}
	}

	var avgQuality float64
	if len(d.Evidence) > 0 {
		avgQuality = float64(qualitySum) / float64(len(d.Evidence))
	}

	switch {
	case avgQuality > 1.5:
		return "High"
	case avgQuality > 0.5 || maxScore >= 3:
		return "Medium"
	default:
		return "Low"
	}
}
