package risk

// Options 组合评分参数
type Options struct {
	MentalScale      float64
	SuicideThreshold float64
	BoostValue       float64
}

// DefaultOptions 与线上使用的默认参数一致
func DefaultOptions() Options {
	return Options{
		MentalScale:      1.0,
		SuicideThreshold: 0.5,
		BoostValue:       0.8,
	}
}

// Score 把关键词命中与两个分类器概率合成单一风险分。
// 规则按顺序生效：
//  1. 命中高危关键词直接返回 BoostValue；
//  2. 自杀分类器概率达到阈值时以它为准；
//  3. 否则取缩放后的抑郁分与自杀分的均值。
//
// 概率输入假定已在 [0,1]，这里不做夹取
func Score(text string, mentalProb, suicideProb float64, opts Options) float64 {
	if ContainsCriticalKeyword(text) {
		return opts.BoostValue
	}
	mentalScore := mentalProb * opts.MentalScale
	if suicideProb >= opts.SuicideThreshold {
		return suicideProb
	}
	return (mentalScore + suicideProb) / 2
}
