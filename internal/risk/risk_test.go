package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreKeywordOverride(t *testing.T) {
	opts := DefaultOptions()

	// 无论分类器输出多低，命中关键词都返回提升值
	assert.Equal(t, 0.8, Score("I want to kill myself", 0.0, 0.0, opts))
	assert.Equal(t, 0.8, Score("sometimes I think about SUICIDE", 0.01, 0.02, opts))
	assert.Equal(t, 0.8, Score("my Life Has No Meaning anymore", 0.99, 0.99, opts))
	assert.Equal(t, 0.8, Score("thoughts of self harm again", 0.5, 0.5, opts))
	assert.Equal(t, 0.8, Score("I just want to end my life", 0.3, 0.1, opts))
}

func TestScoreCustomBoostValue(t *testing.T) {
	opts := DefaultOptions()
	opts.BoostValue = 0.95

	assert.Equal(t, 0.95, Score("suicide", 0.0, 0.0, opts))
}

func TestScoreSuicideDominates(t *testing.T) {
	opts := DefaultOptions()

	// 自杀概率达到阈值时原样返回
	assert.Equal(t, 0.5, Score("I feel bad today", 0.9, 0.5, opts))
	assert.Equal(t, 0.73, Score("I feel bad today", 0.1, 0.73, opts))
	assert.Equal(t, 1.0, Score("I feel bad today", 0.0, 1.0, opts))
}

func TestScoreBlendedAverage(t *testing.T) {
	opts := DefaultOptions()

	assert.InDelta(t, 0.3, Score("regular message", 0.4, 0.2, opts), 1e-9)
	assert.InDelta(t, 0.0, Score("regular message", 0.0, 0.0, opts), 1e-9)
	assert.InDelta(t, 0.445, Score("regular message", 0.6, 0.29, opts), 1e-9)
}

func TestScoreMentalScaleNotClamped(t *testing.T) {
	opts := DefaultOptions()
	opts.MentalScale = 2.0

	// 缩放可以把单项推过1，平均前不做夹取
	assert.InDelta(t, 1.0, Score("regular message", 0.9, 0.2, opts), 1e-9)
}

func TestContainsCriticalKeyword(t *testing.T) {
	assert.True(t, ContainsCriticalKeyword("Self Harm"))
	assert.True(t, ContainsCriticalKeyword("...suicide..."))
	assert.False(t, ContainsCriticalKeyword("I love my life"))
	assert.False(t, ContainsCriticalKeyword(""))
}

func TestUpdateWindowAverage(t *testing.T) {
	window := []float64{0.1, 0.9}
	window, avg := UpdateWindow(window, 0.5, 5)

	assert.Equal(t, []float64{0.1, 0.9, 0.5}, window)
	assert.InDelta(t, 0.5, avg, 1e-9)
}

func TestUpdateWindowEvictsOldest(t *testing.T) {
	window := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	window, avg := UpdateWindow(window, 0.6, 5)

	// 第六个分数把最早的挤出去，窗口保持插入顺序的最后五个
	assert.Equal(t, []float64{0.2, 0.3, 0.4, 0.5, 0.6}, window)
	assert.InDelta(t, 0.4, avg, 1e-9)
	assert.Len(t, window, 5)
}

func TestUpdateWindowSeedsFromEmpty(t *testing.T) {
	window, avg := UpdateWindow(nil, 0.8, 5)

	assert.Equal(t, []float64{0.8}, window)
	assert.Equal(t, 0.8, avg)
}

func TestUpdateWindowNeverExceedsCapacity(t *testing.T) {
	var window []float64
	for i := 0; i < 20; i++ {
		window, _ = UpdateWindow(window, float64(i)/20, 5)
		assert.LessOrEqual(t, len(window), 5)
	}
}
