package risk

const (
	// DefaultWindowSize 滑动窗口容量
	DefaultWindowSize = 5
	// DefaultRiskThreshold 窗口均值达到该值时触发告警消息
	DefaultRiskThreshold = 0.7
)

// UpdateWindow 把新风险分追加到窗口尾部，超出容量时从头部淘汰，
// 返回更新后的窗口和当前算术均值。窗口至少包含一个元素后均值才有意义
func UpdateWindow(window []float64, score float64, capacity int) ([]float64, float64) {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	window = append(window, score)
	for len(window) > capacity {
		window = window[1:]
	}
	var sum float64
	for _, v := range window {
		sum += v
	}
	return window, sum / float64(len(window))
}
