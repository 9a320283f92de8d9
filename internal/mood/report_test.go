package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReportTopThree(t *testing.T) {
	raw := "Index,Sentence,Joy,Sadness,Anger,Fear\n1,hello,0.1,0.5,0.3,0.05"

	got, err := ParseReport(raw)
	assert.NoError(t, err)
	assert.Equal(t, "Sadness: 50.00%, Anger: 30.00%, Joy: 10.00%", got)
}

func TestParseReportFewerThanThreeEmotions(t *testing.T) {
	got, err := ParseReport("Index,Sentence,Joy,Sadness\n1,hi,0.7,0.3")
	assert.NoError(t, err)
	assert.Equal(t, "Joy: 70.00%, Sadness: 30.00%", got)
}

func TestParseReportSingleLineFails(t *testing.T) {
	_, err := ParseReport("onlyoneline")
	assert.ErrorIs(t, err, ErrReportFormat)
}

func TestParseReportEmptyFails(t *testing.T) {
	_, err := ParseReport("")
	assert.ErrorIs(t, err, ErrReportFormat)
}

func TestParseReportBadScoreFails(t *testing.T) {
	_, err := ParseReport("Index,Sentence,Joy,Sadness\n1,hi,0.7,oops")
	assert.ErrorIs(t, err, ErrScoreParse)
}

func TestParseReportTiesKeepColumnOrder(t *testing.T) {
	raw := "Index,Sentence,Joy,Sadness,Anger\n1,hi,0.4,0.4,0.2"

	got, err := ParseReport(raw)
	assert.NoError(t, err)
	// 并列时保持原列顺序（稳定排序）
	assert.Equal(t, "Joy: 40.00%, Sadness: 40.00%, Anger: 20.00%", got)
}

func TestParseReportTrailingWhitespace(t *testing.T) {
	got, err := ParseReport("Index,Sentence,Calm\n1,hi,0.9\n")
	assert.NoError(t, err)
	assert.Equal(t, "Calm: 90.00%", got)
}
