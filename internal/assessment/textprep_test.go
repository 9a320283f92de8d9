package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessTextChatFormat(t *testing.T) {
	input := "User: I feel sad\nTherapist: tell me more\nUser: I can't sleep"

	got := PreprocessText(input)
	assert.Equal(t, "I feel sad. tell me more. I can't sleep.", got)
}

func TestPreprocessTextKeepsTerminalPunctuation(t *testing.T) {
	input := "User: I feel sad.\nTherapist: why?"

	got := PreprocessText(input)
	assert.Equal(t, "I feel sad. why?", got)
}

func TestPreprocessTextPlainPunctuation(t *testing.T) {
	input := "I was tired... and sad ."

	got := PreprocessText(input)
	assert.Equal(t, "I was tired. and sad.", got)
}

func TestPreprocessTextEmoticons(t *testing.T) {
	assert.Equal(t, "I am ok feeling sad", PreprocessText("I am ok :("))
	assert.Equal(t, "great day feeling happy", PreprocessText("great day :)"))
	assert.Equal(t, "just tired feeling neutral", PreprocessText("just tired :|"))
	// 未单列的表情走兜底替换
	assert.Equal(t, "I am so done feeling emotional", PreprocessText("I am so done :D"))
	assert.Equal(t, "not sure about this feeling emotional", PreprocessText("not sure about this :/"))
}

func TestPreprocessTextTherapistLabelsAloneAreNotChatFormat(t *testing.T) {
	// 只有医生侧标签的文本不按聊天记录切分
	got := PreprocessText("Therapist: the patient reports low mood")
	assert.Equal(t, "Therapist: the patient reports low mood", got)
}

func TestPreprocessTextWhitespaceCollapse(t *testing.T) {
	got := PreprocessText("too   many    spaces\t here")
	assert.Equal(t, "too many spaces here", got)
}

func TestPreprocessTextEmpty(t *testing.T) {
	assert.Equal(t, "", PreprocessText(""))
	assert.Equal(t, "", PreprocessText("   \n  "))
}
