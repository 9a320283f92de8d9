package assessment

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// 聊天格式只认患者侧标签，医生侧标签只参与切分
	chatFormatRe  = regexp.MustCompile(`(?m)^(User|Patient|Me):|\n(User|Patient|Me):|^\[\d{2}:\d{2}\]`)
	speakerSplit  = regexp.MustCompile(`\n(?:(User|Patient|Me|Therapist|Doctor):)`)
	speakerPrefix = regexp.MustCompile(`^(User|Patient|Me|Therapist|Doctor):\s*`)
	multiPeriodRe = regexp.MustCompile(`\.{2,}`)
	spacePunctRe  = regexp.MustCompile(`\s+([.,;:!?])`)
)

// 聊天中常见的情绪符号替换为可分析的短语，顺序固定
var emoticonSubs = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`:[\(\[]`), " feeling sad "},
	{regexp.MustCompile(`:[\)\]]`), " feeling happy "},
	{regexp.MustCompile(`:\|`), " feeling neutral "},
	// 兜底：其余紧跟非空白的冒号组合一律视作情绪符号
	{regexp.MustCompile(`:\S`), " feeling emotional "},
}

// PreprocessText 评估前的文本归一化：
// 聊天格式的记录去掉说话人标签并补齐句末标点，
// 普通文本修正标点，最后做情绪符号替换和空白折叠
func PreprocessText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var processed string
	if chatFormatRe.MatchString(text) {
		segments := splitChatSegments(text)
		parts := make([]string, 0, len(segments))
		for _, segment := range segments {
			content := strings.TrimSpace(speakerPrefix.ReplaceAllString(segment, ""))
			if content == "" {
				continue
			}
			if !strings.HasSuffix(content, ".") && !strings.HasSuffix(content, "?") && !strings.HasSuffix(content, "!") {
				content += "."
			}
			parts = append(parts, content)
		}
		processed = strings.Join(parts, " ")
	} else {
		processed = multiPeriodRe.ReplaceAllString(text, ".")
		processed = spacePunctRe.ReplaceAllString(processed, "$1")
	}

	for _, sub := range emoticonSubs {
		processed = sub.re.ReplaceAllString(processed, sub.replacement)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(processed, " "))
}

func splitChatSegments(text string) []string {
	indices := speakerSplit.FindAllStringIndex(text, -1)
	if len(indices) == 0 {
		return []string{text}
	}
	segments := make([]string, 0, len(indices)+1)
	prev := 0
	for _, loc := range indices {
		segments = append(segments, text[prev:loc[0]])
		prev = loc[0] + 1 // 跳过分隔换行，保留说话人标签给前缀清理
	}
	segments = append(segments, text[prev:])
	return segments
}
