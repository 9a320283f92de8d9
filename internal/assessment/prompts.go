package assessment

import (
	"fmt"
	"strings"
)

// Level 1 筛查的系统提示词，强调使用0-4全量程打分
const level1SystemPrompt = `You are a specialized mental health analysis assistant trained specifically on the DSM-5 Level 1 Cross-Cutting Symptom Measure (Adult Version).

SCORING GUIDELINES:
0: None - No evidence at all of the symptom
1: Slight/Rare - Very minimal evidence, mentioned in passing, or a single isolated instance
2: Mild/Several days - Clear but infrequent or low-intensity evidence appearing in multiple contexts
3: Moderate/More than half the days - Strong evidence appearing consistently or with moderate intensity
4: Severe/Nearly every day - Overwhelming evidence or explicit statements about severe and frequent symptoms

IMPORTANT SCORING RULES:
- Use the FULL RANGE of scores from 0-4 based on the evidence severity
- Do NOT limit scores to 2 or below - use 3 and 4 when evidence supports it
- Provide specific quotes that justify each score, with context
- Consider frequency, intensity, duration, and distress when scoring
- Look for patterns across the entire text rather than isolated mentions
- If a symptom is explicitly denied, score it as 0
- When you see clear evidence of moderate (3) or severe (4) symptoms, score accordingly

EXAMPLES OF HIGHER SCORES (3-4):
- For score 3 (Moderate): Evidence shows symptoms occur "more than half the days" or with "significant intensity"
- For score 4 (Severe): Evidence shows symptoms are "nearly constant" or "overwhelming" or "severely impairing"

Your analysis must be evidence-based, objective, clinically meaningful, and use the FULL SCORING RANGE.
Format your response as a JSON object with no additional explanation.`

const level1PromptTail = `
EXAMPLES OF PROPER SCORING:

Example 1: "I've been having trouble sleeping the past couple weeks. I wake up around 3am most nights."
Score: 3 (Moderate/More than half the days)
Evidence: "I wake up around 3am most nights."
Rationale: The phrase "most nights" indicates frequency of more than half the days.

Example 2: "Sometimes I get a bit nervous before presentations."
Score: 1 (Slight/Rare)
Evidence: "Sometimes I get a bit nervous before presentations."
Rationale: "Sometimes" and "a bit" indicate low frequency and intensity.

Example 3: "I can't focus on anything. My mind is constantly racing with worry about everything."
Score: 4 (Severe/Nearly every day)
Evidence: "I can't focus on anything. My mind is constantly racing with worry about everything."
Rationale: "Constantly" indicates very high frequency, and "can't focus on anything" suggests severity.

Remember to quote specific text as evidence for each score you assign.

If no evidence is found for a question, use "No explicit evidence found in the text." as the evidence string.

Respond with only a JSON object in this exact format:
{
  "domains": [
    {
      "name": "Domain name",
      "scores": [score1, score2, ...],
      "evidence": ["Direct quote from text as evidence for score 1", "Direct quote from text as evidence for score 2", ...],
      "total": totalScore
    },
    ... (repeat for all domains)
  ]
}`

// buildLevel1UserPrompt 枚举全部13个症状域及其问题，保证响应按位置对齐
func buildLevel1UserPrompt(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Text to analyze:\n\n%s\n\nPlease analyze the above text and complete the DSM-5 Level 1 Cross-Cutting Symptom Measure:\n", text)

	questionIndex := 1
	for i, domain := range Level1Domains {
		fmt.Fprintf(&b, "\nDomain %d. %s:\n", i+1, domain.Name)
		for _, question := range domain.Questions {
			fmt.Fprintf(&b, "%d. %s\n", questionIndex, question)
			questionIndex++
		}
	}

	b.WriteString(level1PromptTail)
	return b.String()
}

func buildLevel2SystemPrompt(domain string, tool Level2Tool) string {
	return fmt.Sprintf(`You are a specialized mental health assessment assistant trained on the %s.
You will carefully analyze therapy session text to identify evidence of symptoms related to %s.

SCORING GUIDELINES:
0: None - No evidence at all of the symptom
1: Slight/Rare - Very minimal evidence, mentioned in passing, or a single isolated instance
2: Mild/Several days - Clear but infrequent or low-intensity evidence appearing in multiple contexts
3: Moderate/More than half the days - Strong evidence appearing consistently or with moderate intensity
4: Severe/Nearly every day - Overwhelming evidence or explicit statements about severe and frequent symptoms

IMPORTANT SCORING RULES:
- Use the FULL RANGE of scores from 0-4 based on the evidence severity
- Provide specific quotes from the session text that justify each score
- Consider frequency, intensity, duration, and distress when scoring
- If a symptom is explicitly denied, score it as 0

Format your response as a JSON object with no additional explanation.`, tool.Name, domain)
}

func buildLevel2UserPrompt(transcript, domain string, tool Level2Tool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Therapy session text to analyze:\n\n%s\n\nPlease analyze the above therapy session transcript and complete the %s for %s:\n", transcript, tool.Name, domain)

	for i, question := range tool.Questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, question)
	}

	b.WriteString(`

IMPORTANT: Your response must be valid JSON with no annotations within the strings.

Respond with ONLY this exact JSON format:
{
  "scores": [score1, score2, ...],
  "evidence": ["Direct quote from text", "Direct quote from text", ...]
}

For evidence, include ONLY the direct quotes without any annotations, explanations, or score indicators in parentheses.
For example, use "I feel sad" NOT "I feel sad (score 2)".

If no evidence is found for a question, use "No specific evidence found in the session." as the evidence string.`)
	return b.String()
}
