package assessment

// ScoringBand Level 2 量表总分区间的解释
type ScoringBand struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Level2Tool 针对单个症状域的深度评估量表
type Level2Tool struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	MaxScore    int           `json:"max_score"`
	Threshold   int           `json:"threshold"`
	Questions   []string      `json:"questions"`
	Scoring     []ScoringBand `json:"scoring"`
}

// Level2Tools 症状域到 Level 2 量表的映射
var Level2Tools = map[string]Level2Tool{
	"Depression": {
		Name:        "PHQ-9 (Patient Health Questionnaire-9)",
		Description: "A 9-item depression scale to assist clinicians with diagnosing depression and monitoring treatment response.",
		MaxScore:    27,
		Threshold:   10,
		Questions: []string{
			"Little interest or pleasure in doing things",
			"Feeling down, depressed, or hopeless",
			"Trouble falling/staying asleep, sleeping too much",
			"Feeling tired or having little energy",
			"Poor appetite or overeating",
			"Feeling bad about yourself or that you're a failure or have let yourself or your family down",
			"Trouble concentrating on things, such as reading the newspaper or watching television",
			"Moving or speaking so slowly that other people could have noticed, or the opposite—being so fidgety or restless that you have been moving around a lot more than usual",
			"Thoughts that you would be better off dead or of hurting yourself in some way",
		},
		Scoring: []ScoringBand{
			{0, 4, "None to minimal depression", "Monitor; may not require treatment"},
			{5, 9, "Mild depression", "Watchful waiting; consider counseling, follow-up"},
			{10, 14, "Moderate depression", "Treatment plan, counseling, follow-up"},
			{15, 19, "Moderately severe depression", "Active treatment with pharmacotherapy and/or psychotherapy"},
			{20, 27, "Severe depression", "Immediate initiation of pharmacotherapy and, if severe impairment or poor response to therapy, expedited referral to a mental health specialist"},
		},
	},
	"Anxiety": {
		Name:        "GAD-7 (Generalized Anxiety Disorder-7)",
		Description: "A 7-item anxiety scale to screen for and measure the severity of generalized anxiety disorder.",
		MaxScore:    21,
		Threshold:   10,
		Questions: []string{
			"Feeling nervous, anxious, or on edge",
			"Not being able to stop or control worrying",
			"Worrying too much about different things",
			"Trouble relaxing",
			"Being so restless that it's hard to sit still",
			"Becoming easily annoyed or irritable",
			"Feeling afraid as if something awful might happen",
		},
		Scoring: []ScoringBand{
			{0, 4, "Minimal anxiety", "May not require treatment"},
			{5, 9, "Mild anxiety", "Watchful waiting, follow-up"},
			{10, 14, "Moderate anxiety", "Possible clinically significant condition; consider counseling"},
			{15, 21, "Severe anxiety", "Active treatment with pharmacotherapy and/or psychotherapy"},
		},
	},
	"Suicidal Ideation": {
		Name:        "C-SSRS (Columbia-Suicide Severity Rating Scale)",
		Description: "A tool that helps identify whether someone is at risk for suicide.",
		MaxScore:    25,
		Threshold:   6,
		Questions: []string{
			"Have you wished you were dead or wished you could go to sleep and not wake up?",
			"Have you actually had any thoughts about killing yourself?",
			"Have you thought about how you might kill yourself?",
			"Have you had any intention of acting on these thoughts?",
			"Have you started to work out or worked out the details of how to kill yourself? Do you intend to carry out this plan?",
		},
		Scoring: []ScoringBand{
			{0, 5, "Low risk", "Continue monitoring, safety planning if appropriate"},
			{6, 15, "Moderate risk", "Safety planning, increased monitoring, consider referral"},
			{16, 25, "High risk", "Immediate intervention required, safety planning, possible hospitalization"},
		},
	},
	"Anger": {
		Name:        "PROMIS Anger",
		Description: "A measure for evaluating anger in adults.",
		MaxScore:    40,
		Threshold:   27,
		Questions: []string{
			"I felt angry",
			"I felt like I was ready to explode",
			"I was grouchy",
			"I felt annoyed",
			"I felt like I needed to let out my anger",
			"I had trouble controlling my temper",
			"I felt like yelling at someone",
			"I felt like breaking things",
		},
		Scoring: []ScoringBand{
			{0, 13, "Low anger", "Minimal concern; continue monitoring"},
			{14, 26, "Moderate anger", "Consider anger management strategies"},
			{27, 40, "High anger", "Significant concern; intervention recommended"},
		},
	},
	"Mania": {
		Name:        "Altman Self-Rating Mania Scale (ASRM)",
		Description: "A 5-item self-rating mania scale to assess the presence and severity of manic symptoms.",
		MaxScore:    20,
		Threshold:   6,
		Questions: []string{
			"Elevated/Euphoric Mood: Happiness, optimism, self-confidence",
			"Increased Motor Activity/Energy: More energy, more active, more restless",
			"Sexual Interest: More sexual interest, more sexual thoughts, sexual activity",
			"Sleep: Less need for sleep than usual",
			"Irritability: More irritable, more argumentative, less tolerant",
		},
		Scoring: []ScoringBand{
			{0, 5, "No indication of mania", "Continue monitoring if clinical suspicion exists"},
			{6, 10, "Possible hypomania", "Further assessment recommended; consider mood stabilization strategies"},
			{11, 20, "High probability of mania", "Immediate psychiatric evaluation recommended"},
		},
	},
	"Somatic Symptoms": {
		Name:        "PHQ-15 (Patient Health Questionnaire-15)",
		Description: "A 15-item somatic symptom scale to screen for somatization and to monitor somatic symptom severity.",
		MaxScore:    30,
		Threshold:   10,
		Questions: []string{
			"Stomach pain",
			"Back pain",
			"Pain in your arms, legs, or joints",
			"Menstrual cramps or other problems with your periods (women only)",
			"Headaches",
			"Chest pain",
			"Dizziness",
			"Fainting spells",
			"Feeling your heart pound or race",
			"Shortness of breath",
			"Pain or problems during sexual intercourse",
			"Constipation, loose bowels, or diarrhea",
			"Nausea, gas, or indigestion",
			"Feeling tired or having low energy",
			"Trouble sleeping",
		},
		Scoring: []ScoringBand{
			{0, 4, "Minimal somatic symptoms", "Normal range; no intervention needed"},
			{5, 9, "Low somatic symptoms", "Monitor symptoms; consider physical evaluation if persistent"},
			{10, 14, "Medium somatic symptoms", "Consider comprehensive evaluation for physical and psychological factors"},
			{15, 30, "High somatic symptoms", "Significant somatization likely; comprehensive treatment plan recommended"},
		},
	},
	"Psychosis": {
		Name:        "PRIME Screen-Revised",
		Description: "A 12-item self-report screen designed to identify individuals who may be experiencing early signs of psychosis.",
		MaxScore:    24,
		Threshold:   7,
		Questions: []string{
			"I think that I have felt that there are odd or unusual things going on that I can't explain.",
			"I think that I might be able to predict the future.",
			"I may have felt that there could possibly be something interrupting or controlling my thoughts, feelings, or actions.",
			"I have had the experience of doing something differently because of my superstitions.",
			"I think that I may get confused at times whether something I experience or perceive may be real or may be just part of my imagination or dreams.",
			"I have thought that it might be possible that other people can read my mind, or that I can read others' minds.",
		},
		Scoring: []ScoringBand{
			{0, 6, "Low likelihood of psychosis risk", "Continue monitoring if concerns persist"},
			{7, 13, "Possible psychosis risk", "Further specialized assessment recommended"},
			{14, 24, "High likelihood of psychosis risk", "Prompt psychiatric evaluation recommended"},
		},
	},
	"Sleep Problems": {
		Name:        "ISI (Insomnia Severity Index)",
		Description: "A 7-item self-report questionnaire assessing the nature, severity, and impact of insomnia.",
		MaxScore:    28,
		Threshold:   15,
		Questions: []string{
			"Difficulty falling asleep",
			"Difficulty staying asleep",
			"Problems waking up too early",
			"How satisfied/dissatisfied are you with your current sleep pattern?",
			"How noticeable to others do you think your sleep problem is in terms of impairing the quality of your life?",
			"How worried/distressed are you about your current sleep problem?",
			"To what extent do you consider your sleep problem to interfere with your daily functioning currently?",
		},
		Scoring: []ScoringBand{
			{0, 7, "No clinically significant insomnia", "No intervention needed"},
			{8, 14, "Subthreshold insomnia", "Sleep hygiene education may be helpful"},
			{15, 21, "Moderate clinical insomnia", "Treatment indicated; sleep hygiene, cognitive-behavioral therapy"},
			{22, 28, "Severe clinical insomnia", "Severe insomnia requiring comprehensive treatment approach"},
		},
	},
	"Memory": {
		Name:        "PROMIS Cognitive Function",
		Description: "A measure of perceived cognitive abilities.",
		MaxScore:    40,
		Threshold:   14,
		Questions: []string{
			"I have had to work harder than usual to keep track of what I was doing",
			"I have had trouble shifting back and forth between different activities that require thinking",
			"My thinking has been slow",
			"I have had trouble forming thoughts",
			"I have had trouble adding or subtracting numbers in my head",
			"I have had trouble figuring out what I meant to do once I got there",
			"I have had trouble finding my way to a familiar place",
			"I have had trouble concentrating",
		},
		Scoring: []ScoringBand{
			{0, 13, "Severe cognitive concerns", "Comprehensive neuropsychological evaluation recommended"},
			{14, 26, "Moderate cognitive concerns", "Further assessment recommended; consider cognitive interventions"},
			{27, 40, "Minimal cognitive concerns", "Monitor if symptoms persist"},
		},
	},
	"Repetitive Thoughts and Behaviors": {
		Name:        "FOCI (Florida Obsessive-Compulsive Inventory)",
		Description: "A self-report measure of obsessive-compulsive symptoms.",
		MaxScore:    20,
		Threshold:   8,
		Questions: []string{
			"Time occupied by obsessive thoughts",
			"Interference from obsessive thoughts",
			"Distress from obsessive thoughts",
			"Resistance to obsessive thoughts",
			"Control over obsessive thoughts",
			"Time spent performing compulsive behaviors",
			"Interference from compulsive behaviors",
			"Distress from compulsive behaviors",
			"Resistance to compulsive behaviors",
			"Control over compulsive behaviors",
		},
		Scoring: []ScoringBand{
			{0, 7, "Minimal OCD symptoms", "Monitor if symptoms persist"},
			{8, 13, "Moderate OCD symptoms", "Further assessment and possible intervention recommended"},
			{14, 20, "Severe OCD symptoms", "Specialized OCD treatment recommended"},
		},
	},
	"Dissociation": {
		Name:        "DES-II (Dissociative Experiences Scale)",
		Description: "A 28-item self-report measure of dissociative symptoms.",
		MaxScore:    40,
		Threshold:   20,
		Questions: []string{
			"Some people have the experience of finding themselves in a place and having no idea how they got there.",
			"Some people have the experience of finding themselves dressed in clothes that they don't remember putting on.",
			"Some people have the experience of finding new things among their belongings that they do not remember buying.",
			"Some people sometimes find that they are approached by people that they do not know who call them by another name or insist that they have met them before.",
			"Some people have the experience of feeling as though they are standing next to themselves or watching themselves do something and they actually see themselves as if they were looking at another person.",
		},
		Scoring: []ScoringBand{
			{0, 10, "Normal range", "No clinical concern"},
			{11, 20, "Mild dissociation", "Monitor for exacerbation; consider addressing triggers"},
			{21, 30, "Moderate dissociation", "Clinical intervention recommended; trauma-focused therapy may be beneficial"},
			{31, 40, "Severe dissociation", "Comprehensive trauma-focused treatment recommended"},
		},
	},
	"Personality Functioning": {
		Name:        "PID-5 (Personality Inventory for DSM-5)",
		Description: "A self-rated personality trait assessment scale for adults.",
		MaxScore:    40,
		Threshold:   14,
		Questions: []string{
			"I don't get as much pleasure out of things as others seem to.",
			"I feel like I act totally on impulse.",
			"I often have thoughts that make sense to me but that other people say are strange.",
			"I avoid risky situations.",
			"It's no big deal if I hurt other people's feelings.",
			"I rarely get enthusiastic about anything.",
			"I go out of my way to avoid any kind of conflict.",
			"I'm inflexible in my ways, even when it would clearly be to my advantage to change.",
		},
		Scoring: []ScoringBand{
			{0, 13, "Low personality dysfunction", "Minimal clinical concern"},
			{14, 26, "Moderate personality dysfunction", "Further assessment and possible intervention recommended"},
			{27, 40, "High personality dysfunction", "Comprehensive personality assessment and treatment recommended"},
		},
	},
	"Substance Use": {
		Name:        "ASSIST (Alcohol, Smoking and Substance Involvement Screening Test)",
		Description: "A screening test to assess use of psychoactive substances.",
		MaxScore:    39,
		Threshold:   11,
		Questions: []string{
			"In your life, which of the following substances have you ever used?",
			"In the past three months, how often have you used the substances you mentioned?",
			"In the past three months, how often have you had a strong desire or urge to use?",
			"In the past three months, how often has your use of substances led to health, social, legal, or financial problems?",
			"In the past three months, how often have you failed to do what was normally expected of you because of your use of substances?",
			"Has a friend or relative or anyone else ever expressed concern about your use of substances?",
			"Have you ever tried and failed to control, cut down or stop using substances?",
		},
		Scoring: []ScoringBand{
			{0, 10, "Low risk", "General education on substance use"},
			{11, 26, "Moderate risk", "Brief intervention and monitoring recommended"},
			{27, 39, "High risk", "Intensive assessment and treatment recommended"},
		},
	},
}

// BandFor 返回总分落入的解释区间
func (t Level2Tool) BandFor(total int) ScoringBand {
	for _, band := range t.Scoring {
		if total >= band.Min && total <= band.Max {
			return band
		}
	}
	return t.Scoring[len(t.Scoring)-1]
}
