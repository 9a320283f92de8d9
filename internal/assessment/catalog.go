// Package assessment 实现 DSM-5 结构化评估流水线：
// Level 1 跨领域症状筛查和针对单个症状域的 Level 2 深度评估。
package assessment

// Domain DSM-5 Level 1 跨领域症状量表中的一个症状域。
// 固定参考数据，问题数决定满分（每题0-4分）
type Domain struct {
	Name      string
	Questions []string
	MaxScore  int
	Threshold int
}

// Level1Domains Level 1 筛查的13个固定症状域
var Level1Domains = []Domain{
	{
		Name: "Depression",
		Questions: []string{
			"Little interest or pleasure in doing things",
			"Feeling down, depressed, or hopeless",
		},
		MaxScore:  8,
		Threshold: 2,
	},
	{
		Name: "Anger",
		Questions: []string{
			"Feeling more irritated, grouchy, or angry than usual",
		},
		MaxScore:  4,
		Threshold: 2,
	},
	{
		Name: "Mania",
		Questions: []string{
			"Sleeping less than usual, but still have a lot of energy",
			"Starting lots more projects than usual or doing more risky things than usual",
		},
		MaxScore:  8,
		Threshold: 2,
	},
	{
		Name: "Anxiety",
		Questions: []string{
			"Feeling nervous, anxious, frightened, worried, or on edge",
			"Feeling panic or being frightened",
			"Avoiding situations that make you anxious",
		},
		MaxScore:  12,
		Threshold: 2,
	},
	{
		Name: "Somatic Symptoms",
		Questions: []string{
			"Unexplained aches and pains",
			"Feeling that your illnesses are not being taken seriously enough",
		},
		MaxScore:  8,
		Threshold: 2,
	},
	{
		Name: "Suicidal Ideation",
		Questions: []string{
			"Thoughts of actually hurting yourself",
		},
		MaxScore:  4,
		// 自杀意念采用更低的临床阈值
		Threshold: 1,
	},
	{
		Name: "Psychosis",
		Questions: []string{
			"Hearing things other people couldn't hear, such as voices",
			"Feeling that someone could hear your thoughts, or that you could hear what another person was thinking",
		},
		MaxScore:  8,
		Threshold: 1,
	},
	{
		Name: "Sleep Problems",
		Questions: []string{
			"Problems with sleep that affected your sleep quality",
		},
		MaxScore:  4,
		Threshold: 2,
	},
	{
		Name: "Memory",
		Questions: []string{
			"Problems with memory",
		},
		MaxScore:  4,
		Threshold: 2,
	},
	{
		Name: "Repetitive Thoughts and Behaviors",
		Questions: []string{
			"Unpleasant thoughts, urges, or images that repeatedly enter your mind",
			"Feeling driven to perform certain behaviors or mental acts over and over again",
		},
		MaxScore:  8,
		Threshold: 2,
	},
	{
		Name: "Dissociation",
		Questions: []string{
			"Feeling detached or distant from yourself, your body, your physical surroundings, or your memories",
		},
		MaxScore:  4,
		Threshold: 2,
	},
	{
		Name: "Personality Functioning",
		Questions: []string{
			"Not knowing who you really are or what you want out of life",
			"Not feeling close to other people or enjoying relationships",
		},
		MaxScore:  8,
		Threshold: 2,
	},
	{
		Name: "Substance Use",
		Questions: []string{
			"Drinking at least 4 drinks of any kind of alcohol in a single day",
			"Smoking any cigarettes, a cigar, or pipe, or using snuff or chewing tobacco",
			"Using any of the following medicines on your own: pain medications, stimulants, sedatives or tranquilizers, or drugs like marijuana, cocaine or crack, club drugs, hallucinogens, heroin, inhalants, or methamphetamine",
		},
		MaxScore:  12,
		Threshold: 1,
	},
}

// 严重程度分级，按域内单题最高分取档
var severityLabels = []string{
	"None",
	"Slight/Rare",
	"Mild",
	"Moderate",
	"Severe",
}

// SeverityLabel 返回 0-4 分对应的严重程度标签
func SeverityLabel(maxScore int) string {
	if maxScore < 0 || maxScore >= len(severityLabels) {
		return severityLabels[0]
	}
	return severityLabels[maxScore]
}
