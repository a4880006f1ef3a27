// Package assessment turns resumes, code submissions, and interview requests into
// validated scores by prompting a language model and coercing its output.
package assessment

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/prompts"
	"github.com/jonathan/career-prep/internal/types"
)

// MaxResumeChars bounds how much resume text is embedded in a prompt
const MaxResumeChars = 4000

// CompanyInfo is the evaluation context for a target company
type CompanyInfo struct {
	Tier      string
	Standards string
}

// Company tier names
const (
	CompanyTier1    = "Tier 1"
	CompanyTier2    = "Tier 2"
	CompanyTier3    = "Tier 3"
	CompanyStartup  = "Startup"
	CompanyStandard = "Standard"
)

var companyTiers = map[string]CompanyInfo{
	"google":    {CompanyTier1, "Extremely high standards, exceptional problem-solving, system design expertise, strong CS fundamentals, competitive programming background preferred"},
	"microsoft": {CompanyTier1, "Very high standards, strong technical depth, leadership qualities, innovation mindset, proven track record"},
	"apple":     {CompanyTier1, "Exceptional standards, attention to detail, user-centric thinking, technical excellence, design sensibility"},
	"amazon":    {CompanyTier1, "High standards, customer obsession, ownership mentality, scalability thinking, leadership principles"},
	"meta":      {CompanyTier1, "Very high standards, fast-paced environment, impact-driven, technical depth, social impact awareness"},
	"netflix":   {CompanyTier1, "Extremely high performance standards, freedom and responsibility culture, senior-level expectations"},
	"tesla":     {CompanyTier1, "High standards, innovation focus, fast execution, mission-driven, technical excellence"},
	"reliance":  {CompanyTier1, "High standards for Indian market leader, business acumen, scale thinking, diverse domain knowledge"},
	"tata":      {CompanyTier1, "Strong standards, ethical leadership, business understanding, long-term thinking"},

	"uber":       {CompanyTier2, "Good standards, real-world problem solving, scalability awareness, business impact focus"},
	"airbnb":     {CompanyTier2, "Good standards, user experience focus, community building, global perspective"},
	"spotify":    {CompanyTier2, "Good standards, creative problem solving, user engagement focus, data-driven approach"},
	"linkedin":   {CompanyTier2, "Good standards, professional network understanding, B2B focus, relationship building"},
	"salesforce": {CompanyTier2, "Good standards, enterprise software experience, customer success focus, cloud expertise"},

	"zomato":   {CompanyTier3, "Moderate standards, local market understanding, growth mindset, adaptability"},
	"swiggy":   {CompanyTier3, "Moderate standards, operational efficiency, customer service focus, rapid scaling experience"},
	"paytm":    {CompanyTier3, "Moderate standards, fintech knowledge, regulatory awareness, user adoption focus"},
	"flipkart": {CompanyTier3, "Moderate standards, e-commerce experience, Indian market knowledge, customer-centric approach"},
	"ola":      {CompanyTier3, "Moderate standards, mobility solutions, real-time systems, local market adaptation"},
	"byju":     {CompanyTier3, "Moderate standards, edtech focus, content creation, learning psychology understanding"},

	"startup": {CompanyStartup, "Flexible standards, adaptability, multi-tasking ability, growth potential, learning agility"},
}

var defaultCompany = CompanyInfo{CompanyStandard, "Standard industry requirements, relevant skills, good communication, team collaboration"}

var levelContext = map[types.ExperienceTier]string{
	types.TierFresher: "0-1 years experience, focus on potential, learning ability, projects, and academic achievements",
	types.TierJunior:  "1-3 years experience, basic professional skills, some real-world experience",
	types.TierMid:     "3-5 years experience, solid professional skills, proven track record",
	types.TierSenior:  "5-8 years experience, advanced skills, leadership potential, complex problem solving",
	types.TierLead:    "8+ years experience, expert-level skills, leadership, mentoring, strategic thinking",
}

// ClassifyCompany looks a company up by lower-cased name. Unknown names get the standard tier.
func ClassifyCompany(name string) CompanyInfo {
	if info, ok := companyTiers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return info
	}
	return defaultCompany
}

// EvaluationStandards returns the bar applied for a company tier at an experience level.
func EvaluationStandards(companyTier string, level types.ExperienceTier) string {
	fresher := level == types.TierFresher
	switch companyTier {
	case CompanyTier1:
		if fresher {
			return "Very high standards even for freshers: exceptional academic projects, competitive programming, strong fundamentals, internship experience at reputable companies, open source contributions"
		}
		return "Extremely high standards: proven expertise, system design skills, leadership experience, significant impact in previous roles, thought leadership"
	case CompanyTier2:
		if fresher {
			return "High standards for freshers: good academic projects, some practical experience, strong technical skills, learning agility"
		}
		return "High standards: solid technical skills, proven track record, good problem-solving abilities, team collaboration"
	case CompanyTier3:
		if fresher {
			return "Moderate standards for freshers: relevant projects, basic technical skills, enthusiasm to learn, cultural fit"
		}
		return "Moderate standards: relevant experience, good technical foundation, adaptability, growth mindset"
	default:
		if fresher {
			return "Standard requirements: basic technical skills, some projects, willingness to learn"
		}
		return "Standard requirements: relevant experience, technical competency, team fit"
	}
}

// LevelContext describes what is expected at a tier; unknown tiers get the mid-level text.
func LevelContext(level types.ExperienceTier) string {
	if ctx, ok := levelContext[level]; ok {
		return ctx
	}
	return levelContext[types.TierMid]
}

// Output shapes requested from the model
var (
	ProfileSchema = llm.OutputSchema{
		Name: "ParsedProfile",
		Fields: []llm.SchemaField{
			{Name: "name", Example: `"Full Name"`},
			{Name: "email", Example: `"email@example.com"`},
			{Name: "phone", Example: `"phone number"`},
			{Name: "skills", Example: `["skill1", "skill2"]`},
			{Name: "experience", Example: `[{"company": "Company", "role": "Title", "duration": "2020-2023", "description": "Brief description"}]`},
			{Name: "education", Example: `[{"institution": "University", "degree": "Bachelor's", "field": "Computer Science", "year": "2020"}]`},
			{Name: "projects", Example: `[{"name": "Project Name", "description": "Brief description", "technologies": ["tech1", "tech2"], "type": "personal/academic/professional"}]`},
			{Name: "certifications", Example: `["Certification Name"]`},
			{Name: "summary", Example: `"Professional summary"`},
		},
	}

	FitScoreSchema = llm.OutputSchema{
		Name: "FitScore",
		Fields: []llm.SchemaField{
			{Name: "score", Example: "85"},
			{Name: "breakdown", Example: `{"skills_match": 80, "experience_match": 75, "education_match": 70, "projects_match": 90}`},
			{Name: "strengths", Example: `["Strong project portfolio with relevant technologies", "Demonstrates practical application of skills"]`},
			{Name: "gaps", Example: `["Could benefit from more experience with X", "Consider learning Y for this role"]`},
			{Name: "suggestions", Example: `["Build more projects using technology X", "Consider contributing to open source projects"]`},
		},
	}

	CodeAnalysisSchema = llm.OutputSchema{
		Name: "CodeAnalysis",
		Fields: []llm.SchemaField{
			{Name: "correctness", Example: `{"score": 0-100, "explanation": "detailed explanation of correctness", "issues": ["list of issues found"]}`},
			{Name: "timeComplexity", Example: `{"current": "O(n) notation", "optimal": "O(n) notation", "explanation": "detailed complexity analysis"}`},
			{Name: "spaceComplexity", Example: `{"current": "O(n) notation", "optimal": "O(n) notation", "explanation": "detailed space analysis"}`},
			{Name: "codeQuality", Example: `{"score": 0-100, "strengths": ["list of good practices"], "improvements": ["list of suggested improvements"]}`},
			{Name: "approach", Example: `{"description": "explanation of the approach used", "isOptimal": true/false, "alternativeApproaches": ["list of alternative approaches"]}`},
			{Name: "optimizedSolution", Example: `{"code": "optimized version of the code", "explanation": "why this is better"}`},
			{Name: "learningPoints", Example: `["key concepts to understand"]`},
			{Name: "overallScore", Example: "0-100"},
			{Name: "feedback", Example: `"encouraging and constructive feedback"`},
		},
	}

	QuestionSchema = llm.OutputSchema{
		Name:  "InterviewQuestion",
		Array: true,
		Fields: []llm.SchemaField{
			{Name: "id", Example: "1"},
			{Name: "question", Example: `"Question text here"`},
			{Name: "options", Example: `["Option A", "Option B", "Option C", "Option D"]`},
			{Name: "correctAnswer", Example: "0"},
			{Name: "explanation", Example: `"Detailed explanation of why this answer is correct"`},
			{Name: "difficulty", Example: `"medium"`},
			{Name: "category", Example: `"Technical Knowledge"`},
		},
	}

	AnswerEvaluationSchema = llm.OutputSchema{
		Name: "AnswerEvaluation",
		Fields: []llm.SchemaField{
			{Name: "score", Example: "7"},
			{Name: "feedback", Example: `"What the answer did well and what it missed"`},
			{Name: "strengths", Example: `["strong point"]`},
			{Name: "improvements", Example: `["what to add next time"]`},
		},
	}
)

// TruncateResume keeps at most MaxResumeChars characters of text without splitting a rune.
func TruncateResume(text string) string {
	if utf8.RuneCountInString(text) <= MaxResumeChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxResumeChars])
}

// BuildParsePrompt builds the resume extraction instruction.
func BuildParsePrompt(text string) string {
	return prompts.Format(prompts.MustGet(prompts.AssessmentFile, "parse-resume"), map[string]string{
		"Schema":     llm.RenderSchema(ProfileSchema),
		"ResumeText": TruncateResume(text),
	})
}

// BuildFitPrompt builds the job-fit scoring instruction for one configuration.
func BuildFitPrompt(profile types.ParsedProfile, cfg types.JobConfiguration) string {
	company := ClassifyCompany(cfg.Company)

	companyLabel, companyName := cfg.Company, cfg.Company
	if companyLabel == "" {
		companyLabel, companyName = "a company", "Company"
	}

	requirements := ""
	if len(cfg.Requirements) > 0 {
		requirements = "Specific Requirements: " + strings.Join(cfg.Requirements, ", ")
	}

	return prompts.Format(prompts.MustGet(prompts.AssessmentFile, "fit-score"), map[string]string{
		"Company":             companyLabel,
		"CompanyName":         companyName,
		"CompanyTier":         company.Tier,
		"CompanyStandards":    company.Standards,
		"EvaluationStandards": EvaluationStandards(company.Tier, cfg.Tier),
		"Level":               string(cfg.Tier),
		"LevelContext":        LevelContext(cfg.Tier),
		"Schema":              llm.RenderSchema(FitScoreSchema),
		"Name":                profile.Name,
		"Skills":              mustJSON(profile.Skills),
		"Experience":          mustJSON(profile.Experience),
		"Education":           mustJSON(profile.Education),
		"Projects":            mustJSON(profile.Projects),
		"Certifications":      mustJSON(profile.Certifications),
		"Requirements":        requirements,
		"Role":                cfg.Role,
		"Years":               strconv.Itoa(cfg.Years),
	})
}

// BuildCodePrompt builds the code review instruction and its system message.
func BuildCodePrompt(sub types.CodeSubmission) (system, prompt string) {
	system = prompts.MustGet(prompts.AssessmentFile, "code-analysis-system")
	prompt = prompts.Format(prompts.MustGet(prompts.AssessmentFile, "code-analysis"), map[string]string{
		"Title":       sub.ProblemTitle,
		"Description": sub.ProblemDescription,
		"Language":    sub.Language,
		"Code":        sub.Code,
		"Schema":      llm.RenderSchema(CodeAnalysisSchema),
	})
	return system, prompt
}

// BuildQuestionPrompt builds the question generation system and user messages.
func BuildQuestionPrompt(role string, count int) (system, prompt string) {
	data := map[string]string{
		"Count":      strconv.Itoa(count),
		"Role":       role,
		"Categories": strings.Join(types.QuestionCategories, ", "),
		"Schema":     llm.RenderSchema(QuestionSchema),
	}
	system = prompts.Format(prompts.MustGet(prompts.AssessmentFile, "questions-system"), data)
	prompt = prompts.Format(prompts.MustGet(prompts.AssessmentFile, "questions-user"), data)
	return system, prompt
}

// BuildEvaluatePrompt builds the open-ended answer grading instruction.
func BuildEvaluatePrompt(req types.EvaluateAnswerRequest) string {
	return prompts.Format(prompts.MustGet(prompts.AssessmentFile, "evaluate-answer"), map[string]string{
		"Role":     req.Role,
		"Question": req.Question,
		"Answer":   req.Answer,
		"Schema":   llm.RenderSchema(AnswerEvaluationSchema),
	})
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// BuildAssistantSystemPrompt returns the career assistant persona.
func BuildAssistantSystemPrompt() string {
	return prompts.MustGet(prompts.AssessmentFile, "assistant-system")
}
