package prompt

// TemplateID names one of the fixed prompt templates.
type TemplateID string

const (
	ReportAnalysis  TemplateID = "report-analysis"
	SymptomCheck    TemplateID = "symptom-check"
	DietPlan        TemplateID = "diet-plan"
	ExercisePlan    TemplateID = "exercise-plan"
	HealthEducation TemplateID = "health-education"
)

// Placeholders filled by Compose, one per template.
const (
	ReportPlaceholder   = "{report}"
	SymptomsPlaceholder = "{symptoms}"
	TopicPlaceholder    = "{topic}"
)

// IDs lists every template in panel order.
func IDs() []TemplateID {
	return []TemplateID{ReportAnalysis, SymptomCheck, DietPlan, ExercisePlan, HealthEducation}
}

// Placeholder returns the substitution point a template must hold.
func Placeholder(id TemplateID) string {
	switch id {
	case SymptomCheck:
		return SymptomsPlaceholder
	case HealthEducation:
		return TopicPlaceholder
	default:
		return ReportPlaceholder
	}
}

// reportAnalysisTemplate keeps the leading newline and four-space indent of
// the reference prompt verbatim.
const reportAnalysisTemplate = "\n" +
	"    You are a virtual doctor. A patient has provided their medical report, and you need to assist them with their health journey.\n" +
	"    \n" +
	"    **Patient Instructions:**\n" +
	"    - Analyze the medical report.\n" +
	"    - Identify the patient's health issues.\n" +
	"    - Provide a comprehensive solution including:\n" +
	"        - Diagnosis of the problem.\n" +
	"        - Recommended treatments or remedies.\n" +
	"        - Suggested physical activities.\n" +
	"        - Habits to give up.\n" +
	"        - Fruits and foods to include in the diet.\n" +
	"    - Ensure the guidance is clear and actionable.\n" +
	"    \n" +
	"    **Medical Report:**\n" +
	"    ```\n" +
	"    {report}\n" +
	"    ```\n" +
	"    **Solution:**\n" +
	"    ```\n" +
	"    [Provide detailed analysis and recommendations here]\n" +
	"    ```"

// Defaults returns the built-in template table.
func Defaults() map[TemplateID]string {
	return map[TemplateID]string{
		ReportAnalysis:  reportAnalysisTemplate,
		SymptomCheck:    "As a virtual doctor, please analyze the following symptoms and provide potential conditions:\n{symptoms}",
		DietPlan:        "Based on the medical report, provide a Customized diet and nutrition plan:\n{report}",
		ExercisePlan:    "Based on the medical report, provide a Customized exercise plan:\n{report}",
		HealthEducation: "Provide educational content on the following health topic:\n{topic}",
	}
}
