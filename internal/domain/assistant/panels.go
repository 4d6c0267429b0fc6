package assistant

// FieldKind tells a front-end which widget to render.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldFile     FieldKind = "file"
	FieldRadio    FieldKind = "radio"
)

// Field describes one panel input or output.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Lines       int       `json:"lines,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
}

// Panel registers one handler with its inputs and outputs so any UI can
// drive it.
type Panel struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Endpoint    string     `json:"endpoint"`
	Multipart   bool       `json:"multipart,omitempty"`
	Inputs      []Field    `json:"inputs"`
	Outputs     []Field    `json:"outputs"`
	Examples    [][]string `json:"examples,omitempty"`
}

// AppTitle is shown above the panel tabs.
const AppTitle = "AI-Powered Virtual Health Assistant"

// Panels returns the six panels in tab order.
func Panels() []Panel {
	return []Panel{
		{
			ID:          "report-analysis",
			Title:       "Medical Report Analysis",
			Description: "Discover Your Path to Well-being",
			Endpoint:    "/api/v1/reports/analyze",
			Multipart:   true,
			Inputs: []Field{
				{Name: "mode", Label: "Select Input Method", Kind: FieldRadio, Options: []string{string(ModeUploadPDF), string(ModePasteText)}, Default: string(ModeUploadPDF)},
				{Name: "file", Label: "Upload PDF", Kind: FieldFile},
				{Name: "reportText", Label: "Or Paste Report Text here", Kind: FieldTextarea, Lines: 10},
			},
			Outputs: []Field{
				{Name: "analysis", Label: "Report Analysis", Kind: FieldTextarea},
				{Name: "reportText", Label: "Copy and Paste this Medical Report Text in Diet/Exercise Plan Generation", Kind: FieldTextarea},
			},
		},
		{
			ID:          "symptom-checker",
			Title:       "Symptom Checker",
			Description: "Symptom Checker",
			Endpoint:    "/api/v1/symptoms/check",
			Inputs: []Field{
				{Name: "text", Label: "Symptoms", Kind: FieldTextarea, Lines: 2, Placeholder: "Enter your symptoms, e.g., fever, cough, fatigue"},
			},
			Outputs: []Field{
				{Name: "text", Label: "Potential Conditions", Kind: FieldTextarea},
			},
			Examples: [][]string{
				{"fever, cough, fatigue"},
				{"headache, nausea, dizziness"},
			},
		},
		{
			ID:          "diet-plan",
			Title:       "Diet Plan",
			Description: "Customized Diet Plan",
			Endpoint:    "/api/v1/plans/diet",
			Inputs: []Field{
				{Name: "text", Label: "Medical Report", Kind: FieldTextarea, Lines: 10, Placeholder: "Paste the copied medical report text here"},
			},
			Outputs: []Field{
				{Name: "text", Label: "Customized Diet Plan", Kind: FieldTextarea},
			},
		},
		{
			ID:          "exercise-plan",
			Title:       "Exercise Plan",
			Description: "Customized Exercise Plan",
			Endpoint:    "/api/v1/plans/exercise",
			Inputs: []Field{
				{Name: "text", Label: "Medical Report", Kind: FieldTextarea, Lines: 10, Placeholder: "Paste the copied medical report text here"},
			},
			Outputs: []Field{
				{Name: "text", Label: "Customized Exercise Plan", Kind: FieldTextarea},
			},
		},
		{
			ID:          "medication-reminder",
			Title:       "Medication Reminder",
			Description: "Set Medication Reminder",
			Endpoint:    "/api/v1/reminders",
			Inputs: []Field{
				{Name: "medication", Label: "Medication", Kind: FieldText, Lines: 1, Placeholder: "Enter medication name"},
				{Name: "time", Label: "Time", Kind: FieldText, Lines: 1, Placeholder: "Enter time, e.g., 10:00 AM"},
			},
			Outputs: []Field{
				{Name: "message", Label: "Medication Reminder", Kind: FieldText},
			},
		},
		{
			ID:          "health-education",
			Title:       "Health Education",
			Description: "Health Education",
			Endpoint:    "/api/v1/education",
			Inputs: []Field{
				{Name: "text", Label: "Topic", Kind: FieldTextarea, Lines: 2, Placeholder: "Enter health topic, e.g., benefits of regular exercise"},
			},
			Outputs: []Field{
				{Name: "text", Label: "Learning materials", Kind: FieldTextarea},
			},
			Examples: [][]string{
				{"benefits of regular exercise"},
			},
		},
	}
}
