package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/system.txt
	systemPrompt string
	//go:embed prompts/jd_extraction.txt
	jdExtractionPrompt string
	//go:embed prompts/resume_extraction.txt
	resumeExtractionPrompt string
	//go:embed prompts/analysis.txt
	analysisPrompt string
	//go:embed prompts/scoring.txt
	scoringPrompt string
)

// SystemPrompt is shared by every call site.
func SystemPrompt() string {
	return systemPrompt
}

func RenderJDExtraction(jobDescription string) string {
	return strings.NewReplacer("{{JOB_DESCRIPTION}}", jobDescription).Replace(jdExtractionPrompt)
}

func RenderResumeExtraction(resumeText string) string {
	return strings.NewReplacer("{{RESUME_TEXT}}", resumeText).Replace(resumeExtractionPrompt)
}

// RenderAnalysis fills the comparison prompt with pretty-printed intelligence documents.
func RenderAnalysis(jdData, resumeData string) string {
	return strings.NewReplacer(
		"{{JD_DATA}}", jdData,
		"{{RESUME_DATA}}", resumeData,
	).Replace(analysisPrompt)
}

func RenderScoring(analysisData, jdData, resumeData string) string {
	return strings.NewReplacer(
		"{{ANALYSIS_DATA}}", analysisData,
		"{{JD_DATA}}", jdData,
		"{{RESUME_DATA}}", resumeData,
	).Replace(scoringPrompt)
}
