package analysis

// Defaults applied when the model omits a field or returns null.
const (
	DefaultRoleTitle            = "Unknown Role"
	DefaultUnknown              = "Unknown"
	DefaultOverallAssessment    = "Analysis could not be completed for this input."
	DefaultScoreLabel           = "Unknown"
	DefaultScoreRationale       = "Score could not be determined."
	DefaultHiringRecommendation = "Not Recommended"
	DefaultConfidence           = "Low"
)

// JDIntelligence is the structured view of a job description.
type JDIntelligence struct {
	RoleTitle              string   `json:"role_title"`
	SeniorityLevel         string   `json:"seniority_level"`
	CoreTechnicalSkills    []string `json:"core_technical_skills"`
	SoftSkills             []string `json:"soft_skills"`
	DomainKnowledge        []string `json:"domain_knowledge"`
	KeyResponsibilities    []string `json:"key_responsibilities"`
	MustHaveRequirements   []string `json:"must_have_requirements"`
	NiceToHaveRequirements []string `json:"nice_to_have_requirements"`
	KeywordsForATS         []string `json:"keywords_for_ats"`
}

// ResumeIntelligence is the structured view of a resume.
type ResumeIntelligence struct {
	CandidateName         *string  `json:"candidate_name"`
	InferredTitle         string   `json:"inferred_title"`
	YearsOfExperience     string   `json:"years_of_experience"`
	TechnicalSkills       []string `json:"technical_skills"`
	SoftSkills            []string `json:"soft_skills"`
	DomainExperience      []string `json:"domain_experience"`
	Education             []string `json:"education"`
	NotableAchievements   []string `json:"notable_achievements"`
	ResumeSectionsPresent []string `json:"resume_sections_present"`
	MissingSections       []string `json:"missing_sections"`
	KeywordsPresent       []string `json:"keywords_present"`
}

// AnalysisResult holds the model's comparison. List entries are the model's
// records (point/reasoning/confidence and similar) passed through untouched.
type AnalysisResult struct {
	Strengths           []any  `json:"strengths"`
	Weaknesses          []any  `json:"weaknesses"`
	MissingKeywords     []any  `json:"missing_keywords"`
	SkillGaps           []any  `json:"skill_gaps"`
	SectionImprovements []any  `json:"section_improvements"`
	BulletOptimizations []any  `json:"bullet_optimizations"`
	OverallAssessment   string `json:"overall_assessment"`
}

// DimensionScores always carries exactly these five sub-scores, each in [0,100].
type DimensionScores struct {
	TechnicalSkillsMatch int `json:"technical_skills_match"`
	ExperienceRelevance  int `json:"experience_relevance"`
	KeywordCoverage      int `json:"keyword_coverage"`
	AchievementQuality   int `json:"achievement_quality"`
	PresentationQuality  int `json:"presentation_quality"`
}

// ScoreResult is the final alignment score.
type ScoreResult struct {
	OverallScore           int             `json:"overall_score"`
	ScoreLabel             string          `json:"score_label"`
	ScoreRationale         string          `json:"score_rationale"`
	DimensionScores        DimensionScores `json:"dimension_scores"`
	HiringRecommendation   string          `json:"hiring_recommendation"`
	ConfidenceInAssessment string          `json:"confidence_in_assessment"`
	Top3Actions            []string        `json:"top_3_actions"`
}

// Report bundles the four documents produced by one pipeline run.
type Report struct {
	JDSummary     JDIntelligence     `json:"jd_summary"`
	ResumeSummary ResumeIntelligence `json:"resume_summary"`
	Analysis      AnalysisResult     `json:"analysis"`
	Score         ScoreResult        `json:"score"`
}
