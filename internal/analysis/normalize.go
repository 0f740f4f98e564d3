package analysis

import "cvalign-lens/internal/llm"

// NormalizeJD fills every JDIntelligence field, applying defaults for
// missing or null values.
func NormalizeJD(obj llm.Object) JDIntelligence {
	return JDIntelligence{
		RoleTitle:              stringOr(obj["role_title"], DefaultRoleTitle),
		SeniorityLevel:         stringOr(obj["seniority_level"], DefaultUnknown),
		CoreTechnicalSkills:    stringList(obj["core_technical_skills"]),
		SoftSkills:             stringList(obj["soft_skills"]),
		DomainKnowledge:        stringList(obj["domain_knowledge"]),
		KeyResponsibilities:    stringList(obj["key_responsibilities"]),
		MustHaveRequirements:   stringList(obj["must_have_requirements"]),
		NiceToHaveRequirements: stringList(obj["nice_to_have_requirements"]),
		KeywordsForATS:         stringList(obj["keywords_for_ats"]),
	}
}

// NormalizeResume is the ResumeIntelligence counterpart of NormalizeJD.
// candidate_name stays null when the model did not find one.
func NormalizeResume(obj llm.Object) ResumeIntelligence {
	return ResumeIntelligence{
		CandidateName:         nullableString(obj["candidate_name"]),
		InferredTitle:         stringOr(obj["inferred_title"], DefaultUnknown),
		YearsOfExperience:     stringOr(obj["years_of_experience"], DefaultUnknown),
		TechnicalSkills:       stringList(obj["technical_skills"]),
		SoftSkills:            stringList(obj["soft_skills"]),
		DomainExperience:      stringList(obj["domain_experience"]),
		Education:             stringList(obj["education"]),
		NotableAchievements:   stringList(obj["notable_achievements"]),
		ResumeSectionsPresent: stringList(obj["resume_sections_present"]),
		MissingSections:       stringList(obj["missing_sections"]),
		KeywordsPresent:       stringList(obj["keywords_present"]),
	}
}

// NormalizeAnalysis replaces missing, null, or non-array list fields with
// empty lists.
func NormalizeAnalysis(obj llm.Object) AnalysisResult {
	return AnalysisResult{
		Strengths:           recordList(obj["strengths"]),
		Weaknesses:          recordList(obj["weaknesses"]),
		MissingKeywords:     recordList(obj["missing_keywords"]),
		SkillGaps:           recordList(obj["skill_gaps"]),
		SectionImprovements: recordList(obj["section_improvements"]),
		BulletOptimizations: recordList(obj["bullet_optimizations"]),
		OverallAssessment:   stringOr(obj["overall_assessment"], DefaultOverallAssessment),
	}
}

// NormalizeScore clamps every score into [0,100] and fills the remaining
// fields with defaults.
func NormalizeScore(obj llm.Object) ScoreResult {
	return ScoreResult{
		OverallScore:           score(obj["overall_score"]),
		ScoreLabel:             stringOr(obj["score_label"], DefaultScoreLabel),
		ScoreRationale:         stringOr(obj["score_rationale"], DefaultScoreRationale),
		DimensionScores:        normalizeDimensions(obj["dimension_scores"]),
		HiringRecommendation:   stringOr(obj["hiring_recommendation"], DefaultHiringRecommendation),
		ConfidenceInAssessment: stringOr(obj["confidence_in_assessment"], DefaultConfidence),
		Top3Actions:            stringList(obj["top_3_actions"]),
	}
}

func normalizeDimensions(v any) DimensionScores {
	m, ok := v.(map[string]any)
	if !ok {
		return DimensionScores{}
	}
	return DimensionScores{
		TechnicalSkillsMatch: score(m["technical_skills_match"]),
		ExperienceRelevance:  score(m["experience_relevance"]),
		KeywordCoverage:      score(m["keyword_coverage"]),
		AchievementQuality:   score(m["achievement_quality"]),
		PresentationQuality:  score(m["presentation_quality"]),
	}
}
