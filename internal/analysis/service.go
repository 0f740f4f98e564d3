package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cvalign-lens/internal/shared/metrics"
	"cvalign-lens/internal/shared/telemetry"
)

// Input is the raw text of one analysis request.
type Input struct {
	JobDescription string
	ResumeText     string
}

// Service runs the four model calls in order: JD extraction, resume
// extraction, gap analysis, scoring.
type Service struct {
	jd       *JDParser
	resume   *ResumeParser
	analyzer *Analyzer
	scorer   *Scorer
	logger   *zap.Logger
}

// NewService wires every stage to the same Caller.
func NewService(c Caller, logger *zap.Logger) *Service {
	return &Service{
		jd:       NewJDParser(c),
		resume:   NewResumeParser(c),
		analyzer: NewAnalyzer(c),
		scorer:   NewScorer(c),
		logger:   telemetry.OrNop(logger),
	}
}

// Run executes the pipeline. Too-short input fails fast with a
// *ValidationError before any later stage runs.
func (s *Service) Run(ctx context.Context, in Input) (*Report, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	report, err := s.run(ctx, in)
	elapsed := time.Since(start)
	if err != nil {
		if _, ok := AsValidation(err); ok {
			metrics.IncAnalysisRejected()
		} else {
			metrics.IncAnalysisFailed()
		}
		return nil, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))
	s.logger.Info("analysis.completed",
		zap.Duration("duration", elapsed),
		zap.Int("overall_score", report.Score.OverallScore),
		zap.String("score_label", report.Score.ScoreLabel),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, in Input) (*Report, error) {
	var report Report

	if err := s.stage("jd_extraction", func() (err error) {
		report.JDSummary, err = s.jd.Parse(ctx, in.JobDescription)
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.stage("resume_extraction", func() (err error) {
		report.ResumeSummary, err = s.resume.Parse(ctx, in.ResumeText)
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.stage("gap_analysis", func() (err error) {
		report.Analysis, err = s.analyzer.Analyze(ctx, report.JDSummary, report.ResumeSummary)
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.stage("scoring", func() (err error) {
		report.Score, err = s.scorer.Score(ctx, report.Analysis, &report.JDSummary, &report.ResumeSummary)
		return err
	}); err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *Service) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	fields := []zap.Field{zap.String("stage", name), zap.Duration("duration", time.Since(start))}
	if err != nil {
		if verr, ok := AsValidation(err); ok {
			s.logger.Info("analysis.rejected", append(fields, zap.String("field", verr.Field))...)
		} else {
			s.logger.Warn("analysis.stage_failed", append(fields, zap.Error(err))...)
		}
		return err
	}
	s.logger.Debug("analysis.stage_complete", fields...)
	return nil
}
