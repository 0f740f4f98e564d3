package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cvalign-lens/internal/analysis"
	"cvalign-lens/internal/bootstrap"
	"cvalign-lens/internal/extract"
	"cvalign-lens/internal/shared/telemetry"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description and print the JSON report",
	Example: `  cvalign analyze --jd job.txt --resume resume.pdf
  cvalign analyze --jd job.txt --resume-text "$(cat resume.md)"`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("jd", "", "job description file (txt, pdf, doc, docx)")
	analyzeCmd.Flags().String("resume", "", "resume file (txt, pdf, doc, docx)")
	analyzeCmd.Flags().String("resume-text", "", "resume text, used when --resume is not set")
	_ = analyzeCmd.MarkFlagRequired("jd")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	jdPath, _ := cmd.Flags().GetString("jd")
	resumePath, _ := cmd.Flags().GetString("resume")
	resumeText, _ := cmd.Flags().GetString("resume-text")

	jobDescription, err := extract.FromPath(jdPath)
	if err != nil {
		return err
	}
	if resumePath != "" {
		if resumeText, err = extract.FromPath(resumePath); err != nil {
			return err
		}
	}
	if strings.TrimSpace(resumeText) == "" {
		return errors.New("resume content is required: pass --resume or --resume-text")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := telemetry.NewStderr(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	svc, _, err := bootstrap.BuildService(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	report, err := svc.Run(cmd.Context(), analysis.Input{
		JobDescription: strings.TrimSpace(jobDescription),
		ResumeText:     strings.TrimSpace(resumeText),
	})
	if err != nil {
		return err
	}
	return writeReport(cmd, report)
}

func writeReport(cmd *cobra.Command, report *analysis.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"success":        true,
		"jd_summary":     report.JDSummary,
		"resume_summary": report.ResumeSummary,
		"analysis":       report.Analysis,
		"score":          report.Score,
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
