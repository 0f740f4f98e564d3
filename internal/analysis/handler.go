package analysis

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cvalign-lens/internal/extract"
	"cvalign-lens/internal/runs"
	"cvalign-lens/internal/shared/server/middleware"
	"cvalign-lens/internal/shared/server/respond"
	"cvalign-lens/internal/shared/telemetry"
)

// MaxUploadBytes bounds the whole request body.
const MaxUploadBytes = 5 << 20

const (
	msgTooLarge        = "File too large. Maximum size is 5MB."
	msgJDRequired      = "Job description is required."
	msgResumeRequired  = "Resume content is required (paste text or upload a file)."
	multipartMemBudget = 8 << 20
)

// Handler serves POST /analyze.
type Handler struct {
	Svc      *Service
	Runs     runs.Store
	Provider string
	Model    string
	Logger   *zap.Logger
}

// RegisterRoutes attaches the analyze route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	start := time.Now()
	logger := telemetry.OrNop(h.Logger).With(zap.String("request_id", middleware.RequestIDFromContext(c)))

	if c.Request.ContentLength > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(multipartMemBudget); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		logger.Debug("analyze.form_parse", zap.Error(err))
	}

	jobDescription := strings.TrimSpace(c.PostForm("job_description"))
	resumeText := strings.TrimSpace(c.PostForm("resume_text"))
	run := runs.NewRun(middleware.RequestIDFromContext(c))
	run.Provider = h.Provider
	run.Model = h.Model

	if jobDescription == "" {
		h.reject(c, &run, start, http.StatusBadRequest, msgJDRequired)
		return
	}

	if fh, err := c.FormFile("resume_file"); err == nil && fh.Filename != "" {
		run.InputSource = runs.SourceFile
		text, err := readUpload(fh)
		if err != nil {
			var xerr *extract.Error
			if errors.As(err, &xerr) {
				logger.Info("analyze.extract_failed", zap.String("file_name", fh.Filename), zap.Error(err))
				h.reject(c, &run, start, http.StatusBadRequest, xerr.Message)
				return
			}
			h.fail(c, &run, start, logger, err)
			return
		}
		resumeText = text
	}

	if resumeText == "" {
		h.reject(c, &run, start, http.StatusBadRequest, msgResumeRequired)
		return
	}

	run.HashInputs(jobDescription, resumeText)

	// Model calls run to completion even if the client goes away.
	report, err := h.Svc.Run(context.WithoutCancel(c.Request.Context()), Input{
		JobDescription: jobDescription,
		ResumeText:     resumeText,
	})
	if err != nil {
		if verr, ok := AsValidation(err); ok {
			h.reject(c, &run, start, http.StatusUnprocessableEntity, verr.Message)
			return
		}
		h.fail(c, &run, start, logger, err)
		return
	}

	run.Score(report.Score.OverallScore, report.Score.ScoreLabel)
	h.finish(c, &run, start, http.StatusOK, runs.OutcomeCompleted)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"jd_summary":     report.JDSummary,
		"resume_summary": report.ResumeSummary,
		"analysis":       report.Analysis,
		"score":          report.Score,
	})
}

func (h *Handler) reject(c *gin.Context, run *runs.Run, start time.Time, status int, message string) {
	h.finish(c, run, start, status, runs.OutcomeRejected)
	respond.Error(c, status, message)
}

func (h *Handler) fail(c *gin.Context, run *runs.Run, start time.Time, logger *zap.Logger, err error) {
	logger.Error("analyze.failed", zap.Error(err))
	h.finish(c, run, start, http.StatusInternalServerError, runs.OutcomeFailed)
	respond.Error(c, http.StatusInternalServerError, respond.InternalErrorMessage)
}

// finish tags the request log and appends the run to the ledger. Ledger
// failures are logged only.
func (h *Handler) finish(c *gin.Context, run *runs.Run, start time.Time, status int, outcome string) {
	c.Set(middleware.OutcomeKey, outcome)
	if h.Runs == nil {
		return
	}
	run.HTTPStatus = status
	run.Outcome = outcome
	run.DurationMs = time.Since(start).Milliseconds()
	if err := h.Runs.Record(context.WithoutCancel(c.Request.Context()), *run); err != nil {
		telemetry.OrNop(h.Logger).Warn("runs.record_failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func readUpload(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return extract.FromUpload(fh.Filename, data)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
