package application

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/projector"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "application")

// stdinPath is the report path that reads from standard input.
const stdinPath = "-"

// ErrNoEvaluation is returned when the last evaluation is requested but none
// has been cached.
var ErrNoEvaluation = errors.New("no cached evaluation, run 'complyview evaluate' first")

// OverviewRequest selects what to chart.
type OverviewRequest struct {
	ProjectPath string
	// ReportPath overrides the configured report. Relative paths are taken
	// as given; "-" reads stdin.
	ReportPath string
	// Statuses overrides the configured statuses.
	Statuses []domain.Status
	// LastEvaluation charts the cached evaluation instead of a report.
	LastEvaluation bool
	// Record appends the overview to the project history.
	Record bool
}

// Overview is a chart together with where it came from.
type Overview struct {
	Chart    domain.SeverityChart `json:"chart"`
	Statuses []domain.Status      `json:"statuses"`
	Source   string               `json:"source"`
	// Stale marks a cached evaluation whose policy or resource directories
	// differ from the configured ones.
	Stale bool                  `json:"stale,omitempty"`
	Entry *domain.OverviewEntry `json:"entry,omitempty"`
}

// OverviewService orchestrates the overview pipeline:
// config -> report or cached evaluation -> projection -> metrics -> history.
type OverviewService struct {
	configLoader domain.ConfigLoader
	reports      domain.ReportSource
	cache        domain.EvaluationCache
	history      domain.OverviewHistory
	git          domain.GitInfo
	metrics      domain.MetricsSink

	now   func() time.Time
	newID func() string
}

// NewOverviewService wires the overview pipeline. metrics may be nil.
func NewOverviewService(
	configLoader domain.ConfigLoader,
	reports domain.ReportSource,
	cache domain.EvaluationCache,
	history domain.OverviewHistory,
	git domain.GitInfo,
	metrics domain.MetricsSink,
) *OverviewService {
	return &OverviewService{
		configLoader: configLoader,
		reports:      reports,
		cache:        cache,
		history:      history,
		git:          git,
		metrics:      metrics,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *OverviewService) Overview(req OverviewRequest) (*Overview, error) {
	cfg, err := s.configLoader.Load(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var (
		report domain.SeverityReport
		source string
		stale  bool
	)
	if req.LastEvaluation {
		report, source, stale, err = s.loadEvaluation(req.ProjectPath, cfg)
	} else {
		report, source, err = s.loadReport(req, cfg)
	}
	if err != nil {
		return nil, err
	}

	statuses := req.Statuses
	if len(statuses) == 0 {
		statuses = cfg.ChartStatuses()
	}

	chart := projector.ChartStatuses(report, statuses)
	if s.metrics != nil {
		s.metrics.Export(chart)
	}

	ov := &Overview{Chart: chart, Statuses: statuses, Source: source, Stale: stale}
	if req.Record {
		ov.Entry = s.record(req.ProjectPath, source, chart)
	}
	return ov, nil
}

// History returns the recorded overviews, oldest first.
func (s *OverviewService) History(projectPath string) ([]domain.OverviewEntry, error) {
	entries, err := s.history.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

// loadEvaluation reads the cached evaluation. It is stale when policies_dir
// or resources_dir is configured and differs from what was evaluated.
func (s *OverviewService) loadEvaluation(projectPath string, cfg domain.ProjectConfig) (domain.SeverityReport, string, bool, error) {
	cached, err := s.cache.Load(projectPath)
	if err != nil {
		return domain.SeverityReport{}, "", false, fmt.Errorf("loading cached evaluation: %w", err)
	}
	if cached == nil || cached.Evaluation == nil {
		return domain.SeverityReport{}, "", false, ErrNoEvaluation
	}

	policiesDir := inputDir("", cfg.PoliciesDir, projectPath)
	if policiesDir == "" {
		policiesDir = cached.PoliciesDir
	}
	resourcesDir := inputDir("", cfg.ResourcesDir, projectPath)
	if resourcesDir == "" {
		resourcesDir = cached.ResourcesDir
	}

	stale := !cached.Matches(policiesDir, resourcesDir)
	if stale {
		logger.WithFields(log.Fields{
			"cached_policies":  cached.PoliciesDir,
			"cached_resources": cached.ResourcesDir,
			"policies_dir":     policiesDir,
			"resources_dir":    resourcesDir,
		}).Warn("cached evaluation does not match the configured directories, run 'complyview evaluate'")
	}

	source := "evaluation@" + cached.Evaluation.EvaluatedAt.Format(time.RFC3339)
	return cached.Evaluation.Report, source, stale, nil
}

func (s *OverviewService) loadReport(req OverviewRequest, cfg domain.ProjectConfig) (domain.SeverityReport, string, error) {
	path := req.ReportPath
	if path == "" {
		path = cfg.Report
		if !filepath.IsAbs(path) {
			path = filepath.Join(req.ProjectPath, path)
		}
	}

	report, err := s.reports.Load(path)
	if err != nil {
		return domain.SeverityReport{}, "", fmt.Errorf("loading report: %w", err)
	}
	if path == stdinPath {
		return report, "stdin", nil
	}
	return report, path, nil
}

// record saves a history entry. Failures are logged, never returned.
func (s *OverviewService) record(projectPath, source string, chart domain.SeverityChart) *domain.OverviewEntry {
	entry := domain.EntryFromChart(chart)
	entry.ID = s.newID()
	entry.Timestamp = s.now().UTC().Format(time.RFC3339)
	entry.Source = source

	if s.git != nil && s.git.IsGitRepo(projectPath) {
		ref, err := s.git.Head(projectPath)
		if err != nil {
			logger.WithError(err).Debug("reading git HEAD")
		} else {
			entry.CommitHash = ref.Hash
			entry.Branch = ref.Branch
		}
	}

	if err := s.history.Save(projectPath, entry); err != nil {
		logger.WithError(err).Warn("saving overview history")
		return nil
	}
	return &entry
}
