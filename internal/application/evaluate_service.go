package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/complyview/complyview/internal/domain"
	"github.com/complyview/complyview/internal/domain/projector"
	log "github.com/sirupsen/logrus"
)

// EvaluateRequest names the inputs of an evaluation. Empty directories fall
// back to policies_dir and resources_dir from the project config.
type EvaluateRequest struct {
	ProjectPath  string
	PoliciesDir  string
	ResourcesDir string
}

// EvaluateResult is an evaluation and the chart of its report.
type EvaluateResult struct {
	Evaluation *domain.Evaluation   `json:"evaluation"`
	Chart      domain.SeverityChart `json:"chart"`
}

// EvaluateService orchestrates the evaluation pipeline:
// config -> policy evaluation -> projection -> metrics -> cache.
type EvaluateService struct {
	configLoader domain.ConfigLoader
	evaluator    domain.PolicyEvaluator
	cache        domain.EvaluationCache
	metrics      domain.MetricsSink
}

// NewEvaluateService wires the evaluation pipeline. metrics may be nil.
func NewEvaluateService(
	configLoader domain.ConfigLoader,
	evaluator domain.PolicyEvaluator,
	cache domain.EvaluationCache,
	metrics domain.MetricsSink,
) *EvaluateService {
	return &EvaluateService{
		configLoader: configLoader,
		evaluator:    evaluator,
		cache:        cache,
		metrics:      metrics,
	}
}

func (s *EvaluateService) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResult, error) {
	cfg, err := s.configLoader.Load(req.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	policiesDir := inputDir(req.PoliciesDir, cfg.PoliciesDir, req.ProjectPath)
	resourcesDir := inputDir(req.ResourcesDir, cfg.ResourcesDir, req.ProjectPath)
	if policiesDir == "" {
		return nil, errors.New("no policies directory: pass --policies or set policies_dir")
	}
	if resourcesDir == "" {
		return nil, errors.New("no resources directory: pass --resources or set resources_dir")
	}

	ev, err := s.evaluator.Evaluate(ctx, policiesDir, resourcesDir)
	if err != nil {
		// A failed run must not leave an older result behind for --last-evaluation.
		if ierr := s.cache.Invalidate(req.ProjectPath); ierr != nil {
			logger.WithError(ierr).Warn("invalidating evaluation cache")
		}
		return nil, fmt.Errorf("evaluating policies: %w", err)
	}

	chart := projector.ChartStatuses(ev.Report, cfg.ChartStatuses())
	if s.metrics != nil {
		s.metrics.Export(chart)
	}

	err = s.cache.Save(&domain.CachedEvaluation{
		ProjectPath:  req.ProjectPath,
		PoliciesDir:  policiesDir,
		ResourcesDir: resourcesDir,
		Evaluation:   ev,
	})
	if err != nil {
		logger.WithError(err).Warn("caching evaluation")
	}

	logger.WithFields(log.Fields{
		"policies":  len(ev.Policies),
		"resources": ev.Resources,
		"total":     chart.Total,
	}).Info("evaluation complete")

	return &EvaluateResult{Evaluation: ev, Chart: chart}, nil
}

// inputDir picks the flag value, else the configured directory resolved
// against the project path.
func inputDir(flag, configured, projectPath string) string {
	if flag != "" {
		return flag
	}
	if configured == "" {
		return ""
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(projectPath, configured)
}
