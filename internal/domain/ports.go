package domain

import "context"

// ReportSource reads a SeverityReport produced upstream.
type ReportSource interface {
	Load(path string) (SeverityReport, error)
}

// PolicyEvaluator runs compliance policies against resource documents.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, policiesDir, resourcesDir string) (*Evaluation, error)
}

// Navigator moves the active view to a route.
type Navigator interface {
	Navigate(target string) error
}

// PanelHost opens side panels. Closing is its own concern.
type PanelHost interface {
	Open(panel PanelIntent) error
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// OverviewHistory persists overview snapshots.
type OverviewHistory interface {
	Save(projectPath string, entry OverviewEntry) error
	Load(projectPath string) ([]OverviewEntry, error)
}

// EvaluationCache keeps the most recent evaluation.
type EvaluationCache interface {
	Load(projectPath string) (*CachedEvaluation, error)
	Save(cached *CachedEvaluation) error
	Invalidate(projectPath string) error
}

// GitInfo provides version control metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	Head(projectPath string) (GitRef, error)
}

// MetricsSink receives every chart that is produced.
type MetricsSink interface {
	Export(chart SeverityChart)
}
