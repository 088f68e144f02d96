package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/complyview/complyview/internal/adapters/outbound/cache"
	"github.com/complyview/complyview/internal/adapters/outbound/config"
	"github.com/complyview/complyview/internal/adapters/outbound/opa"
	"github.com/complyview/complyview/internal/application"
	"github.com/complyview/complyview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	policiesDir  = "../../testdata/policies"
	resourcesDir = "../../testdata/resources"
)

func TestEvaluateService_EvaluatesAndCaches(t *testing.T) {
	dir := t.TempDir()
	sink := &recordingSink{}
	store := cache.New()
	svc := application.NewEvaluateService(config.New(), opa.New(), store, sink)

	res, err := svc.Evaluate(context.Background(), application.EvaluateRequest{
		ProjectPath:  dir,
		PoliciesDir:  policiesDir,
		ResourcesDir: resourcesDir,
	})
	require.NoError(t, err)

	assert.Len(t, res.Evaluation.Policies, 4)
	assert.Equal(t, 4, res.Chart.Total)
	assert.Equal(t, 1, res.Chart.Value(domain.SeverityCritical))
	assert.Equal(t, 1, res.Chart.Value(domain.SeverityMedium))
	assert.Equal(t, 0, res.Chart.Value(domain.SeverityLow))
	require.Len(t, sink.charts, 1)

	cached, err := store.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, cached.Matches(policiesDir, resourcesDir))
	assert.Equal(t, res.Evaluation.Report, cached.Evaluation.Report)
}

func TestEvaluateService_DirsFromConfig(t *testing.T) {
	dir := t.TempDir()
	abs := func(p string) string {
		a, err := filepath.Abs(p)
		require.NoError(t, err)
		return a
	}
	cfg := "policies_dir: " + abs(policiesDir) + "\nresources_dir: " + abs(resourcesDir) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".complyview.yaml"), []byte(cfg), 0644))

	svc := application.NewEvaluateService(config.New(), opa.New(), cache.New(), nil)
	res, err := svc.Evaluate(context.Background(), application.EvaluateRequest{ProjectPath: dir})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Chart.Total)
}

func TestEvaluateService_RequiresDirectories(t *testing.T) {
	svc := application.NewEvaluateService(config.New(), opa.New(), cache.New(), nil)

	_, err := svc.Evaluate(context.Background(), application.EvaluateRequest{ProjectPath: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--policies")

	_, err = svc.Evaluate(context.Background(), application.EvaluateRequest{
		ProjectPath: t.TempDir(),
		PoliciesDir: policiesDir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resources")
}

func TestEvaluateService_EvaluatorError(t *testing.T) {
	svc := application.NewEvaluateService(config.New(), opa.New(), cache.New(), nil)
	_, err := svc.Evaluate(context.Background(), application.EvaluateRequest{
		ProjectPath:  t.TempDir(),
		PoliciesDir:  "does-not-exist",
		ResourcesDir: resourcesDir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluating policies")
}

func TestEvaluateService_EvaluatorErrorInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	store := cache.New()
	require.NoError(t, store.Save(&domain.CachedEvaluation{
		ProjectPath:  dir,
		PoliciesDir:  policiesDir,
		ResourcesDir: resourcesDir,
		Evaluation:   &domain.Evaluation{Report: domain.SeverityReport{Low: domain.StatusCounts{Pass: 1}}},
	}))

	svc := application.NewEvaluateService(config.New(), opa.New(), store, nil)
	_, err := svc.Evaluate(context.Background(), application.EvaluateRequest{
		ProjectPath:  dir,
		PoliciesDir:  "does-not-exist",
		ResourcesDir: resourcesDir,
	})
	require.Error(t, err)

	cached, err := store.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, cached)

	_, err = newOverviewService(nil).Overview(application.OverviewRequest{ProjectPath: dir, LastEvaluation: true})
	assert.ErrorIs(t, err, application.ErrNoEvaluation)
}
