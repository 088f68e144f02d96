package opa_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/complyview/complyview/internal/adapters/outbound/opa"
	"github.com/complyview/complyview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	policiesDir  = "../../../../testdata/policies"
	resourcesDir = "../../../../testdata/resources"
)

func TestEvaluate_Fixtures(t *testing.T) {
	ev, err := opa.New().Evaluate(context.Background(), policiesDir, resourcesDir)
	require.NoError(t, err)

	assert.Equal(t, 5, ev.Resources)
	require.Len(t, ev.Policies, 4)

	byID := make(map[string]domain.PolicyResult)
	for _, p := range ev.Policies {
		byID[p.ID] = p
	}

	s3 := byID["policies.s3_public_read"]
	assert.Equal(t, domain.SeverityCritical, s3.Severity)
	assert.Equal(t, domain.StatusFail, s3.Status)
	assert.Equal(t, "S3 bucket allows public read", s3.Title)

	iam := byID["policies.iamUserMfa"]
	assert.Equal(t, domain.SeverityHigh, iam.Severity)
	assert.Equal(t, domain.StatusFail, iam.Status)
	assert.Equal(t, "Iam User Mfa", iam.Title)

	ebs := byID["policies.ebs_volume_size"]
	assert.Equal(t, domain.SeverityMedium, ebs.Severity)
	assert.Equal(t, domain.StatusError, ebs.Status)

	trail := byID["policies.cloudtrail_logging"]
	assert.Equal(t, domain.SeverityInfo, trail.Severity)
	assert.Equal(t, domain.StatusPass, trail.Status)

	assert.Equal(t, domain.SeverityReport{
		Critical: domain.StatusCounts{Fail: 1},
		High:     domain.StatusCounts{Fail: 1},
		Medium:   domain.StatusCounts{Error: 1},
		Info:     domain.StatusCounts{Pass: 1},
	}, ev.Report)
}

func TestEvaluate_SortedBySeverity(t *testing.T) {
	ev, err := opa.New().Evaluate(context.Background(), policiesDir, resourcesDir)
	require.NoError(t, err)

	var ids []string
	for _, p := range ev.Policies {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{
		"policies.s3_public_read",
		"policies.iamUserMfa",
		"policies.ebs_volume_size",
		"policies.cloudtrail_logging",
	}, ids)
}

func TestEvaluate_DenyMessagesPerResource(t *testing.T) {
	ev, err := opa.New().Evaluate(context.Background(), policiesDir, resourcesDir)
	require.NoError(t, err)

	var s3 domain.PolicyResult
	for _, p := range ev.Policies {
		if p.ID == "policies.s3_public_read" {
			s3 = p
		}
	}
	require.Len(t, s3.Resources, 5)

	outcomes := make(map[string]domain.ResourceOutcome)
	for _, o := range s3.Resources {
		outcomes[o.Resource] = o
	}
	assert.Equal(t, domain.StatusFail, outcomes["public-assets"].Status)
	assert.Equal(t, []string{"public-assets is publicly readable"}, outcomes["public-assets"].Messages)
	assert.Equal(t, domain.StatusPass, outcomes["logs-bucket"].Status)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestEvaluate_MissingSeverity(t *testing.T) {
	policies := t.TempDir()
	writeFile(t, policies, "p.rego", "package policies.nosev\n\ndeny[msg] {\n\tinput.x\n\tmsg := \"x\"\n}\n")

	_, err := opa.New().Evaluate(context.Background(), policies, resourcesDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no severity rule")
}

func TestEvaluate_MissingDeny(t *testing.T) {
	policies := t.TempDir()
	writeFile(t, policies, "p.rego", "package policies.nodeny\n\nseverity := \"low\"\n")

	_, err := opa.New().Evaluate(context.Background(), policies, resourcesDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deny rule")
}

func TestEvaluate_InvalidSeverity(t *testing.T) {
	policies := t.TempDir()
	writeFile(t, policies, "p.rego", "package policies.badsev\n\nseverity := \"urgent\"\n\ndeny[msg] {\n\tinput.x\n\tmsg := \"x\"\n}\n")

	_, err := opa.New().Evaluate(context.Background(), policies, resourcesDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSeverity)
}

func TestEvaluate_SyntaxError(t *testing.T) {
	policies := t.TempDir()
	writeFile(t, policies, "p.rego", "package policies.broken\n\ndeny[msg] {\n")

	_, err := opa.New().Evaluate(context.Background(), policies, resourcesDir)
	assert.Error(t, err)
}

func TestEvaluate_NoResourcesPasses(t *testing.T) {
	resources := t.TempDir()

	ev, err := opa.New().Evaluate(context.Background(), policiesDir, resources)
	require.NoError(t, err)
	assert.Equal(t, 0, ev.Resources)
	for _, p := range ev.Policies {
		assert.Equal(t, domain.StatusPass, p.Status, p.ID)
	}
}

func TestEvaluate_MissingDirectory(t *testing.T) {
	_, err := opa.New().Evaluate(context.Background(), filepath.Join(t.TempDir(), "missing"), resourcesDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading policies")
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := opa.New().Evaluate(ctx, policiesDir, resourcesDir)
	assert.Error(t, err)
}
