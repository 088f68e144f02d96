package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/complyview/complyview/internal/adapters/inbound/cli"
	"github.com/complyview/complyview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenarioReport = "../../../../testdata/reports/scenario.json"
	zeroReport     = "../../../../testdata/reports/zero.yaml"
	policiesDir    = "../../../../testdata/policies"
	resourcesDir   = "../../../../testdata/resources"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "complyview dev")
}

func TestOverviewCommand_Chart(t *testing.T) {
	out, err := run(t, "", "overview", scenarioReport, "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Total Policies")
	assert.Contains(t, out, "8")
	assert.Contains(t, out, "Critical")
}

func TestOverviewCommand_JSON(t *testing.T) {
	out, err := run(t, "", "overview", scenarioReport, "--json", "--path", t.TempDir())
	require.NoError(t, err)

	var ov struct {
		Chart domain.SeverityChart `json:"chart"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ov))
	assert.Equal(t, 8, ov.Chart.Total)
	require.Len(t, ov.Chart.Entries, 5)
	assert.Equal(t, domain.SeverityDisplayEntry{
		Severity: domain.SeverityCritical, Label: "Critical", Value: 3, Color: domain.ColorRed300,
	}, ov.Chart.Entries[0])
}

func TestOverviewCommand_StatusFilter(t *testing.T) {
	out, err := run(t, "", "overview", scenarioReport, "--json", "--status", "fail,error", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 3`)
}

func TestOverviewCommand_UnknownStatus(t *testing.T) {
	_, err := run(t, "", "overview", scenarioReport, "--status", "pased", "--path", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	assert.Contains(t, err.Error(), `did you mean "pass"`)
}

func TestOverviewCommand_ZeroReport(t *testing.T) {
	out, err := run(t, "", "overview", zeroReport, "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No evaluated policies.")
}

func TestOverviewCommand_Stdin(t *testing.T) {
	out, err := run(t, `{"info": {"pass": 6}}`, "overview", "-", "--json", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 6`)
	assert.Contains(t, out, `"source": "stdin"`)
}

func TestOverviewCommand_History(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "", "overview", scenarioReport, "--path", dir)
	require.NoError(t, err)
	_, err = run(t, "", "overview", zeroReport, "--path", dir)
	require.NoError(t, err)

	out, err := run(t, "", "overview", "--history", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Overview History")
	assert.Contains(t, out, "↓8")
}

func TestOverviewCommand_MissingReport(t *testing.T) {
	_, err := run(t, "", "overview", "--path", t.TempDir())
	assert.Error(t, err)
}

func TestEvaluateCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "", "evaluate", "--policies", policiesDir, "--resources", resourcesDir, "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "S3 bucket allows public read")
	assert.Contains(t, out, "4 policies · 5 resources")
	assert.Contains(t, out, "Total Policies")

	out, err = run(t, "", "overview", "--last-evaluation", "--json", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 4`)
}

func TestOverviewCommand_LastEvaluationStale(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "", "evaluate", "--policies", policiesDir, "--resources", resourcesDir, "--path", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".complyview.yaml"), []byte("policies_dir: other\n"), 0644))

	out, err := run(t, "", "overview", "--last-evaluation", "--json", "--path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"stale": true`)
	assert.Contains(t, out, `"total": 4`)
}

func TestEvaluateCommand_JSON(t *testing.T) {
	out, err := run(t, "", "evaluate", "--policies", policiesDir, "--resources", resourcesDir, "--json", "--path", t.TempDir())
	require.NoError(t, err)

	var res struct {
		Evaluation domain.Evaluation    `json:"evaluation"`
		Chart      domain.SeverityChart `json:"chart"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Evaluation.Policies, 4)
	assert.Equal(t, 5, res.Evaluation.Resources)
}

func TestEvaluateCommand_NoPolicies(t *testing.T) {
	_, err := run(t, "", "evaluate", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--policies")
}

func TestCreateCommand_ListsMenu(t *testing.T) {
	out, err := run(t, "", "create")
	require.NoError(t, err)
	assert.Contains(t, out, "Create New")
	assert.Contains(t, out, "Single")
	assert.Contains(t, out, "Bulk")
}

func TestCreateCommand_Single(t *testing.T) {
	out, err := run(t, "", "create", "single", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/cloud-security/policies/new\n", out)
}

func TestCreateCommand_SingleWithConfiguredBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".complyview.yaml"),
		[]byte("base_url: https://panther.example.com/app/\n"), 0644))

	out, err := run(t, "", "create", "Single", "--path", dir)
	require.NoError(t, err)
	assert.Equal(t, "https://panther.example.com/cloud-security/policies/new\n", out)
}

func TestCreateCommand_Bulk(t *testing.T) {
	out, err := run(t, "", "create", "bulk", "--path", t.TempDir())
	require.NoError(t, err)
	assert.JSONEq(t, `{"panelKind":"POLICY_BULK_UPLOAD","props":{"type":"policy"}}`, out)
}

func TestCreateCommand_JSONIntent(t *testing.T) {
	out, err := run(t, "", "create", "single", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"/cloud-security/policies/new"}`, out)
}

func TestCreateCommand_UnknownChoice(t *testing.T) {
	_, err := run(t, "", "create", "bluk")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownChoice)
	assert.Contains(t, err.Error(), `did you mean "bulk"`)
}

func TestMetricsServe_RejectsStdin(t *testing.T) {
	_, err := run(t, "", "metrics", "serve", "-", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestMetricsServe_RejectsBadInterval(t *testing.T) {
	_, err := run(t, "", "metrics", "serve", scenarioReport, "--interval", "-1s", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--interval")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "version")
	assert.Error(t, err)
}
