package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/complyview/complyview/internal/domain"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Stdin is the path that makes Load read from standard input.
const Stdin = "-"

// envelopeKey wraps the report in dashboard API responses.
const envelopeKey = "appliedPolicies"

var logger = log.WithField("package", "report")

// FileSource implements domain.ReportSource for JSON and YAML files.
type FileSource struct {
	stdin io.Reader
}

// New creates a FileSource that reads "-" from os.Stdin.
func New() *FileSource { return &FileSource{stdin: os.Stdin} }

// NewWithStdin creates a FileSource that reads "-" from r.
func NewWithStdin(r io.Reader) *FileSource { return &FileSource{stdin: r} }

// Load reads a severity report from path.
func (s *FileSource) Load(path string) (domain.SeverityReport, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(s.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.SeverityReport{}, fmt.Errorf("reading report: %w", err)
	}

	report, err := Decode(data)
	if err != nil {
		return domain.SeverityReport{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.WithField("path", path).Debug("loaded report")
	return report, nil
}

// Decode parses a report. Both the bare form and the {"appliedPolicies": ...}
// envelope are accepted. Severity and status keys are case-insensitive and
// missing severities count as zero. Keys that differ only in case are
// duplicates.
func Decode(data []byte) (domain.SeverityReport, error) {
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return domain.SeverityReport{}, err
	}

	if env, ok := top[envelopeKey]; ok {
		top = nil
		if err := env.Decode(&top); err != nil {
			return domain.SeverityReport{}, fmt.Errorf("%s: %w", envelopeKey, err)
		}
	}

	var report domain.SeverityReport
	seen := make(map[domain.Severity]bool, len(top))
	for _, key := range sortedKeys(top) {
		sev, err := domain.ParseSeverity(key)
		if err != nil {
			return domain.SeverityReport{}, err
		}
		if seen[sev] {
			return domain.SeverityReport{}, fmt.Errorf("duplicate severity %q", sev)
		}
		seen[sev] = true

		counts, err := decodeCounts(top[key])
		if err != nil {
			return domain.SeverityReport{}, fmt.Errorf("%s: %w", sev, err)
		}
		report = report.With(sev, counts)
	}
	return report, nil
}

func decodeCounts(node yaml.Node) (domain.StatusCounts, error) {
	var raw map[string]int
	if err := node.Decode(&raw); err != nil {
		return domain.StatusCounts{}, err
	}

	var counts domain.StatusCounts
	seen := make(map[domain.Status]bool, len(raw))
	for _, key := range sortedKeys(raw) {
		n := raw[key]
		st, err := domain.ParseStatus(key)
		if err != nil {
			return domain.StatusCounts{}, err
		}
		if seen[st] {
			return domain.StatusCounts{}, fmt.Errorf("duplicate status %q", st)
		}
		seen[st] = true
		if n < 0 {
			return domain.StatusCounts{}, fmt.Errorf("%s count must be >= 0 (got %d)", st, n)
		}
		switch st {
		case domain.StatusPass:
			counts.Pass = n
		case domain.StatusFail:
			counts.Fail = n
		case domain.StatusError:
			counts.Error = n
		}
	}
	return counts, nil
}

// sortedKeys fixes the order keys are read in so errors are stable.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
