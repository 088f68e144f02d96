package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the risk level assigned to a policy.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Status is the outcome of evaluating a policy.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusError Status = "error"
)

var (
	ErrUnknownSeverity = errors.New("unknown severity")
	ErrUnknownStatus   = errors.New("unknown status")
)

// Severities returns every severity, most severe first. Charts and reports
// always follow this order.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// Statuses returns the statuses that count toward the evaluated policy total.
func Statuses() []Status {
	return []Status{StatusFail, StatusError, StatusPass}
}

func (s Severity) String() string { return string(s) }

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Rank orders severities for sorting; critical is 0.
func (s Severity) Rank() int {
	for i, sev := range Severities() {
		if sev == s {
			return i
		}
	}
	return len(Severities())
}

func (s Status) String() string { return string(s) }

func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusError:
		return true
	}
	return false
}

// ParseSeverity accepts any casing ("HIGH", "High", "high").
func ParseSeverity(raw string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if sev.Valid() {
		return sev, nil
	}
	names := make([]string, 0, len(Severities()))
	for _, s := range Severities() {
		names = append(names, string(s))
	}
	return "", unknownValueError(ErrUnknownSeverity, raw, names)
}

// ParseStatus accepts any casing ("FAIL", "fail").
func ParseStatus(raw string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(raw)))
	if st.Valid() {
		return st, nil
	}
	return "", unknownValueError(ErrUnknownStatus, raw, []string{"pass", "fail", "error"})
}

// ParseStatuses parses a list of status names, dropping duplicates.
func ParseStatuses(raw []string) ([]Status, error) {
	var out []Status
	seen := make(map[Status]bool)
	for _, r := range raw {
		st, err := ParseStatus(r)
		if err != nil {
			return nil, err
		}
		if seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out, nil
}

func unknownValueError(sentinel error, raw string, valid []string) error {
	if hint := Suggest(raw, valid); hint != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", sentinel, raw, hint)
	}
	return fmt.Errorf("%w %q (valid: %s)", sentinel, raw, strings.Join(valid, ", "))
}
