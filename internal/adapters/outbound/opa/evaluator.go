// Package opa evaluates Rego compliance policies against resource documents
// and counts the outcomes per severity.
//
// A policy is a Rego package that defines:
//
//	severity := "high"            # required: critical, high, medium, low or info
//	title := "Public S3 buckets"  # optional
//	deny[msg] { ... }             # required: one message per violation
package opa

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/complyview/complyview/internal/domain"
	"github.com/open-policy-agent/opa/ast"
	"github.com/open-policy-agent/opa/rego"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("package", "opa")

// Evaluator implements domain.PolicyEvaluator with the OPA Rego engine.
type Evaluator struct{}

// New creates an Evaluator.
func New() *Evaluator { return &Evaluator{} }

type policy struct {
	id       string
	title    string
	severity domain.Severity
	file     string
	deny     rego.PreparedEvalQuery
}

// Evaluate runs every policy under policiesDir against every resource under
// resourcesDir. A policy fails if it denies any resource and errors if it
// cannot be evaluated for any resource.
func (e *Evaluator) Evaluate(ctx context.Context, policiesDir, resourcesDir string) (*domain.Evaluation, error) {
	policies, err := loadPolicies(ctx, policiesDir)
	if err != nil {
		return nil, fmt.Errorf("loading policies: %w", err)
	}

	resources, err := loadResources(resourcesDir)
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}

	logger.WithFields(log.Fields{
		"policies":  len(policies),
		"resources": len(resources),
	}).Debug("evaluating")

	results := make([]domain.PolicyResult, 0, len(policies))
	for _, p := range policies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcomes := make([]domain.ResourceOutcome, 0, len(resources))
		for _, r := range resources {
			outcomes = append(outcomes, p.evaluate(ctx, r))
		}

		results = append(results, domain.PolicyResult{
			ID:        p.id,
			Title:     p.title,
			Severity:  p.severity,
			Status:    domain.RollupStatus(outcomes),
			File:      p.file,
			Resources: outcomes,
		})
	}

	domain.SortResults(results)

	return &domain.Evaluation{
		EvaluatedAt: time.Now().UTC(),
		Policies:    results,
		Resources:   len(resources),
		Report:      domain.ReportFromResults(results),
	}, nil
}

func (p *policy) evaluate(ctx context.Context, r resource) domain.ResourceOutcome {
	out := domain.ResourceOutcome{Resource: r.name}

	rs, err := p.deny.Eval(ctx, rego.EvalInput(r.doc))
	if err != nil {
		logger.WithFields(log.Fields{"policy": p.id, "resource": r.name}).WithError(err).Debug("evaluation error")
		out.Status = domain.StatusError
		out.Error = err.Error()
		return out
	}

	out.Messages = denyMessages(rs)
	if len(out.Messages) > 0 {
		out.Status = domain.StatusFail
	} else {
		out.Status = domain.StatusPass
	}
	return out
}

func denyMessages(rs rego.ResultSet) []string {
	var msgs []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			values, ok := expr.Value.([]interface{})
			if !ok {
				continue
			}
			for _, v := range values {
				if s, ok := v.(string); ok {
					msgs = append(msgs, s)
				} else {
					msgs = append(msgs, fmt.Sprint(v))
				}
			}
		}
	}
	sort.Strings(msgs)
	return msgs
}

func loadPolicies(ctx context.Context, dir string) ([]*policy, error) {
	files, err := collectFiles(dir, ".rego")
	if err != nil {
		return nil, err
	}

	modules := make(map[string]*ast.Module, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, "_test.rego") {
			continue
		}
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		mod, err := ast.ParseModule(f, string(src))
		if err != nil {
			return nil, err
		}
		modules[f] = mod
	}

	compiler := ast.NewCompiler()
	compiler.Compile(modules)
	if compiler.Failed() {
		return nil, compiler.Errors
	}

	// Several files may contribute to one package; each package is one policy.
	byPackage := make(map[string]*policyDecl)
	var order []string
	for _, f := range files {
		mod, ok := modules[f]
		if !ok {
			continue
		}
		path := mod.Package.Path.String()
		decl, seen := byPackage[path]
		if !seen {
			decl = &policyDecl{path: path, file: f}
			byPackage[path] = decl
			order = append(order, path)
		}
		decl.absorb(mod)
	}
	sort.Strings(order)

	policies := make([]*policy, 0, len(order))
	for _, path := range order {
		p, err := byPackage[path].prepare(ctx, compiler)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

type policyDecl struct {
	path        string
	file        string
	hasDeny     bool
	hasSeverity bool
	hasTitle    bool
}

func (d *policyDecl) absorb(mod *ast.Module) {
	for _, rule := range mod.Rules {
		switch ruleName(rule) {
		case "deny":
			d.hasDeny = true
		case "severity":
			d.hasSeverity = true
		case "title":
			d.hasTitle = true
		}
	}
}

func (d *policyDecl) prepare(ctx context.Context, compiler *ast.Compiler) (*policy, error) {
	id := strings.TrimPrefix(d.path, "data.")
	if !d.hasDeny {
		return nil, fmt.Errorf("policy %s (%s): no deny rule", id, d.file)
	}
	if !d.hasSeverity {
		return nil, fmt.Errorf("policy %s (%s): no severity rule", id, d.file)
	}

	rawSeverity, err := evalString(ctx, compiler, d.path+".severity")
	if err != nil {
		return nil, fmt.Errorf("policy %s: severity: %w", id, err)
	}
	sev, err := domain.ParseSeverity(rawSeverity)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", id, err)
	}

	title := humanize(lastSegment(id))
	if d.hasTitle {
		if t, err := evalString(ctx, compiler, d.path+".title"); err == nil && t != "" {
			title = t
		}
	}

	deny, err := rego.New(
		rego.Query(d.path+".deny"),
		rego.Compiler(compiler),
		rego.StrictBuiltinErrors(true),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("policy %s: preparing deny: %w", id, err)
	}

	return &policy{
		id:       id,
		title:    title,
		severity: sev,
		file:     d.file,
		deny:     deny,
	}, nil
}

func evalString(ctx context.Context, compiler *ast.Compiler, query string) (string, error) {
	rs, err := rego.New(rego.Query(query), rego.Compiler(compiler)).Eval(ctx)
	if err != nil {
		return "", err
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return "", fmt.Errorf("%s is undefined", query)
	}
	s, ok := rs[0].Expressions[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", query)
	}
	return s, nil
}

func ruleName(rule *ast.Rule) string {
	ref := rule.Head.Ref()
	if len(ref) == 0 {
		return ""
	}
	return ref[0].Value.String()
}

func lastSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}

func collectFiles(dir string, exts ...string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == e {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}
