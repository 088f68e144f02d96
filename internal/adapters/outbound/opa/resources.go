package opa

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type resource struct {
	name string
	doc  interface{}
}

// loadResources reads every JSON or YAML document under dir. A file holding a
// list yields one resource per element.
func loadResources(dir string) ([]resource, error) {
	files, err := collectFiles(dir, ".json", ".yaml", ".yml")
	if err != nil {
		return nil, err
	}

	var out []resource
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}

		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f, err)
		}
		if doc == nil {
			continue
		}

		rel, err := filepath.Rel(dir, f)
		if err != nil {
			rel = filepath.Base(f)
		}
		rel = filepath.ToSlash(rel)

		if list, ok := doc.([]interface{}); ok {
			for i, item := range list {
				out = append(out, resource{name: resourceName(item, fmt.Sprintf("%s#%d", rel, i)), doc: item})
			}
			continue
		}
		out = append(out, resource{name: resourceName(doc, rel), doc: doc})
	}
	return out, nil
}

// resourceName prefers an "id" or "name" field over the fallback.
func resourceName(doc interface{}, fallback string) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return fallback
	}
	for _, key := range []string{"id", "name"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
