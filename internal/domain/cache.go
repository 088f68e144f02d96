package domain

// CachedEvaluation is the last evaluation stored for a project, together
// with the inputs it was computed from.
type CachedEvaluation struct {
	ProjectPath  string      `json:"project_path"`
	PoliciesDir  string      `json:"policies_dir"`
	ResourcesDir string      `json:"resources_dir"`
	Evaluation   *Evaluation `json:"evaluation"`
}

// Matches reports whether the cache was built from the given inputs.
func (c *CachedEvaluation) Matches(policiesDir, resourcesDir string) bool {
	return c.PoliciesDir == policiesDir && c.ResourcesDir == resourcesDir
}
