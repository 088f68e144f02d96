package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/complyview/complyview/internal/domain"
)

// Store is a file-based implementation of domain.EvaluationCache.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the cached evaluation for a project. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.CachedEvaluation, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cached domain.CachedEvaluation
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decoding evaluation cache: %w", err)
	}
	return &cached, nil
}

// Save writes the evaluation to disk, creating directories as needed.
func (s *Store) Save(cached *domain.CachedEvaluation) error {
	if cached.Evaluation == nil {
		return fmt.Errorf("refusing to cache an empty evaluation")
	}
	if err := os.MkdirAll(cacheDir(cached.ProjectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(cached.ProjectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".complyview", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "evaluation.json")
}
