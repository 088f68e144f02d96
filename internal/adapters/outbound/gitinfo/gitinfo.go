package gitinfo

import (
	"fmt"

	"github.com/complyview/complyview/internal/domain"
	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.GitInfo using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (g *Adapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// Head returns the checked-out commit and, when HEAD is not detached, the
// branch name.
func (g *Adapter) Head(projectPath string) (domain.GitRef, error) {
	repo, err := open(projectPath)
	if err != nil {
		return domain.GitRef{}, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return domain.GitRef{}, fmt.Errorf("getting HEAD: %w", err)
	}

	ref := domain.GitRef{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		ref.Branch = head.Name().Short()
	}
	return ref, nil
}

// open finds the repository containing projectPath, which may be a
// subdirectory of the worktree.
func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}
