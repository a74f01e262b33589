package history

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Surush0098/techionn/internal/retry"
)

// GitCommitter pushes the history file into a git remote so the next
// CI invocation starts from the updated log.
type GitCommitter struct {
	repoDir     string
	historyFile string
	authorName  string
	authorEmail string
	retryCfg    retry.Config
}

func NewGitCommitter(historyPath string) *GitCommitter {
	dir := filepath.Dir(historyPath)
	if dir == "" {
		dir = "."
	}
	return &GitCommitter{
		repoDir:     dir,
		historyFile: filepath.Base(historyPath),
		authorName:  "News Bot",
		authorEmail: "bot@noreply.github.com",
		retryCfg: retry.Config{
			MaxAttempts: 2,
			Delay:       3 * time.Second,
		},
	}
}

// CommitAppend stages, commits and pushes the history file.
// The push is retried once; a failed push only costs durability of the
// latest record, never the run.
func (g *GitCommitter) CommitAppend(ctx context.Context) error {
	steps := [][]string{
		{"git", "config", "user.name", g.authorName},
		{"git", "config", "user.email", g.authorEmail},
		{"git", "add", g.historyFile},
		{"git", "commit", "-m", "Update history"},
	}
	for _, args := range steps {
		if out, err := g.run(ctx, args...); err != nil {
			return fmt.Errorf("%s: %w (%s)", args[1], err, out)
		}
	}

	return retry.WithRetry(ctx, g.retryCfg, func() error {
		out, err := g.run(ctx, "git", "push")
		if err != nil {
			return fmt.Errorf("push: %w (%s)", err, out)
		}
		return nil
	})
}

func (g *GitCommitter) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = g.repoDir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
