package loader

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jask/catalog/internal/content"
)

// GitReader returns commit metadata for a file, or nil when the file is not
// tracked.
type GitReader interface {
	Info(ctx context.Context, path string) (*content.GitInfo, error)
}

// ExecGit shells out to the git binary.
type ExecGit struct{}

const logFormat = "%H%x1f%an%x1f%ae%x1f%aI%x1f%s"

func (ExecGit) Info(ctx context.Context, path string) (*content.GitInfo, error) {
	cmd := exec.CommandContext(ctx, "git", "log", "--follow", "--format="+logFormat, "--", filepath.Base(path))
	cmd.Dir = filepath.Dir(path)
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// outside a repository
			return nil, nil
		}
		return nil, fmt.Errorf("git log %s: %w", path, err)
	}
	return parseLog(string(output))
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// parseLog reads `git log` output, newest commit first. The newest commit
// supplies hash, author and message; the oldest supplies the created date.
func parseLog(output string) (*content.GitInfo, error) {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	newest, err := parseLogLine(lines[0])
	if err != nil {
		return nil, err
	}
	oldest := newest
	if len(lines) > 1 {
		if oldest, err = parseLogLine(lines[len(lines)-1]); err != nil {
			return nil, err
		}
	}
	return &content.GitInfo{
		Author:           newest.author,
		AuthorEmail:      newest.email,
		CreatedDate:      oldest.date,
		LastModifiedDate: newest.date,
		CommitHash:       newest.hash,
		CommitMessage:    newest.subject,
	}, nil
}

type logEntry struct {
	hash, author, email, subject string
	date                         time.Time
}

func parseLogLine(line string) (logEntry, error) {
	parts := strings.SplitN(line, "\x1f", 5)
	if len(parts) != 5 {
		return logEntry{}, fmt.Errorf("git log: malformed line %q", line)
	}
	date, err := time.Parse(time.RFC3339, parts[3])
	if err != nil {
		return logEntry{}, fmt.Errorf("git log date: %w", err)
	}
	return logEntry{
		hash:    parts[0],
		author:  parts[1],
		email:   parts[2],
		date:    date.UTC(),
		subject: parts[4],
	}, nil
}
