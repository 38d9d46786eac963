package git

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os/exec"
	"strings"
)

type pullRequest struct {
	Number      int    `json:"number"`
	HeadRefName string `json:"headRefName"`
}

// PRMap returns open pull request numbers keyed by head branch name.
// The gh CLI is optional tooling, so every failure (missing binary,
// unauthenticated, not a GitHub repo, bad output) degrades to an empty
// map instead of an error
func PRMap() map[string]int {
	ghPath, err := exec.LookPath("gh")
	if err != nil {
		slog.Debug("gh not found in PATH, skipping PR lookup")
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(ghPath, "pr", "list", "--json", "headRefName,number", "--limit", "1000")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Debug("gh pr list failed",
			"error", err, "stderr", strings.TrimSpace(stderr.String()))
		return nil
	}

	var prs []pullRequest
	if err := json.Unmarshal(stdout.Bytes(), &prs); err != nil {
		slog.Debug("gh pr list returned unexpected output", "error", err)
		return nil
	}

	result := make(map[string]int, len(prs))
	for _, pr := range prs {
		result[pr.HeadRefName] = pr.Number
	}
	return result
}
