package git

import (
	"bufio"
	"bytes"
	"cmp"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/branchpick/branchpick/internal/models"
)

// refFormat is the pipe-delimited field list requested from for-each-ref:
// current marker, short name, tracking status, relative date, unix date,
// upstream short name.
const refFormat = "%(HEAD)|%(refname:short)|%(upstream:track,nobracket)|%(committerdate:relative)|%(committerdate:unix)|%(upstream:short)"

// ListBranches returns all local branches sorted by most recent commit
// first, annotated with open PR numbers from prs
func ListBranches(prs map[string]int) ([]models.Branch, error) {
	output, err := run("for-each-ref", "--format="+refFormat, "refs/heads/")
	if err != nil {
		return nil, err
	}
	return parseBranches(output, prs), nil
}

func parseBranches(output []byte, prs map[string]int) []models.Branch {
	var branches []models.Branch
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 6 {
			continue
		}

		// Unparsable dates sort last rather than aborting the listing;
		// on overflow ParseInt returns a clamped value, not zero
		epoch, err := strconv.ParseInt(strings.TrimSpace(parts[4]), 10, 64)
		if err != nil {
			epoch = 0
		}

		branch := models.Branch{
			Name:        parts[1],
			IsCurrent:   strings.TrimSpace(parts[0]) != "",
			HasUpstream: strings.TrimSpace(parts[5]) != "",
			Tracking:    strings.TrimSpace(parts[2]),
			LastCommit:  strings.TrimSpace(parts[3]),
			CommitEpoch: epoch,
		}
		branch.PRNumber = prs[branch.Name]

		branches = append(branches, branch)
	}

	// Stable so branches with identical commit times keep git's output order
	slices.SortStableFunc(branches, func(a, b models.Branch) int {
		return cmp.Compare(b.CommitEpoch, a.CommitEpoch)
	})

	return branches
}

// Checkout switches the working tree to the named branch. Git's output
// stays connected to the terminal so its own messaging reaches the user
func Checkout(name string) error {
	cmd := exec.Command("git", "checkout", name)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git checkout %s: %w", name, err)
	}
	return nil
}

// InsideWorkTree reports whether the current directory is inside a git work tree
func InsideWorkTree() bool {
	output, err := run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// run executes a git subcommand and returns its stdout, folding captured
// stderr into the error on failure
func run(args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command("git", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w (stderr: %s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
