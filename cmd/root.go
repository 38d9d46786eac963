package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/branchpick/branchpick/internal/git"
	"github.com/branchpick/branchpick/internal/ui"
)

// version is overridden at release time via -ldflags
var version = "dev"

var (
	noPR      bool
	maxHeight int
	debugLog  string
)

var rootCmd = &cobra.Command{
	Use:   "branchpick",
	Short: "An interactive picker for local git branches",
	Long: `branchpick lists your local branches sorted by most recent commit,
annotated with tracking status and open pull request numbers.
Pick one with enter to check it out.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPicker,
}

func init() {
	rootCmd.Flags().BoolVar(&noPR, "no-pr", false, "skip the GitHub pull request lookup")
	rootCmd.Flags().IntVar(&maxHeight, "height", ui.DefaultMaxHeight, "maximum height of the branch list")
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "", "write JSON debug records to this file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runPicker(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	if !git.InsideWorkTree() {
		return errors.New("not a git repository")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	// Both lookups finish before the picker starts; the listing is
	// immutable for the lifetime of the session
	var prs map[string]int
	if !noPR {
		prs = git.PRMap()
	}
	branches, err := git.ListBranches(prs)
	if err != nil {
		return err
	}

	program := tea.NewProgram(ui.NewModel(branches, maxHeight))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	if model, ok := final.(ui.Model); ok {
		if name := model.Confirmed(); name != "" {
			return git.Checkout(name)
		}
	}
	return nil
}

// setupLogging routes slog records to the --debug-log file, or discards
// them entirely, so nothing writes to the terminal while the picker owns it
func setupLogging() (func(), error) {
	if debugLog == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return func() {}, nil
	}

	file, err := os.Create(debugLog)
	if err != nil {
		return nil, fmt.Errorf("cannot open debug log %s: %w", debugLog, err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
	return func() { file.Close() }, nil
}
