// Command version bumps internal/version.go, tags the release and pushes it.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ImGajeed76/pydocstring/internal"
	"github.com/ImGajeed76/pydocstring/pkg/pydocstring/console"
)

const versionFile = "internal/version.go"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(internal.Theme.SuccessColor))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(internal.Theme.ErrorColor))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(internal.Theme.PrimaryColor))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(internal.Theme.TertiaryColor))

	semver = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
)

type step struct {
	name string
	run  func() error
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var yes, noPush bool

	cmd := &cobra.Command{
		Use:           "version VERSION",
		Short:         "Release a new pydocstring version",
		Example:       "  go run ./scripts/version 1.0.0\n  go run ./scripts/version v2.1.3 --no-push",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := normalizeVersion(args[0])
			if err != nil {
				return err
			}

			fmt.Println(infoStyle.Render(fmt.Sprintf("Releasing %s (current %s)", version, internal.Version)))
			fmt.Println(hintStyle.Render("  update " + versionFile + ", commit, tag " + version + ", push"))

			if !yes && !confirm(fmt.Sprintf("Release %s?", version)) {
				fmt.Println(hintStyle.Render("Aborted"))
				return nil
			}

			if hasUncommittedChanges() {
				return errors.New("you have uncommitted changes, commit or stash them first")
			}

			steps := []step{
				{"update " + versionFile, func() error { return os.WriteFile(versionFile, []byte(versionFileContent(version)), 0o644) }},
				{"commit", func() error { return gitCommit(version) }},
				{"tag " + version, func() error { return runCommand("git", "tag", "-a", version, "-m", "Release "+version) }},
			}
			if !noPush && (yes || confirm("Push to remote?")) {
				steps = append(steps,
					step{"push commit", func() error { return runCommand("git", "push", "origin", "HEAD") }},
					step{"push tag", func() error { return runCommand("git", "push", "origin", version) }},
				)
			} else {
				defer fmt.Println(hintStyle.Render("Push manually with: git push origin HEAD && git push origin " + version))
			}

			for _, s := range steps {
				if err := s.run(); err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
				fmt.Println(successStyle.Render("✓ " + s.name))
			}

			fmt.Println(successStyle.Render("Released " + version))
			fmt.Println(hintStyle.Render("Install with: go install github.com/ImGajeed76/pydocstring/cmd/pydocstring@" + version))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&noPush, "no-push", false, "commit and tag without pushing")
	return cmd
}

// normalizeVersion adds the v prefix and checks semantic versioning.
func normalizeVersion(version string) (string, error) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.MatchString(version) {
		return "", fmt.Errorf("invalid version %q, use v1.0.0 or 1.0.0", version)
	}
	return version, nil
}

func versionFileContent(version string) string {
	return fmt.Sprintf("package internal\n\nvar Version = %q\n", version)
}

func confirm(question string) bool {
	opts := console.DefaultYesNoOptions()
	opts.Prompt = question
	opts.DefaultYes = false
	ok, err := console.YesNo(opts)
	return err == nil && ok
}

func hasUncommittedChanges() bool {
	output, err := exec.Command("git", "status", "--porcelain").Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

func gitCommit(version string) error {
	if err := runCommand("git", "add", versionFile); err != nil {
		return err
	}
	return runCommand("git", "commit", "-m", "chore: bump version to "+version)
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
