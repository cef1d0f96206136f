package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dtrack-tools/dtrack-report/pkg/config"
	"github.com/dtrack-tools/dtrack-report/pkg/dtrack"
	"github.com/dtrack-tools/dtrack-report/pkg/logger"
	"github.com/dtrack-tools/dtrack-report/pkg/output"
	"github.com/dtrack-tools/dtrack-report/pkg/report"
	"github.com/dtrack-tools/dtrack-report/pkg/tui"
)

var (
	format string // output format: text, json or sarif
	strict bool
	quiet  bool
)

// reportCmd represents the report subcommand
var reportCmd = &cobra.Command{
	Use:   "report [project]",
	Short: "Report direct dependencies and their vulnerabilities",
	Long: `Report lists a project's direct (root-level) dependencies with their
vulnerability findings and a severity summary.

With no argument every project on the server is reported. A single argument
is treated as a project UUID when it is 36 characters long and contains
exactly 4 hyphens, otherwise as a case-insensitive project name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or sarif")
	reportCmd.Flags().BoolVar(&strict, "strict", false, "Treat any fetch failure as a hard error instead of reporting partial data")
	reportCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Disable the progress bar in multi-project mode")
}

func runReport(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	checkServer(ctx, client)

	builder := &report.Builder{Client: client, Strict: strict}

	var reports []report.ProjectReport
	if len(args) == 1 {
		rep, err := reportOne(ctx, client, builder, args[0])
		if err != nil {
			return err
		}
		reports = []report.ProjectReport{rep}
	} else {
		reports, err = reportAll(ctx, client, builder)
		if err != nil {
			return err
		}
	}

	switch format {
	case "json":
		out, err := output.GenerateJSONReport(reports)
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		fmt.Println(string(out))
	case "sarif":
		out, err := output.GenerateSarifReport(reports, Version)
		if err != nil {
			return fmt.Errorf("failed to generate SARIF report: %w", err)
		}
		fmt.Println(string(out))
	case "text":
		var b strings.Builder
		if len(args) == 1 {
			output.WriteProjectReport(&b, reports[0])
		} else {
			output.WriteAllProjects(&b, reports)
		}
		fmt.Print(b.String())
	default:
		return fmt.Errorf("unknown format %q (expected text, json or sarif)", format)
	}

	return nil
}

// reportOne resolves a single project by UUID or name and builds its report.
// On a miss the available projects are listed before the error is returned,
// so the caller exits non-zero without losing the original tool's fallback
// listing.
func reportOne(ctx context.Context, client *dtrack.Client, builder *report.Builder, token string) (report.ProjectReport, error) {
	project, err := client.ResolveProject(ctx, token)
	if errors.Is(err, dtrack.ErrNotFound) {
		logger.Errorf("Project not found: %s", token)
		if projects, listErr := client.Projects(ctx); listErr == nil && len(projects) > 0 {
			fmt.Fprintln(os.Stderr, "\nAvailable projects:")
			output.WriteProjectList(os.Stderr, projects)
		}
		return report.ProjectReport{}, fmt.Errorf("project not found: %s", token)
	}
	if err != nil {
		return report.ProjectReport{}, err
	}
	return builder.Build(ctx, project)
}

// reportAll builds a report for every project on the server, in listing
// order. In text mode a progress bar tracks the per-project builds unless
// --quiet is given; the report itself is printed afterwards either way.
func reportAll(ctx context.Context, client *dtrack.Client, builder *report.Builder) ([]report.ProjectReport, error) {
	projects, err := client.Projects(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]report.ProjectReport, 0, len(projects))

	if quiet || format != "text" || len(projects) == 0 {
		for _, p := range projects {
			rep, err := builder.Build(ctx, p)
			if err != nil {
				return nil, err
			}
			reports = append(reports, rep)
		}
		return reports, nil
	}

	steps := make([]tui.Step, 0, len(projects))
	for _, p := range projects {
		project := p
		steps = append(steps, tui.Step{
			Label: project.Name,
			Run: func() error {
				rep, err := builder.Build(ctx, project)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
				return nil
			},
		})
	}

	finalModel, err := tea.NewProgram(tui.New(steps)).Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI: %w", err)
	}
	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		return nil, m.Err()
	}
	return reports, nil
}

// newClient loads the configuration and builds the API client from it.
func newClient() (*dtrack.Client, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return dtrack.NewClient(dtrack.Options{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		VerifyTLS: cfg.VerifyTLS,
	}), nil
}

// checkServer warns when the server predates the direct-dependencies
// endpoint. A failed version lookup is only a debug event.
func checkServer(ctx context.Context, client *dtrack.Client) {
	version, err := client.ServerVersion(ctx)
	if err != nil {
		logger.Debugf("server version lookup failed: %v", err)
		return
	}
	logger.Debugf("Dependency-Track server version %s", version)
	if err := dtrack.CheckServerVersion(version); err != nil {
		logger.Warnf("%v", err)
	}
}
