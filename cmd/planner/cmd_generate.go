package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studyplanner/internal/schedule"
)

var (
	genCourses string
	genHours   string
	genRaw     bool
)

// generateCmd produces one schedule and prints it
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly study schedule",
	Long: `Validates the course list and weekly hours, then asks the model for a
schedule and renders the result as markdown.

Example:
  planner generate --courses "Intro to Python, Web Basics" --hours 10`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genCourses, "courses", "", "Comma-separated course names")
	generateCmd.Flags().StringVar(&genHours, "hours", "", "Available study hours per week (1-100)")
	generateCmd.Flags().BoolVar(&genRaw, "raw", false, "Print the schedule without markdown rendering")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Reject bad input before any provider is constructed.
	if _, err := schedule.ParseRequest(genCourses, genHours); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), llmTimeout())
	defer cancel()

	svc, err := buildService(ctx)
	if err != nil {
		return fmt.Errorf("model provider unavailable: %w", err)
	}

	flow := schedule.NewFlow(svc)
	flow.Observe = func(s schedule.State) {
		logger.Debug("flow state", zap.Stringer("state", s))
	}

	resp, err := flow.Run(ctx, genCourses, genHours)
	if err != nil {
		return err
	}
	return printSchedule(cmd.OutOrStdout(), resp.ScheduleText, genRaw)
}

func printSchedule(w io.Writer, text string, raw bool) error {
	if raw {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		_, err = fmt.Fprintln(w, text)
		return err
	}
	out, err := renderer.Render(text)
	if err != nil {
		_, err = fmt.Fprintln(w, text)
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
