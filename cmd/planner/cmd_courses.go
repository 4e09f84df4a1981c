package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"studyplanner/internal/catalog"
	"studyplanner/internal/logging"
)

var (
	courseSearch   string
	courseCategory string
	courseLevel    string
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// coursesCmd browses the built-in catalog
var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List catalog courses",
	Long: `Lists courses from the built-in catalog. Filters combine; "all" matches
every category or level.

Example:
  planner courses --category "Data Science" --level beginner`,
	Args: cobra.NoArgs,
	RunE: runCoursesList,
}

var coursesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one course and its lessons",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoursesShow,
}

func init() {
	coursesCmd.Flags().StringVarP(&courseSearch, "search", "s", "", "Case-insensitive title or description match")
	coursesCmd.Flags().StringVar(&courseCategory, "category", "", "Category filter")
	coursesCmd.Flags().StringVar(&courseLevel, "level", "", "Skill level filter")
	coursesCmd.AddCommand(coursesShowCmd)
}

func runCoursesList(cmd *cobra.Command, args []string) error {
	courses := catalog.Default().Filter(catalog.Query{
		Search:   courseSearch,
		Category: courseCategory,
		Level:    courseLevel,
	})
	logging.Get(logging.CategoryCatalog).Debugw("catalog filtered",
		"search", courseSearch, "category", courseCategory, "level", courseLevel, "matches", len(courses))

	w := cmd.OutOrStdout()
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses match.")
		return nil
	}
	for _, c := range courses {
		writeCourseLine(w, c)
	}
	return nil
}

func writeCourseLine(w io.Writer, c catalog.Course) {
	fmt.Fprintf(w, "%s  %s\n", metaStyle.Render(fmt.Sprintf("[%s]", c.ID)), titleStyle.Render(c.Title))
	fmt.Fprintf(w, "     %s\n", metaStyle.Render(fmt.Sprintf("%s · %s · %s", c.Category, c.SkillLevel, c.Duration)))
}

func runCoursesShow(cmd *cobra.Command, args []string) error {
	c, ok := catalog.Default().Get(args[0])
	if !ok {
		return fmt.Errorf("course %q not found", args[0])
	}

	w := cmd.OutOrStdout()
	writeCourseLine(w, c)
	if c.Instructor != "" {
		fmt.Fprintf(w, "     Instructor: %s\n", c.Instructor)
	}
	fmt.Fprintln(w)
	desc := c.LongDescription
	if desc == "" {
		desc = c.Description
	}
	fmt.Fprintln(w, desc)
	if len(c.Tags) > 0 {
		fmt.Fprintf(w, "\nTags: %s\n", strings.Join(c.Tags, ", "))
	}
	if len(c.Lessons) > 0 {
		fmt.Fprintln(w, "\nLessons:")
		for i, l := range c.Lessons {
			fmt.Fprintf(w, "  %2d. %s (%s)\n", i+1, l.Title, l.Duration)
		}
	}
	return nil
}
