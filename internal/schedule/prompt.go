package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"studyplanner/internal/llm"
)

// CourseSeparator joins course names in the rendered prompt.
const CourseSeparator = ", "

const promptTemplate = `You are a study schedule generator. You will receive a list of courses a user is enrolled in and the amount of time they can dedicate to studying each week. You will generate a personalized study schedule that optimizes their learning.

Courses: %s
Available Time: %s hours per week

Here is the study schedule:
`

// OutputSchema is the shape the model must answer with.
var OutputSchema = &llm.Schema{
	Name:        "StudyScheduleOutput",
	Description: "A personalized weekly study schedule.",
	Properties: []llm.Property{
		{Name: "schedule", Description: "The generated study schedule.", Required: true},
	},
}

// RenderPrompt fills the fixed prompt template. It is pure: equal requests
// render to equal prompts.
func RenderPrompt(req ScheduleRequest) string {
	return fmt.Sprintf(promptTemplate,
		strings.Join(req.courses, CourseSeparator),
		FormatHours(req.availableHours))
}

// FormatHours renders hours with the fewest digits that round-trip: 10, 7.5.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
