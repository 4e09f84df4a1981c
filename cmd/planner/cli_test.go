package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/schedule"
)

type stubModel struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (s *stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSchema(ctx, prompt, nil)
}

func (s *stubModel) CompleteWithSchema(_ context.Context, prompt string, _ *llm.Schema) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

// setupCLI installs test globals and a stub provider.
func setupCLI(t *testing.T, model *stubModel) *bytes.Buffer {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	timeout = 0

	prev := newLLMClient
	newLLMClient = func(context.Context, config.LLMConfig) (llm.LLMClient, error) {
		if model == nil {
			return nil, llm.ErrNoAPIKey
		}
		return model, nil
	}
	t.Cleanup(func() {
		newLLMClient = prev
		genCourses, genHours, genRaw = "", "", false
		courseSearch, courseCategory, courseLevel = "", "", ""
		configForce = false
	})
	return new(bytes.Buffer)
}

func newTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestGenerateCmd(t *testing.T) {
	model := &stubModel{response: `{"schedule":"## Monday\nAlgebra 2h"}`}
	out := setupCLI(t, model)

	genCourses, genHours, genRaw = "Algebra, Physics", "6", true
	require.NoError(t, runGenerate(newTestCmd(out), nil))

	assert.Equal(t, "## Monday\nAlgebra 2h\n", out.String())
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "Courses: Algebra, Physics\n")
	assert.Contains(t, model.prompts[0], "Available Time: 6 hours per week")
}

func TestGenerateCmd_Rendered(t *testing.T) {
	model := &stubModel{response: `{"schedule":"# Week\n\n- Algebra"}`}
	out := setupCLI(t, model)

	genCourses, genHours = "Algebra", "3"
	require.NoError(t, runGenerate(newTestCmd(out), nil))
	assert.Contains(t, out.String(), "Algebra")
}

func TestGenerateCmd_ValidationBeforeProvider(t *testing.T) {
	// A nil model makes the provider constructor fail; validation must win.
	out := setupCLI(t, nil)

	genCourses, genHours = " , ", "10"
	err := runGenerate(newTestCmd(out), nil)
	assert.ErrorIs(t, err, schedule.ErrNoCourses)

	genCourses, genHours = "Algebra", "101"
	err = runGenerate(newTestCmd(out), nil)
	assert.ErrorIs(t, err, schedule.ErrHoursOutOfRange)
	assert.Empty(t, out.String())
}

func TestGenerateCmd_ProviderMissing(t *testing.T) {
	out := setupCLI(t, nil)

	genCourses, genHours = "Algebra", "10"
	err := runGenerate(newTestCmd(out), nil)
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)
}

func TestGenerateCmd_GenerationFailure(t *testing.T) {
	model := &stubModel{err: errors.New("quota exceeded for key sk-123")}
	out := setupCLI(t, model)

	genCourses, genHours = "Algebra", "10"
	err := runGenerate(newTestCmd(out), nil)
	require.Error(t, err)
	assert.True(t, schedule.IsGenerationError(err))
	assert.Equal(t, schedule.GenerationUnavailableMessage, err.Error())
	assert.NotContains(t, err.Error(), "sk-123")
}

func TestLLMTimeout(t *testing.T) {
	setupCLI(t, nil)
	assert.Equal(t, 120*time.Second, llmTimeout())

	timeout = 3 * time.Second
	assert.Equal(t, 3*time.Second, llmTimeout())
}

func TestCoursesCmd(t *testing.T) {
	out := setupCLI(t, nil)

	require.NoError(t, runCoursesList(newTestCmd(out), nil))
	assert.Contains(t, out.String(), "[1]")

	out.Reset()
	courseSearch = "no-such-course-anywhere"
	require.NoError(t, runCoursesList(newTestCmd(out), nil))
	assert.Equal(t, "No courses match.\n", out.String())
}

func TestCoursesShowCmd(t *testing.T) {
	out := setupCLI(t, nil)

	require.NoError(t, runCoursesShow(newTestCmd(out), []string{"1"}))
	assert.Contains(t, out.String(), "Lessons:")

	err := runCoursesShow(newTestCmd(out), []string{"nope"})
	assert.EqualError(t, err, `course "nope" not found`)
}

func TestConfigInitCmd(t *testing.T) {
	out := setupCLI(t, nil)
	t.Setenv("PLANNER_ADDR", "")
	prevPath := configPath
	configPath = filepath.Join(t.TempDir(), "conf", "planner.yaml")
	defer func() { configPath = prevPath }()

	require.NoError(t, runConfigInit(newTestCmd(out), nil))
	_, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Wrote "))

	err = runConfigInit(newTestCmd(out), nil)
	assert.ErrorContains(t, err, "already exists")

	configForce = true
	assert.NoError(t, runConfigInit(newTestCmd(out), nil))

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server, loaded.Server)
}
