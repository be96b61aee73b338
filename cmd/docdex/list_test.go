package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	main "github.com/docdex/docdex/cmd/docdex"
	"github.com/docdex/docdex/mock"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists projects with ID, name, and source", func(t *testing.T) {
		t.Parallel()

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, _ docdex.ProjectFilter) ([]*docdex.Project, error) {
				return []*docdex.Project{
					{ID: "proj-123", Name: "dodiscover", SourceURL: "https://dodiscover.example.com/en/stable/"},
					{ID: "proj-456", Name: "local-docs", SourcePath: "/home/dev/docs"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Projects: projects,
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "proj-123")
		assert.Contains(t, output, "dodiscover")
		assert.Contains(t, output, "https://dodiscover.example.com/en/stable/")
		assert.Contains(t, output, "/home/dev/docs")
	})

	t.Run("shows helpful message when no projects exist", func(t *testing.T) {
		t.Parallel()

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, _ docdex.ProjectFilter) ([]*docdex.Project, error) {
				return []*docdex.Project{}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Projects: projects,
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No projects")
	})

	t.Run("returns error when FindProjects fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context, _ docdex.ProjectFilter) ([]*docdex.Project, error) {
				return nil, dbErr
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Projects: projects,
		}

		cmd := &main.ListCmd{}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
