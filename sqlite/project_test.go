package sqlite_test

import (
	"context"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	t.Run("creates project with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		project := &docdex.Project{Name: "dodiscover-docs", SourcePath: "/src/docs"}
		err := s.CreateProject(context.Background(), project)

		require.NoError(t, err)
		assert.NotEmpty(t, project.ID)
		assert.False(t, project.CreatedAt.IsZero())
		assert.False(t, project.UpdatedAt.IsZero())
	})

	t.Run("rejects invalid project", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		err := s.CreateProject(context.Background(), &docdex.Project{Name: ""})

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects project with both source path and URL", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		err := s.CreateProject(context.Background(), &docdex.Project{
			Name:       "dual",
			SourcePath: "/src",
			SourceURL:  "https://docs.example.com",
		})

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for duplicate name", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateProject(ctx, &docdex.Project{Name: "dup", SourcePath: "/a"}))
		err := s.CreateProject(ctx, &docdex.Project{Name: "dup", SourcePath: "/b"})

		require.Error(t, err)
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
	})
}

func TestProjectService_FindProjectByID(t *testing.T) {
	t.Parallel()

	t.Run("finds created project", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)
		ctx := context.Background()

		project := &docdex.Project{Name: "site", SourceURL: "https://docs.example.com"}
		require.NoError(t, s.CreateProject(ctx, project))

		got, err := s.FindProjectByID(ctx, project.ID)

		require.NoError(t, err)
		assert.Equal(t, "site", got.Name)
		assert.Equal(t, "https://docs.example.com", got.SourceURL)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		_, err := s.FindProjectByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestProjectService_FindProjects(t *testing.T) {
	t.Parallel()

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateProject(ctx, &docdex.Project{Name: "one", SourcePath: "/a"}))
		require.NoError(t, s.CreateProject(ctx, &docdex.Project{Name: "two", SourcePath: "/b"}))

		name := "two"
		projects, err := s.FindProjects(ctx, docdex.ProjectFilter{Name: &name})

		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "two", projects[0].Name)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)
		ctx := context.Background()

		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, s.CreateProject(ctx, &docdex.Project{Name: name, SourcePath: "/" + name}))
		}

		projects, err := s.FindProjects(ctx, docdex.ProjectFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	t.Parallel()

	t.Run("updates fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)
		ctx := context.Background()

		project := &docdex.Project{Name: "before", SourcePath: "/old"}
		require.NoError(t, s.CreateProject(ctx, project))

		newName := "after"
		newPath := "/new"
		got, err := s.UpdateProject(ctx, project.ID, docdex.ProjectUpdate{Name: &newName, SourcePath: &newPath})

		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
		assert.Equal(t, "/new", got.SourcePath)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		_, err := s.UpdateProject(context.Background(), "missing", docdex.ProjectUpdate{})

		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestProjectService_DeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("deletes project and cascades to documents", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		projects := sqlite.NewProjectService(db)
		documents := sqlite.NewDocumentService(db)
		ctx := context.Background()

		project := &docdex.Project{Name: "doomed", SourcePath: "/src"}
		require.NoError(t, projects.CreateProject(ctx, project))
		require.NoError(t, documents.CreateDocument(ctx, &docdex.Document{
			ProjectID: project.ID,
			FilePath:  "index.md",
			Content:   "# Overview",
		}))

		require.NoError(t, projects.DeleteProject(ctx, project.ID))

		docs, err := documents.FindDocuments(ctx, docdex.DocumentFilter{ProjectID: &project.ID})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProjectService(db)

		err := s.DeleteProject(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}
