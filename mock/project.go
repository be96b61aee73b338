// Package mock provides mock implementations of docdex service interfaces
// for testing.
package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of docdex.ProjectService.
type ProjectService struct {
	CreateProjectFn   func(ctx context.Context, project *docdex.Project) error
	FindProjectByIDFn func(ctx context.Context, id string) (*docdex.Project, error)
	FindProjectsFn    func(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error)
	UpdateProjectFn   func(ctx context.Context, id string, upd docdex.ProjectUpdate) (*docdex.Project, error)
	DeleteProjectFn   func(ctx context.Context, id string) error
}

func (s *ProjectService) CreateProject(ctx context.Context, project *docdex.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectService) FindProjectByID(ctx context.Context, id string) (*docdex.Project, error) {
	return s.FindProjectByIDFn(ctx, id)
}

func (s *ProjectService) FindProjects(ctx context.Context, filter docdex.ProjectFilter) ([]*docdex.Project, error) {
	return s.FindProjectsFn(ctx, filter)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id string, upd docdex.ProjectUpdate) (*docdex.Project, error) {
	return s.UpdateProjectFn(ctx, id, upd)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.DeleteProjectFn(ctx, id)
}
