package course

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

var ErrNotFound = core.NewNotFoundError("course")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryCourses returns all courses ordered by ID.
		QueryCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int64) (Course, error)
		// UpdateCourse returns ErrNotFound if no course has crs.ID.
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		// DeleteCourse is a no-op for unknown IDs.
		DeleteCourse(ctx context.Context, id int64) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(ctx, Course{Name: nc.Name})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	crs = uc.Apply(crs)
	if err = svc.validate.Struct(crs); err != nil {
		return Course{}, err
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteCourse(ctx, id)
}
