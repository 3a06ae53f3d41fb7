package grade

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

var ErrNotFound = core.NewNotFoundError("grade")

type (
	// Repository reads return grades with StudentName and CourseName resolved.
	Repository interface {
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		QueryGrades(ctx context.Context) ([]Grade, error) // ordered by ID
		GetGradeByID(ctx context.Context, id int64) (Grade, error)
		UpdateGrade(ctx context.Context, grd Grade) (Grade, error)
		DeleteGrade(ctx context.Context, id int64) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	grd := Grade{
		StudentID: ng.StudentID,
		CourseID:  ng.CourseID,
		Score:     ng.Score,
		CreatedAt: core.Now(),
	}
	return svc.repo.CreateGrade(ctx, grd)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Grade, error) {
	return svc.repo.GetGradeByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int64, ug UpdateGrade) (Grade, error) {
	grd, err := svc.repo.GetGradeByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	grd = ug.Apply(grd)
	if err = svc.validate.Struct(grd); err != nil {
		return Grade{}, err
	}
	return svc.repo.UpdateGrade(ctx, grd)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteGrade(ctx, id)
}
