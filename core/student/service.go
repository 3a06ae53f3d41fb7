package student

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

var ErrNotFound = core.NewNotFoundError("student")

type (
	// Repository reads return students with CourseName resolved;
	// a dangling CourseID yields a null CourseName.
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryStudents(ctx context.Context) ([]Student, error) // ordered by ID
		GetStudentByID(ctx context.Context, id int64) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudent(ctx context.Context, id int64) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	std := Student{
		Name:      ns.Name,
		Email:     ns.Email,
		CourseID:  ns.CourseID,
		CreatedAt: core.Now(),
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// Update replaces the provided fields; ID and CreatedAt are preserved.
func (svc *Service) Update(ctx context.Context, id int64, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	std = us.Apply(std)
	if err = svc.validate.Struct(std); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *Service) Delete(ctx context.Context, id int64) error {
	return svc.repo.DeleteStudent(ctx, id)
}
