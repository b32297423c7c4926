package ports

import (
	"context"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// StudentRepository is the persistence surface for student and grade rows.
// All operations are single parameterized statements with no cross-row
// invariants.
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	InsertStudent(ctx context.Context, name, surname, groupName string) error
	UpdateStudent(ctx context.Context, id int, name, surname, groupName string) error
	DeleteStudent(ctx context.Context, id int) error

	GradesByStudent(ctx context.Context, studentID int) ([]domain.Grade, error)
	ListGrades(ctx context.Context) ([]domain.Grade, error)
	InsertGrade(ctx context.Context, g domain.Grade) error
	UpdateGrade(ctx context.Context, g domain.Grade) error
	DeleteGrade(ctx context.Context, id int) error
}
