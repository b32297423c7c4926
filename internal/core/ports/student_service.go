package ports

import (
	"context"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

// StudentService exposes the student/grade CRUD and the exam prediction.
type StudentService interface {
	ListStudents(ctx context.Context) ([]domain.Student, error)
	AddStudent(ctx context.Context, name, surname, groupName string) error
	UpdateStudent(ctx context.Context, id int, name, surname, groupName string) error
	DeleteStudent(ctx context.Context, id int) error

	StudentGrades(ctx context.Context, studentID int) ([]domain.Grade, error)
	ListGrades(ctx context.Context) ([]domain.Grade, error)
	AddGrade(ctx context.Context, g domain.Grade) error
	UpdateGrade(ctx context.Context, g domain.Grade) error
	DeleteGrade(ctx context.Context, id int) error

	PredictExamSuccess(ctx context.Context, studentID int) (domain.Prediction, error)
}
