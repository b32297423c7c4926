package service

import (
	"context"
	"errors"
	"testing"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

type stubStudentRepo struct {
	grades   []domain.Grade
	students []domain.Student
	err      error
}

func (r *stubStudentRepo) ListStudents(context.Context) ([]domain.Student, error) {
	return r.students, r.err
}
func (r *stubStudentRepo) InsertStudent(context.Context, string, string, string) error {
	return r.err
}
func (r *stubStudentRepo) UpdateStudent(context.Context, int, string, string, string) error {
	return r.err
}
func (r *stubStudentRepo) DeleteStudent(context.Context, int) error { return r.err }

func (r *stubStudentRepo) GradesByStudent(context.Context, int) ([]domain.Grade, error) {
	return r.grades, r.err
}
func (r *stubStudentRepo) ListGrades(context.Context) ([]domain.Grade, error) {
	return r.grades, r.err
}
func (r *stubStudentRepo) InsertGrade(context.Context, domain.Grade) error { return r.err }
func (r *stubStudentRepo) UpdateGrade(context.Context, domain.Grade) error { return r.err }
func (r *stubStudentRepo) DeleteGrade(context.Context, int) error          { return r.err }

func grade(g int, attendance, assignment float64) domain.Grade {
	return domain.Grade{Grade: g, AttendancePercent: attendance, AssignmentCompletion: assignment}
}

func TestPredictExamSuccess_NoGrades(t *testing.T) {
	svc := NewStudentService(&stubStudentRepo{}, testLogger())

	if _, err := svc.PredictExamSuccess(context.Background(), 1); !errors.Is(err, domain.ErrNoGrades) {
		t.Fatalf("expected ErrNoGrades, got %v", err)
	}
}

func TestPredictExamSuccess_Buckets(t *testing.T) {
	tests := []struct {
		name        string
		grades      []domain.Grade
		expected    string
		probability int
	}{
		{
			// score = 5*0.5 + 100/20*0.25 + 100/20*0.25 = 5.0
			name:        "excellent",
			grades:      []domain.Grade{grade(5, 100, 100)},
			expected:    "Excellent (5)",
			probability: 100,
		},
		{
			// score = 4*0.5 + 80/20*0.25 + 80/20*0.25 = 4.0
			name:        "good",
			grades:      []domain.Grade{grade(4, 80, 80)},
			expected:    "Good (4)",
			probability: 80,
		},
		{
			// score = 3*0.5 + 60/20*0.25 + 60/20*0.25 = 3.0
			name:        "satisfactory",
			grades:      []domain.Grade{grade(3, 60, 60)},
			expected:    "Satisfactory (3)",
			probability: 54,
		},
		{
			// score = 2*0.5 + 20/20*0.25 + 20/20*0.25 = 1.5
			name:        "unsatisfactory",
			grades:      []domain.Grade{grade(2, 20, 20)},
			expected:    "Unsatisfactory (2)",
			probability: 52,
		},
		{
			// Averages across rows: grades 5 and 3, attendance 100/60,
			// assignment 80/80 → score = 4*0.5 + 4*0.25 + 4*0.25 = 4.0
			name:        "averaged",
			grades:      []domain.Grade{grade(5, 100, 80), grade(3, 60, 80)},
			expected:    "Good (4)",
			probability: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStudentService(&stubStudentRepo{grades: tt.grades}, testLogger())

			p, err := svc.PredictExamSuccess(context.Background(), 1)
			if err != nil {
				t.Fatalf("PredictExamSuccess failed: %v", err)
			}
			if p.Expected != tt.expected {
				t.Fatalf("expected = %q, want %q", p.Expected, tt.expected)
			}
			if p.Probability != tt.probability {
				t.Fatalf("probability = %d, want %d", p.Probability, tt.probability)
			}
		})
	}
}

func TestStudentService_DelegatesErrors(t *testing.T) {
	repoErr := errors.New("boom")
	svc := NewStudentService(&stubStudentRepo{err: repoErr}, testLogger())

	if _, err := svc.ListStudents(context.Background()); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if _, err := svc.PredictExamSuccess(context.Background(), 1); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
