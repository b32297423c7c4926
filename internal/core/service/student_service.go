package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
)

// StudentService wraps the student/grade store and the exam-success
// heuristic. The CRUD side is plain delegation; all correctness lives in
// the store's parameterized statements.
type StudentService struct {
	repo ports.StudentRepository
	log  zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, log zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, log: log}
}

func (s *StudentService) ListStudents(ctx context.Context) ([]domain.Student, error) {
	return s.repo.ListStudents(ctx)
}

func (s *StudentService) AddStudent(ctx context.Context, name, surname, groupName string) error {
	return s.repo.InsertStudent(ctx, name, surname, groupName)
}

func (s *StudentService) UpdateStudent(ctx context.Context, id int, name, surname, groupName string) error {
	return s.repo.UpdateStudent(ctx, id, name, surname, groupName)
}

func (s *StudentService) DeleteStudent(ctx context.Context, id int) error {
	return s.repo.DeleteStudent(ctx, id)
}

func (s *StudentService) StudentGrades(ctx context.Context, studentID int) ([]domain.Grade, error) {
	return s.repo.GradesByStudent(ctx, studentID)
}

func (s *StudentService) ListGrades(ctx context.Context) ([]domain.Grade, error) {
	return s.repo.ListGrades(ctx)
}

func (s *StudentService) AddGrade(ctx context.Context, g domain.Grade) error {
	return s.repo.InsertGrade(ctx, g)
}

func (s *StudentService) UpdateGrade(ctx context.Context, g domain.Grade) error {
	return s.repo.UpdateGrade(ctx, g)
}

func (s *StudentService) DeleteGrade(ctx context.Context, id int) error {
	return s.repo.DeleteGrade(ctx, id)
}

// PredictExamSuccess scores a student's chances from average grade,
// attendance, and assignment completion:
//
//	score = avgGrade*0.5 + avgAttendance/20*0.25 + avgAssignment/20*0.25
//
// and buckets the score into the expected exam mark with a rough
// probability figure. Students with no grades cannot be scored.
func (s *StudentService) PredictExamSuccess(ctx context.Context, studentID int) (domain.Prediction, error) {
	grades, err := s.repo.GradesByStudent(ctx, studentID)
	if err != nil {
		return domain.Prediction{}, err
	}
	if len(grades) == 0 {
		return domain.Prediction{}, domain.ErrNoGrades
	}

	var sumGrade, sumAttendance, sumAssignment float64
	for _, g := range grades {
		sumGrade += float64(g.Grade)
		sumAttendance += g.AttendancePercent
		sumAssignment += g.AssignmentCompletion
	}
	n := float64(len(grades))
	avgGrade := sumGrade / n
	avgAttendance := sumAttendance / n
	avgAssignment := sumAssignment / n

	score := avgGrade*0.5 + avgAttendance/20.0*0.25 + avgAssignment/20.0*0.25

	p := domain.Prediction{Score: score}
	switch {
	case score >= 4.5:
		p.Expected = "Excellent (5)"
		p.Probability = int(score * 20)
	case score >= 3.5:
		p.Expected = "Good (4)"
		p.Probability = int(score * 20)
	case score >= 2.5:
		p.Expected = "Satisfactory (3)"
		p.Probability = int(score * 18)
	default:
		p.Expected = "Unsatisfactory (2)"
		p.Probability = int((5.0 - score) * 15)
	}

	s.log.Debug().Int("student_id", studentID).
		Str("expected", p.Expected).
		Str("score", fmt.Sprintf("%.2f", score)).
		Msg("exam prediction computed")
	return p, nil
}
