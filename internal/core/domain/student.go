package domain

import "errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrGradeNotFound   = errors.New("grade not found")
	// ErrNoGrades means a prediction was requested for a student with no
	// recorded grades.
	ErrNoGrades = errors.New("not enough data for prediction")
)

// Student is a single student record.
type Student struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	GroupName string `json:"group_name"`
}

// Grade is one subject result for a student in a given semester, together
// with the attendance and assignment figures the prediction formula uses.
type Grade struct {
	ID                   int     `json:"id"`
	StudentID            int     `json:"student_id"`
	Subject              string  `json:"subject"`
	Grade                int     `json:"grade"`
	Semester             int     `json:"semester"`
	AttendancePercent    float64 `json:"attendance_percent"`
	AssignmentCompletion float64 `json:"assignment_completion"`
	ExamResult           int     `json:"exam_result"`
}

// Prediction is the outcome of the exam-success heuristic.
type Prediction struct {
	Expected    string  `json:"expected"`
	Probability int     `json:"probability"`
	Score       float64 `json:"score"`
}
