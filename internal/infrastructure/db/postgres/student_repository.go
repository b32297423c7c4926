package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edutrack/exam-prediction/internal/core/domain"
)

const (
	listStudentsQuery  = `SELECT id, name, surname, group_name FROM students ORDER BY id`
	insertStudentQuery = `INSERT INTO students (name, surname, group_name) VALUES ($1, $2, $3)`
	updateStudentQuery = `UPDATE students SET name = $1, surname = $2, group_name = $3 WHERE id = $4`
	deleteStudentQuery = `DELETE FROM students WHERE id = $1`

	gradeColumns = `id, student_id, subject, grade, semester, attendance_percent, assignment_completion, exam_result`

	gradesByStudentQuery = `SELECT ` + gradeColumns + ` FROM student_grades WHERE student_id = $1 ORDER BY semester, subject`
	listGradesQuery      = `SELECT ` + gradeColumns + ` FROM student_grades ORDER BY student_id, semester, subject`
	insertGradeQuery     = `INSERT INTO student_grades (student_id, subject, grade, semester, attendance_percent, assignment_completion, exam_result) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	updateGradeQuery     = `UPDATE student_grades SET subject = $1, grade = $2, semester = $3, attendance_percent = $4, assignment_completion = $5, exam_result = $6 WHERE id = $7`
	deleteGradeQuery     = `DELETE FROM student_grades WHERE id = $1`
)

// StudentRepository persists students and their grades. Plain parameterized
// statements; no cross-row invariants beyond the foreign key.
type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) (*StudentRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	r := &StudentRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *StudentRepository) ensureSchema() error {
	const students = `
CREATE TABLE IF NOT EXISTS students (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	surname TEXT NOT NULL,
	group_name TEXT NOT NULL
)`
	const grades = `
CREATE TABLE IF NOT EXISTS student_grades (
	id SERIAL PRIMARY KEY,
	student_id INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	subject TEXT NOT NULL,
	grade INTEGER NOT NULL,
	semester INTEGER NOT NULL,
	attendance_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
	assignment_completion DOUBLE PRECISION NOT NULL DEFAULT 0,
	exam_result INTEGER
)`
	if _, err := r.db.Exec(students); err != nil {
		return fmt.Errorf("ensure students schema: %w", err)
	}
	if _, err := r.db.Exec(grades); err != nil {
		return fmt.Errorf("ensure student_grades schema: %w", err)
	}
	return nil
}

func (r *StudentRepository) ListStudents(ctx context.Context) ([]domain.Student, error) {
	rows, err := r.db.QueryContext(ctx, listStudentsQuery)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Surname, &s.GroupName); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) InsertStudent(ctx context.Context, name, surname, groupName string) error {
	if _, err := r.db.ExecContext(ctx, insertStudentQuery, name, surname, groupName); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (r *StudentRepository) UpdateStudent(ctx context.Context, id int, name, surname, groupName string) error {
	res, err := r.db.ExecContext(ctx, updateStudentQuery, name, surname, groupName, id)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return checkAffected(res, domain.ErrStudentNotFound)
}

func (r *StudentRepository) DeleteStudent(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteStudentQuery, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return checkAffected(res, domain.ErrStudentNotFound)
}

func (r *StudentRepository) GradesByStudent(ctx context.Context, studentID int) ([]domain.Grade, error) {
	return r.queryGrades(ctx, gradesByStudentQuery, studentID)
}

func (r *StudentRepository) ListGrades(ctx context.Context) ([]domain.Grade, error) {
	return r.queryGrades(ctx, listGradesQuery)
}

func (r *StudentRepository) queryGrades(ctx context.Context, query string, args ...any) ([]domain.Grade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	var grades []domain.Grade
	for rows.Next() {
		var g domain.Grade
		var examResult sql.NullInt64
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Subject, &g.Grade, &g.Semester,
			&g.AttendancePercent, &g.AssignmentCompletion, &examResult); err != nil {
			return nil, fmt.Errorf("scan grade: %w", err)
		}
		g.ExamResult = int(examResult.Int64)
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}
	return grades, nil
}

func (r *StudentRepository) InsertGrade(ctx context.Context, g domain.Grade) error {
	if _, err := r.db.ExecContext(ctx, insertGradeQuery,
		g.StudentID, g.Subject, g.Grade, g.Semester,
		g.AttendancePercent, g.AssignmentCompletion, g.ExamResult); err != nil {
		return fmt.Errorf("insert grade: %w", err)
	}
	return nil
}

func (r *StudentRepository) UpdateGrade(ctx context.Context, g domain.Grade) error {
	res, err := r.db.ExecContext(ctx, updateGradeQuery,
		g.Subject, g.Grade, g.Semester,
		g.AttendancePercent, g.AssignmentCompletion, g.ExamResult, g.ID)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return checkAffected(res, domain.ErrGradeNotFound)
}

func (r *StudentRepository) DeleteGrade(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteGradeQuery, id)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return checkAffected(res, domain.ErrGradeNotFound)
}

func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
