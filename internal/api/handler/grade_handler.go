package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
)

type GradeHandler struct {
	students ports.StudentService
}

func NewGradeHandler(students ports.StudentService) *GradeHandler {
	return &GradeHandler{students: students}
}

type gradeRequest struct {
	StudentID            int     `json:"student_id"            form:"student_id"            validate:"required"`
	Subject              string  `json:"subject"               form:"subject"               validate:"required"`
	Grade                int     `json:"grade"                 form:"grade"                 validate:"required,gte=2,lte=5"`
	Semester             int     `json:"semester"              form:"semester"              validate:"required,gte=1"`
	AttendancePercent    float64 `json:"attendance_percent"    form:"attendance_percent"    validate:"gte=0,lte=100"`
	AssignmentCompletion float64 `json:"assignment_completion" form:"assignment_completion" validate:"gte=0,lte=100"`
	ExamResult           int     `json:"exam_result"           form:"exam_result"           validate:"gte=0,lte=5"`
}

func (r gradeRequest) toDomain(id int) domain.Grade {
	return domain.Grade{
		ID:                   id,
		StudentID:            r.StudentID,
		Subject:              r.Subject,
		Grade:                r.Grade,
		Semester:             r.Semester,
		AttendancePercent:    r.AttendancePercent,
		AssignmentCompletion: r.AssignmentCompletion,
		ExamResult:           r.ExamResult,
	}
}

// List returns every grade row.
//
// @Summary      List all grades
// @Tags         grades
// @Produce      json
// @Success      200  {array}  domain.Grade
// @Router       /api/grades [get]
func (h *GradeHandler) List(c echo.Context) error {
	grades, err := h.students.ListGrades(c.Request().Context())
	if err != nil {
		return err
	}
	if grades == nil {
		grades = []domain.Grade{}
	}
	return c.JSON(http.StatusOK, grades)
}

// ListByStudent returns the grades of one student.
//
// @Summary      List a student's grades
// @Tags         grades
// @Produce      json
// @Param        id  path     int  true  "Student id"
// @Success      200 {array}  domain.Grade
// @Router       /api/students/{id}/grades [get]
func (h *GradeHandler) ListByStudent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	grades, err := h.students.StudentGrades(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if grades == nil {
		grades = []domain.Grade{}
	}
	return c.JSON(http.StatusOK, grades)
}

// Create adds a grade row (admin only).
//
// @Summary      Add a grade
// @Tags         grades
// @Accept       json
// @Produce      json
// @Param        body  body      gradeRequest  true  "Grade details"
// @Success      201   {object}  statusResponse
// @Router       /api/admin/grades [post]
func (h *GradeHandler) Create(c echo.Context) error {
	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.students.AddGrade(c.Request().Context(), req.toDomain(0)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Success: true})
}

// Update modifies a grade row (admin only).
//
// @Summary      Update a grade
// @Tags         grades
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Grade id"
// @Param        body  body      gradeRequest  true  "Grade details"
// @Success      200   {object}  statusResponse
// @Router       /api/admin/grades/{id} [put]
func (h *GradeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.students.UpdateGrade(c.Request().Context(), req.toDomain(id)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}

// Delete removes a grade row (admin only).
//
// @Summary      Delete a grade
// @Tags         grades
// @Produce      json
// @Param        id  path      int  true  "Grade id"
// @Success      200 {object}  statusResponse
// @Router       /api/admin/grades/{id} [delete]
func (h *GradeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.students.DeleteGrade(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}
