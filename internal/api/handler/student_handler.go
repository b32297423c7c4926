package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/exam-prediction/internal/api/metrics"
	"github.com/edutrack/exam-prediction/internal/core/domain"
	"github.com/edutrack/exam-prediction/internal/core/ports"
)

type StudentHandler struct {
	students ports.StudentService
}

func NewStudentHandler(students ports.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

type studentRequest struct {
	Name      string `json:"name"       form:"name"       validate:"required"`
	Surname   string `json:"surname"    form:"surname"    validate:"required"`
	GroupName string `json:"group_name" form:"group_name" validate:"required"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

// List returns all students.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200  {array}  domain.Student
// @Router       /api/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.students.ListStudents(c.Request().Context())
	if err != nil {
		return err
	}
	if students == nil {
		students = []domain.Student{}
	}
	return c.JSON(http.StatusOK, students)
}

// Create adds a student (admin only).
//
// @Summary      Add a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body      studentRequest  true  "Student details"
// @Success      201   {object}  statusResponse
// @Router       /api/admin/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.students.AddStudent(c.Request().Context(), req.Name, req.Surname, req.GroupName); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Success: true})
}

// Update modifies a student (admin only).
//
// @Summary      Update a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Student id"
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  statusResponse
// @Router       /api/admin/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.students.UpdateStudent(c.Request().Context(), id, req.Name, req.Surname, req.GroupName); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}

// Delete removes a student (admin only).
//
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Param        id  path      int  true  "Student id"
// @Success      200 {object}  statusResponse
// @Router       /api/admin/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.students.DeleteStudent(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}

// Predict runs the exam-success heuristic for one student.
//
// @Summary      Predict exam success
// @Tags         students
// @Produce      json
// @Param        student_id  query     int  true  "Student id"
// @Success      200         {object}  domain.Prediction
// @Failure      422         {object}  map[string]string
// @Router       /api/predict [get]
func (h *StudentHandler) Predict(c echo.Context) error {
	studentID, err := strconv.Atoi(c.QueryParam("student_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "student_id must be an integer")
	}

	prediction, err := h.students.PredictExamSuccess(c.Request().Context(), studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNoGrades) {
			metrics.PredictionsTotal.WithLabelValues("no_data").Inc()
		} else {
			metrics.PredictionsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PredictionsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, prediction)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}
