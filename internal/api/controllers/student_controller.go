package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/services"
	"tuitionledger/pkg/utils"
)

type StudentController struct {
	studentService services.StudentServiceInterface
	tutorService   services.TutorServiceInterface
}

func NewStudentController(studentService services.StudentServiceInterface, tutorService services.TutorServiceInterface) *StudentController {
	return &StudentController{
		studentService: studentService,
		tutorService:   tutorService,
	}
}

func requireTutor(c *gin.Context, tutorService services.TutorServiceInterface) (*db_models.Tutor, bool) {
	subject := c.GetString("user_id")
	if subject == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Missing identity")
		return nil, false
	}
	tutor, err := tutorService.RequireTutor(c.Request.Context(), subject)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, false
	}
	return tutor, true
}

func (s *StudentController) ListStudents(c *gin.Context) {
	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	students, err := s.studentService.ListStudents(c.Request.Context(), tutor)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, students, "Students fetched successfully")
}

func (s *StudentController) GetStudent(c *gin.Context) {
	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	student, err := s.studentService.GetStudent(c.Request.Context(), tutor, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Student fetched successfully")
}

// CreateStudent godoc
// @Summary Add a new student
// @Description Creates a student for the authenticated tutor, subject to subscription and capacity checks
// @Tags Students
// @Accept json
// @Produce json
// @Param request body request_models.CreateStudentRequest true "Create Student Request"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /students [post]
func (s *StudentController) CreateStudent(c *gin.Context) {
	var request request_models.CreateStudentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	student, err := s.studentService.CreateStudent(c.Request.Context(), tutor, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccessWithCode(c, http.StatusCreated, student, "Student added successfully")
}

func (s *StudentController) UpdateStudent(c *gin.Context) {
	var request request_models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	student, err := s.studentService.UpdateStudent(c.Request.Context(), tutor, c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Student updated successfully")
}

func (s *StudentController) DeleteStudent(c *gin.Context) {
	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	if err := s.studentService.DeleteStudent(c.Request.Context(), tutor, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Student removed successfully")
}

// UpdateFee godoc
// @Summary Change a student's fee from a given month
// @Description Amends or appends a fee-history entry; past payment records keep their recorded amounts
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body request_models.UpdateFeeRequest true "Fee Update Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /students/{id}/fee [put]
func (s *StudentController) UpdateFee(c *gin.Context) {
	var request request_models.UpdateFeeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, s.tutorService)
	if !ok {
		return
	}

	student, err := s.studentService.UpdateFee(c.Request.Context(), tutor, c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, student, "Fee updated successfully")
}
