package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursehub/internal/apperror"
	"coursehub/internal/auth"
	"coursehub/internal/models"
	"coursehub/internal/repository"
)

type CourseHandler interface {
	GetCourses(c *gin.Context)
	GetCourse(c *gin.Context)
	CreateCourse(c *gin.Context)
}

type courseHandler struct {
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

func NewCourseHandler(courseRepo repository.CourseRepository, logger *zap.Logger) CourseHandler {
	return &courseHandler{courseRepo: courseRepo, logger: logger}
}

var createCoursePolicy = auth.Policy{
	Role:    models.RoleTeacher,
	Message: "Only teachers can create courses",
}

// GetCourses handles GET /api/courses
func (h *courseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseRepo.GetAllCourses(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get courses", zap.Error(err))
		apperror.Respond(c, apperror.Internal("Failed to fetch courses"))
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/:id
func (h *courseHandler) GetCourse(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		apperror.Respond(c, apperror.BadRequest("Invalid course ID"))
		return
	}

	course, err := h.courseRepo.GetCourseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperror.Respond(c, apperror.NotFound("Course not found"))
			return
		}
		h.logger.Error("Failed to get course", zap.String("id", idStr), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Database error"))
		return
	}

	c.JSON(http.StatusOK, course)
}

// CreateCourse handles POST /api/courses. Only teachers may call it; the
// caller becomes the course's teacher.
func (h *courseHandler) CreateCourse(c *gin.Context) {
	id, ok := callerIdentity(c, h.logger)
	if !ok {
		return
	}
	if err := createCoursePolicy.Check(id); err != nil {
		apperror.Respond(c, err)
		return
	}

	var req models.CreateCourseRequest
	if !bindJSON(c, &req, h.logger) {
		return
	}

	teacherID, err := uuid.Parse(id.SubjectID)
	if err != nil {
		h.logger.Error("Token subject is not a user ID", zap.String("sub", id.SubjectID), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Invalid user ID"))
		return
	}

	course := &models.Course{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Level:       req.Level,
		TeacherID:   teacherID,
	}
	if err := h.courseRepo.CreateCourse(c.Request.Context(), course); err != nil {
		h.logger.Error("Failed to create course", zap.String("teacher_id", teacherID.String()), zap.Error(err))
		apperror.Respond(c, apperror.Internal("Failed to create course"))
		return
	}

	h.logger.Info("Course created", zap.String("course_id", course.ID.String()), zap.String("teacher_id", teacherID.String()))
	c.JSON(http.StatusOK, course)
}
