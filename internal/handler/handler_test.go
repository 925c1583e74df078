package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"coursehub/internal/models"
)

type brokenCourseRepo struct{ err error }

func (r brokenCourseRepo) GetAllCourses(context.Context) ([]*models.Course, error) {
	return nil, r.err
}

func (r brokenCourseRepo) GetCourseByID(context.Context, uuid.UUID) (*models.Course, error) {
	return nil, r.err
}

func (r brokenCourseRepo) CreateCourse(context.Context, *models.Course) error {
	return r.err
}

func newCourseRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCourseHandler(brokenCourseRepo{err: err}, zap.NewNop())

	r := gin.New()
	r.GET("/courses", h.GetCourses)
	r.GET("/courses/:id", h.GetCourse)
	r.POST("/courses", h.CreateCourse)
	return r
}

func TestCourseHandler_StoreErrorsAreOpaque(t *testing.T) {
	r := newCourseRouter(errors.New(`pq: relation "courses" does not exist`))

	tests := []struct {
		path string
		want string
	}{
		{"/courses", `{"error":"Internal server error: Failed to fetch courses"}`},
		{"/courses/" + uuid.NewString(), `{"error":"Internal server error: Database error"}`},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, tt.want, w.Body.String())
		assert.NotContains(t, w.Body.String(), "pq:")
	}
}

func TestCreateCourse_WithoutGuardFailsClosed(t *testing.T) {
	r := newCourseRouter(nil)

	body := `{"title":"T","language":"en","level":"Beginner"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: No token provided"}`, w.Body.String())
}
