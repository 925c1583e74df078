package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"coursehub/internal/models"
)

type CourseRepository interface {
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
}

type courseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCourseRepository(db *sqlx.DB, logger *zap.Logger) CourseRepository {
	return &courseRepository{db: db, logger: logger}
}

const courseColumns = `id, title, description, language, level, teacher_id, created_at, updated_at`

// GetAllCourses returns every course, newest first.
func (r *courseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (id, title, description, language, level, teacher_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`
	return r.db.QueryRowxContext(ctx, query, course.ID, course.Title, course.Description,
		course.Language, course.Level, course.TeacherID).Scan(&course.CreatedAt, &course.UpdatedAt)
}
