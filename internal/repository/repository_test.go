package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursehub/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

var userCols = []string{"id", "email", "password_hash", "name", "role", "created_at", "updated_at"}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ann",
		Role:         models.RoleStudent,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, email, password_hash, name, role)`)).
		WithArgs(user.ID, user.Email, user.PasswordHash, user.Name, "student").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, now, user.UpdatedAt)
}

func TestUserRepository_CreateUser_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	dupErr := errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).WillReturnError(dupErr)

	err := repo.CreateUser(context.Background(), &models.User{ID: uuid.New(), Role: models.RoleTeacher})
	assert.ErrorIs(t, err, dupErr)
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(id.String(), "a@x.com", "$2a$10$hash", "Ann", "teacher", now, now))

	user, err := repo.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
}

func TestUserRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userCols))
	_, err := repo.GetUserByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(userCols))
	_, err = repo.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1`)).
		WillReturnRows(sqlmock.NewRows(userCols))
	_, err = repo.UpdateName(ctx, uuid.New(), "New")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_UpdateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs("Annie", id).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(id.String(), "a@x.com", "h", "Annie", "student", now, now))

	user, err := repo.UpdateName(context.Background(), id, "Annie")
	require.NoError(t, err)
	assert.Equal(t, "Annie", user.Name)
	assert.Equal(t, models.RoleStudent, user.Role)
}

var courseCols = []string{"id", "title", "description", "language", "level", "teacher_id", "created_at", "updated_at"}

func TestCourseRepository_GetAllCourses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db, zap.NewNop())

	teacher := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(courseCols).
			AddRow(uuid.NewString(), "French", "", "fr", "beginner", teacher.String(), now, now).
			AddRow(uuid.NewString(), "German", "B2", "de", "advanced", teacher.String(), now.Add(-time.Hour), now))

	courses, err := repo.GetAllCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "French", courses[0].Title)
	assert.Equal(t, models.LevelBeginner, courses[0].Level)
	assert.Equal(t, models.LevelAdvanced, courses[1].Level)
	assert.Equal(t, teacher, courses[1].TeacherID)
}

func TestCourseRepository_GetAllCourses_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses`)).WillReturnRows(sqlmock.NewRows(courseCols))

	courses, err := repo.GetAllCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCourseRepository_GetCourseByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db, zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(courseCols).AddRow(id.String(), "Italian", "d", "it", "intermediate", uuid.NewString(), now, now))

	course, err := repo.GetCourseByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, course.ID)
	assert.Equal(t, models.LevelIntermediate, course.Level)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM courses WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(courseCols))
	_, err = repo.GetCourseByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepository_CreateCourse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCourseRepository(db, zap.NewNop())

	now := time.Now().UTC()
	course := &models.Course{
		ID:        uuid.New(),
		Title:     "Spanish",
		Language:  "es",
		Level:     models.LevelBeginner,
		TeacherID: uuid.New(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO courses (id, title, description, language, level, teacher_id)`)).
		WithArgs(course.ID, "Spanish", "", "es", "beginner", course.TeacherID).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.CreateCourse(context.Background(), course))
	assert.Equal(t, now, course.CreatedAt)
}
