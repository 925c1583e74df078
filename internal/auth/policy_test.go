package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/apperror"
	"coursehub/internal/models"
)

func TestRequireRole(t *testing.T) {
	student := Identity{SubjectID: "1", Role: models.RoleStudent}
	teacher := Identity{SubjectID: "2", Role: models.RoleTeacher}

	assert.NoError(t, RequireRole(teacher, models.RoleTeacher))
	assert.NoError(t, RequireRole(student, models.RoleStudent))

	err := RequireRole(student, models.RoleTeacher)
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	// No hierarchy: a teacher does not satisfy a student-only check.
	err = RequireRole(teacher, models.RoleStudent)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	err = RequireRole(Identity{}, models.RoleStudent)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestPolicy_Check(t *testing.T) {
	p := Policy{Role: models.RoleTeacher, Message: "Only teachers can create courses"}

	assert.NoError(t, p.Check(Identity{SubjectID: "2", Role: models.RoleTeacher}))

	err := p.Check(Identity{SubjectID: "1", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Forbidden: Only teachers can create courses", err.Error())

	err = Policy{Role: models.RoleStudent}.Check(Identity{Role: models.RoleTeacher})
	assert.Equal(t, "Forbidden: Student role required", err.Error())
}
