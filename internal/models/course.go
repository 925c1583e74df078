package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CourseLevel uint8

const (
	LevelBeginner CourseLevel = iota + 1
	LevelIntermediate
	LevelAdvanced
)

var courseLevelNames = map[CourseLevel]string{
	LevelBeginner:     "Beginner",
	LevelIntermediate: "Intermediate",
	LevelAdvanced:     "Advanced",
}

func (l CourseLevel) String() string {
	if name, ok := courseLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("CourseLevel(%d)", uint8(l))
}

func (l CourseLevel) Valid() bool {
	_, ok := courseLevelNames[l]
	return ok
}

func (l CourseLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid course level %d", uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *CourseLevel) UnmarshalText(text []byte) error {
	for level, name := range courseLevelNames {
		if name == string(text) {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown course level %q", text)
}

// Value stores the level as the course_level enum label.
func (l CourseLevel) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid course level %d", uint8(l))
	}
	return strings.ToLower(l.String()), nil
}

func (l *CourseLevel) Scan(src any) error {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	default:
		return fmt.Errorf("cannot scan %T into CourseLevel", src)
	}

	for level, name := range courseLevelNames {
		if strings.ToLower(name) == label {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown course_level %q", label)
}

type Course struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	Description string      `db:"description" json:"description"`
	Language    string      `db:"language" json:"language"`
	Level       CourseLevel `db:"level" json:"level"`
	TeacherID   uuid.UUID   `db:"teacher_id" json:"teacher_id"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

type CreateCourseRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Language    string      `json:"language" binding:"required"`
	Level       CourseLevel `json:"level" binding:"required"`
}
