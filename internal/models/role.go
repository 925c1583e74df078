package models

import (
	"database/sql/driver"
	"fmt"
)

// Role is the authorization level of an account. The zero value is not a
// valid role.
type Role uint8

const (
	RoleStudent Role = iota + 1
	RoleTeacher
)

// String returns the API form ("Student", "Teacher").
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTeacher:
		return "Teacher"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// ParseRole accepts the API form of a role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Student":
		return RoleStudent, nil
	case "Teacher":
		return RoleTeacher, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as the user_role enum label.
func (r Role) Value() (driver.Value, error) {
	switch r {
	case RoleStudent:
		return "student", nil
	case RoleTeacher:
		return "teacher", nil
	default:
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
}

func (r *Role) Scan(src any) error {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}

	switch label {
	case "student":
		*r = RoleStudent
	case "teacher":
		*r = RoleTeacher
	default:
		return fmt.Errorf("unknown user_role %q", label)
	}
	return nil
}
