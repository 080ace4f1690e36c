// Package role maps stored user roles onto an ordered privilege level.
package role

import (
	"math"

	"github.com/Parker-ink/foodgram-project-react/internal/database"
)

// Role orders privilege levels so route guards can compare them.
type Role int

const (
	RoleAdmin   Role = 200
	RoleUser    Role = 100
	RoleUnknown Role = math.MinInt
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "unknown"
	}
}

// Meets reports whether r grants at least the required level.
func (r Role) Meets(required Role) bool {
	return r >= required
}

// DBToRole converts the stored role to its privilege level.
func DBToRole(role database.Role) Role {
	switch role {
	case database.RoleAdmin:
		return RoleAdmin
	case database.RoleUser:
		return RoleUser
	default:
		return RoleUnknown
	}
}

// ToRole parses the role claim carried in session tokens.
func ToRole(role string) Role {
	switch role {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	default:
		return RoleUnknown
	}
}
