package domain

import (
	"errors"
	"time"
)

// Role is the closed set of staff roles recognised by the back office.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// roleRanks defines the total order viewer < operator < admin.
var roleRanks = map[Role]int{
	RoleViewer:   0,
	RoleOperator: 1,
	RoleAdmin:    2,
}

// Known reports whether r is one of the three recognised roles.
func (r Role) Known() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the numeric position of r in the role order.
// Unknown roles rank below viewer so they never satisfy a requirement.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r satisfies a minimum required role.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank()
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")

// User is the authenticated staff identity returned by the billing backend.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"is_active"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
}
