package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role is a capability label granted to a principal independently of onboarding approval.
type Role string

const (
	RoleCandidate  Role = "candidate"
	RoleMentor     Role = "mentor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// AllRoles lists every assignable role.
var AllRoles = []Role{RoleCandidate, RoleMentor, RoleAdmin, RoleSuperAdmin}

func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleMentor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdminGrade reports whether r grants access to the admin surface.
func (r Role) IsAdminGrade() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }

// Track is the onboarding track a principal applies on.
type Track string

const (
	TrackCandidate Track = "candidate"
	TrackMentor    Track = "mentor"
	// TrackAdmin is only used by the dashboard gate; there is no admin application.
	TrackAdmin Track = "admin"
)

func (t Track) String() string { return string(t) }

// Valid reports whether t is an onboarding track (candidate or mentor).
func (t Track) Valid() bool {
	return t == TrackCandidate || t == TrackMentor
}

// Role returns the role a track grants at self-registration.
func (t Track) Role() Role {
	switch t {
	case TrackMentor:
		return RoleMentor
	case TrackAdmin:
		return RoleAdmin
	default:
		return RoleCandidate
	}
}
