package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin           = "admin"
	RoleResponsableZone = "responsable_zone"
	RoleUser            = "user"
)

// User representa un usuario del sistema. ZoneIDs son las zonas de las que
// es responsable (relación muchos-a-muchos user_zones).
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string // admin, responsable_zone, user
	ZoneIDs   []string
	CreatedAt time.Time
}

// IsResponsibleFor indica si el usuario tiene membresía sobre la zona.
func (u *User) IsResponsibleFor(zoneID string) bool {
	for _, z := range u.ZoneIDs {
		if z == zoneID {
			return true
		}
	}
	return false
}
