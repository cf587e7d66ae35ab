package registry

import (
	id "workbench/pkg/domain"
)

// Role names the coarse access tier a user holds.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTRCManager Role = "trc_manager"
	RoleAuditor    Role = "auditor"
	RoleViewer     Role = "viewer"
)

// Persona is a named user archetype that determines the capability set a
// session derives at switch time.
type Persona string

const (
	PersonaTRC           Persona = "TRC"
	PersonaTRCAdmin      Persona = "TRC Admin"
	PersonaPSL           Persona = "PSL"
	PersonaProductLead   Persona = "Product Lead"
	PersonaAO            Persona = "AO"
	PersonaCFSLeadership Persona = "CFS Leadership"
)

// Personas lists all supported personas.
func Personas() []Persona {
	return []Persona{
		PersonaTRC, PersonaTRCAdmin, PersonaPSL,
		PersonaProductLead, PersonaAO, PersonaCFSLeadership,
	}
}

// Permission is a fine-grained grant carried on the user record.
type Permission string

const (
	PermCreateEvent      Permission = "create_event"
	PermEditEvent        Permission = "edit_event"
	PermDeleteEvent      Permission = "delete_event"
	PermViewAllEvents    Permission = "view_all_events"
	PermManageUsers      Permission = "manage_users"
	PermConfigureWidgets Permission = "configure_widgets"
	PermExportData       Permission = "export_data"
)

// User is a roster member. The roster is static reference data; the current
// user is a session-level pointer into it.
type User struct {
	ID          id.UserID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        Role         `json:"role"`
	Persona     Persona      `json:"persona"`
	Permissions []Permission `json:"permissions"`
	Department  string       `json:"department,omitempty"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
}

// HasPermission reports whether the user carries the given grant.
func (u User) HasPermission(p Permission) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// Users is a read-only lookup over the seeded roster.
type Users struct {
	all  []User
	byID map[id.UserID]User
}

// NewUsers indexes the given roster. Pass SeedUsers() for the standard one.
func NewUsers(users []User) *Users {
	byID := make(map[id.UserID]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Users{all: users, byID: byID}
}

// ByID returns the user and whether they exist.
func (r *Users) ByID(userID id.UserID) (User, bool) {
	u, ok := r.byID[userID]
	return u, ok
}

// ByPersona returns all roster members with the given persona in seed order.
func (r *Users) ByPersona(p Persona) []User {
	var out []User
	for _, u := range r.all {
		if u.Persona == p {
			out = append(out, u)
		}
	}
	return out
}

// All returns the full roster in seed order.
func (r *Users) All() []User {
	return append([]User{}, r.all...)
}

// SeedUsers returns the standard roster: three users per persona.
func SeedUsers() []User {
	trcPerms := []Permission{PermCreateEvent, PermEditEvent, PermViewAllEvents}
	adminPerms := []Permission{PermCreateEvent, PermEditEvent, PermDeleteEvent, PermViewAllEvents, PermManageUsers}
	viewerPerms := []Permission{PermViewAllEvents}
	productPerms := []Permission{PermViewAllEvents, PermCreateEvent}
	auditorPerms := []Permission{PermViewAllEvents, PermCreateEvent, PermEditEvent}

	return []User{
		{ID: "trc-001", Name: "Sarah Chen", Email: "sarah.chen@company.com", Role: RoleTRCManager, Persona: PersonaTRC, Permissions: trcPerms, Department: "Technology Risk & Control"},
		{ID: "trc-002", Name: "Michael Rodriguez", Email: "michael.rodriguez@company.com", Role: RoleTRCManager, Persona: PersonaTRC, Permissions: trcPerms, Department: "Technology Risk & Control"},
		{ID: "trc-003", Name: "Emily Watson", Email: "emily.watson@company.com", Role: RoleTRCManager, Persona: PersonaTRC, Permissions: trcPerms, Department: "Technology Risk & Control"},

		{ID: "trc-admin-001", Name: "David Kim", Email: "david.kim@company.com", Role: RoleAdmin, Persona: PersonaTRCAdmin, Permissions: adminPerms, Department: "Technology Risk & Control"},
		{ID: "trc-admin-002", Name: "Lisa Zhang", Email: "lisa.zhang@company.com", Role: RoleAdmin, Persona: PersonaTRCAdmin, Permissions: adminPerms, Department: "Technology Risk & Control"},
		{ID: "trc-admin-003", Name: "James Wilson", Email: "james.wilson@company.com", Role: RoleAdmin, Persona: PersonaTRCAdmin, Permissions: adminPerms, Department: "Technology Risk & Control"},

		{ID: "psl-001", Name: "Amanda Thompson", Email: "amanda.thompson@company.com", Role: RoleViewer, Persona: PersonaPSL, Permissions: viewerPerms, Department: "Product Security Lead"},
		{ID: "psl-002", Name: "Robert Anderson", Email: "robert.anderson@company.com", Role: RoleViewer, Persona: PersonaPSL, Permissions: viewerPerms, Department: "Product Security Lead"},
		{ID: "psl-003", Name: "Jennifer Lee", Email: "jennifer.lee@company.com", Role: RoleViewer, Persona: PersonaPSL, Permissions: viewerPerms, Department: "Product Security Lead"},

		{ID: "product-001", Name: "Daniel Martinez", Email: "daniel.martinez@company.com", Role: RoleViewer, Persona: PersonaProductLead, Permissions: productPerms, Department: "Product Management"},
		{ID: "product-002", Name: "Rachel Green", Email: "rachel.green@company.com", Role: RoleViewer, Persona: PersonaProductLead, Permissions: productPerms, Department: "Product Management"},
		{ID: "product-003", Name: "Kevin Brown", Email: "kevin.brown@company.com", Role: RoleViewer, Persona: PersonaProductLead, Permissions: productPerms, Department: "Product Management"},

		{ID: "ao-001", Name: "Sophia Davis", Email: "sophia.davis@company.com", Role: RoleAuditor, Persona: PersonaAO, Permissions: auditorPerms, Department: "Audit Office"},
		{ID: "ao-002", Name: "Marcus Johnson", Email: "marcus.johnson@company.com", Role: RoleAuditor, Persona: PersonaAO, Permissions: auditorPerms, Department: "Audit Office"},
		{ID: "ao-003", Name: "Ashley Miller", Email: "ashley.miller@company.com", Role: RoleAuditor, Persona: PersonaAO, Permissions: auditorPerms, Department: "Audit Office"},

		{ID: "cfs-001", Name: "William Taylor", Email: "william.taylor@company.com", Role: RoleViewer, Persona: PersonaCFSLeadership, Permissions: viewerPerms, Department: "CFS Leadership"},
		{ID: "cfs-002", Name: "Victoria Adams", Email: "victoria.adams@company.com", Role: RoleViewer, Persona: PersonaCFSLeadership, Permissions: viewerPerms, Department: "CFS Leadership"},
		{ID: "cfs-003", Name: "Christopher White", Email: "christopher.white@company.com", Role: RoleViewer, Persona: PersonaCFSLeadership, Permissions: viewerPerms, Department: "CFS Leadership"},
	}
}
