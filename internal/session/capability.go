// Package session owns the current-user selection and the capability model.
// Capabilities replace persona string comparisons: they are derived once from
// the roster record at switch time and checked with a typed predicate, so no
// caller ever dispatches on a persona label.
package session

import (
	"workbench/internal/registry"
)

// Capability is a typed grant a session carries.
type Capability string

const (
	// CapabilityManageEvents gates event create/edit/delete and calendar
	// slot quick-create.
	CapabilityManageEvents Capability = "manage_events"
	// CapabilityManageWidgets gates dashboard layout and widget mutations.
	CapabilityManageWidgets Capability = "manage_widgets"
	// CapabilityManageUsers gates roster administration surfaces.
	CapabilityManageUsers Capability = "manage_users"
	// CapabilityViewAudits gates the audit history browser.
	CapabilityViewAudits Capability = "view_audits"
	// CapabilityExportData gates data export surfaces.
	CapabilityExportData Capability = "export_data"
)

// DeriveCapabilities maps a roster record's permission list to capabilities.
// ManageEvents requires the full create/edit/delete set: partial grants let a
// user author events through the form surfaces but not administer the
// calendar, which mirrors how the admin affordances were gated historically.
func DeriveCapabilities(u registry.User) []Capability {
	caps := []Capability{CapabilityViewAudits}

	if u.HasPermission(registry.PermCreateEvent) &&
		u.HasPermission(registry.PermEditEvent) &&
		u.HasPermission(registry.PermDeleteEvent) {
		caps = append(caps, CapabilityManageEvents)
	}
	if u.HasPermission(registry.PermManageUsers) {
		caps = append(caps, CapabilityManageUsers)
	}
	if u.HasPermission(registry.PermManageUsers) || u.HasPermission(registry.PermConfigureWidgets) {
		caps = append(caps, CapabilityManageWidgets)
	}
	if u.HasPermission(registry.PermExportData) {
		caps = append(caps, CapabilityExportData)
	}
	return caps
}

// HasCapability reports whether the session carries the capability. A nil
// session never does.
func HasCapability(s *Session, c Capability) bool {
	if s == nil {
		return false
	}
	for _, have := range s.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}
