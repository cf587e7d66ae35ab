package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workbench/internal/registry"
)

func rosterUser(perms ...registry.Permission) registry.User {
	return registry.User{ID: "u-1", Permissions: perms}
}

// TestDeriveCapabilities covers the permission-to-capability mapping,
// including the full-set requirement for event management.
func TestDeriveCapabilities(t *testing.T) {
	t.Run("everyone can view audits", func(t *testing.T) {
		caps := DeriveCapabilities(rosterUser())
		assert.Equal(t, []Capability{CapabilityViewAudits}, caps)
	})

	t.Run("manage events needs create, edit and delete", func(t *testing.T) {
		partial := rosterUser(registry.PermCreateEvent, registry.PermEditEvent)
		assert.NotContains(t, DeriveCapabilities(partial), CapabilityManageEvents)

		full := rosterUser(registry.PermCreateEvent, registry.PermEditEvent, registry.PermDeleteEvent)
		assert.Contains(t, DeriveCapabilities(full), CapabilityManageEvents)
	})

	t.Run("manage users implies manage widgets", func(t *testing.T) {
		caps := DeriveCapabilities(rosterUser(registry.PermManageUsers))
		assert.Contains(t, caps, CapabilityManageUsers)
		assert.Contains(t, caps, CapabilityManageWidgets)
	})

	t.Run("configure widgets alone grants manage widgets once", func(t *testing.T) {
		caps := DeriveCapabilities(rosterUser(registry.PermManageUsers, registry.PermConfigureWidgets))
		count := 0
		for _, c := range caps {
			if c == CapabilityManageWidgets {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("export data", func(t *testing.T) {
		caps := DeriveCapabilities(rosterUser(registry.PermExportData))
		assert.Contains(t, caps, CapabilityExportData)
	})
}

// TestHasCapability covers the nil-session guard.
func TestHasCapability(t *testing.T) {
	assert.False(t, HasCapability(nil, CapabilityManageEvents))

	sess := &Session{Capabilities: []Capability{CapabilityViewAudits}}
	assert.True(t, HasCapability(sess, CapabilityViewAudits))
	assert.False(t, HasCapability(sess, CapabilityManageEvents))
}
