// Package access holds the administrator allow-list.
package access

import "slices"

// DefaultAdminIDs are the administrators compiled into the bot.
var DefaultAdminIDs = []int64{5634800132, 5515360616}

// Admins is an immutable, ordered set of administrator Telegram ids.
type Admins struct {
	ids []int64
}

// NewAdmins keeps the first occurrence of each positive id, in order.
func NewAdmins(ids ...int64) Admins {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return Admins{ids: out}
}

// FromConfig uses the configured ids, or the compiled defaults when none are configured.
func FromConfig(configured []int64) Admins {
	if len(configured) == 0 {
		return NewAdmins(DefaultAdminIDs...)
	}
	return NewAdmins(configured...)
}

// Contains reports whether userID is an administrator.
func (a Admins) Contains(userID int64) bool {
	return slices.Contains(a.ids, userID)
}

// IDs returns a copy of the ids in notification order.
func (a Admins) IDs() []int64 {
	return slices.Clone(a.ids)
}

// Primary is the administrator buyers are pointed to, or 0 when the list is empty.
func (a Admins) Primary() int64 {
	if len(a.ids) == 0 {
		return 0
	}
	return a.ids[0]
}

// Len returns the number of administrators.
func (a Admins) Len() int {
	return len(a.ids)
}
