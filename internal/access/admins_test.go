package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromConfigDefaults(t *testing.T) {
	a := FromConfig(nil)
	assert.Equal(t, []int64{5634800132, 5515360616}, a.IDs())
	assert.Equal(t, int64(5634800132), a.Primary())
	assert.True(t, a.Contains(5515360616))
	assert.False(t, a.Contains(42))
}

func TestNewAdminsDedupes(t *testing.T) {
	a := NewAdmins(7, 0, 3, 7, -1)
	assert.Equal(t, []int64{7, 3}, a.IDs())
	assert.Equal(t, 2, a.Len())

	ids := a.IDs()
	ids[0] = 99
	assert.Equal(t, int64(7), a.Primary())
}

func TestEmptyAdmins(t *testing.T) {
	var a Admins
	assert.Equal(t, int64(0), a.Primary())
	assert.False(t, a.Contains(0))
	assert.Empty(t, a.IDs())
}
