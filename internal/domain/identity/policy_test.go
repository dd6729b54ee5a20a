package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanStaffArea(t *testing.T) {
	assert.True(t, Can(RoleAdmin, ActionStaffArea))
	assert.True(t, Can(RoleStaff, ActionStaffArea))
	assert.False(t, Can(RoleFlat, ActionStaffArea))
	assert.False(t, Can(Role("ghost"), ActionStaffArea))
}

func TestCanViewOwnRecords(t *testing.T) {
	assert.True(t, Can(RoleFlat, ActionViewOwnRecords))
	assert.True(t, Can(RoleStaff, ActionViewOwnRecords))
	assert.False(t, Can(Role(""), ActionViewOwnRecords))
	assert.False(t, Can(RoleFlat, Action("unknown")))
}
