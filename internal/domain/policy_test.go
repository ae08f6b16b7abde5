package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	admin    = User{ID: 1, Name: "Ada", IsAdmin: true}
	owner    = User{ID: 2, Name: "Mario"}
	stranger = User{ID: 3, Name: "Lucia"}
)

func TestCanSetState(t *testing.T) {
	tests := []struct {
		name   string
		user   User
		state  TicketState
		target TicketState
		want   bool
	}{
		{"admin closes", admin, TicketStateOpen, TicketStateClosed, true},
		{"admin reopens", admin, TicketStateClosed, TicketStateOpen, true},
		{"owner closes", owner, TicketStateOpen, TicketStateClosed, true},
		{"owner reopens", owner, TicketStateClosed, TicketStateOpen, false},
		{"stranger closes", stranger, TicketStateOpen, TicketStateClosed, false},
		{"stranger reopens", stranger, TicketStateClosed, TicketStateOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := Ticket{OwnerID: owner.ID, State: tt.state}
			assert.Equal(t, tt.want, CanSetState(tt.user, ticket, tt.target))
		})
	}
}

func TestCanEditCategory(t *testing.T) {
	assert.True(t, CanEditCategory(admin))
	assert.False(t, CanEditCategory(owner))
}

func TestCanReply(t *testing.T) {
	open := Ticket{OwnerID: owner.ID, State: TicketStateOpen}
	closed := Ticket{OwnerID: owner.ID, State: TicketStateClosed}

	assert.True(t, CanReply(owner, open))
	assert.True(t, CanReply(admin, open))
	assert.False(t, CanReply(stranger, open))
	assert.False(t, CanReply(owner, closed))
	assert.False(t, CanReply(admin, closed))
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("gardening"))
	assert.False(t, ValidCategory(""))
}

func TestValidState(t *testing.T) {
	assert.True(t, ValidState(TicketStateOpen))
	assert.True(t, ValidState(TicketStateClosed))
	assert.False(t, ValidState("open"))
	assert.False(t, ValidState(""))
}
