package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: Admin},
		{in: "ADMIN", want: Admin},
		{in: " Provider ", want: Provider},
		{in: "user", want: Traveler},
		{in: "Traveler", want: Traveler},
		{in: "guide", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionFlags(t *testing.T) {
	assert := assert.New(t)

	assert.True(Session{}.Loading())
	assert.False(Session{State: Anonymous}.IsAuthenticated())

	s := Session{State: Authenticated, User: &User{ID: "1"}, Token: "t"}
	assert.True(s.IsAuthenticated())
	assert.False(s.Loading())
	assert.Equal("authenticated", s.State.String())
}
