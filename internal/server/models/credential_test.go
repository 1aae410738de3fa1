package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_ExpiredAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil never expires", nil, false},
		{"one second ago", &past, true},
		{"exactly now", &now, true},
		{"one second ahead", &future, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Credential{Hash: "h", UserID: "u1", CreatedAt: now, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, c.ExpiredAt(now))
		})
	}
}
