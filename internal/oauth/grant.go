package oauth

import (
	"fmt"
	"strings"
)

type GrantMode string

const (
	// Offline tokens belong to the app and outlive any staff session.
	Offline GrantMode = "OFFLINE"
	// PerUser tokens are tied to the staff member who approved the consent.
	PerUser GrantMode = "PERUSER"
)

// ParseGrantMode accepts OFFLINE or PERUSER in any case. Empty means Offline.
func ParseGrantMode(s string) (GrantMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(Offline):
		return Offline, nil
	case string(PerUser), "PER-USER", "PER_USER":
		return PerUser, nil
	}
	return "", fmt.Errorf("unknown grant mode %q", s)
}
