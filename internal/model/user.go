package model

import (
	"errors"
	"strings"
)

var (
	ErrUnknownRole = errors.New("unknown role")
)

type Role string

const (
	Traveler Role = "traveler"
	Provider Role = "provider"
	Admin    Role = "admin"
)

// ParseRole lower-cases s and maps it onto a known role. The API reports
// travelers as "user".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "traveler", "user":
		return Traveler, nil
	case "provider":
		return Provider, nil
	case "admin":
		return Admin, nil
	}

	return "", ErrUnknownRole
}

type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	UserType Role   `json:"userType"`
}
