// Package domain contains core concepts of the relay.
// This file defines registered users and their roles.
// No storage, network, or CLI logic should be added here.
package domain

import (
	"greeter-proxy/errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEvaluator Role = "evaluator"
	RoleGreeter   Role = "greeter"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", errors.ErrInvalidRole
	}
	return role, nil
}

func (r Role) IsValid() bool {
	return r == RoleEvaluator || r == RoleGreeter
}

func (r Role) String() string { return string(r) }

// User is a registered phone number.
// PhoneNumber is the canonical E.164 form and is unique across the directory.
type User struct {
	ID          uuid.UUID
	PhoneNumber string
	Role        Role
	Name        string
	CreatedAt   time.Time
}

func (u User) IsEvaluator() bool { return u.Role == RoleEvaluator }

func (u User) IsGreeter() bool { return u.Role == RoleGreeter }

// ConversationStatus is what the operator sees for the conversation state.
// PhoneNumber is empty when the system is Idle.
type ConversationStatus struct {
	Active      bool
	PhoneNumber string
	DisplayName string
}
