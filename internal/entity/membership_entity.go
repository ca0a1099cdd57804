package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolePublic = "public"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

const (
	MembershipStatusActive   = "active"
	MembershipStatusExpired  = "expired"
	MembershipStatusCanceled = "canceled"
)

// Membership records the role grant produced by a settled payment. UserId is
// the external auth provider's subject, not a local account.
type Membership struct {
	Id          uuid.UUID
	UserId      string
	Role        string
	Status      string
	OrderId     uuid.UUID
	ActivatedAt time.Time
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
