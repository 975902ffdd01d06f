package entities

import "time"

type AuthAction string

const (
	AuthActionRegister AuthAction = "register"
	AuthActionLogin    AuthAction = "login"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuthEvent is one register or login attempt. UserID is set for successful
// attempts only; failed logins never reveal whether the account exists.
type AuthEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"index;size:36" json:"user_id,omitempty"`
	Email     string      `gorm:"index;size:320" json:"email"`
	Action    AuthAction  `gorm:"size:20" json:"action"`
	Status    AuditStatus `gorm:"size:20" json:"status"`
	Reason    string      `gorm:"size:200" json:"reason,omitempty"`
	IPAddress string      `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string      `gorm:"size:500" json:"user_agent,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

func (AuthEvent) TableName() string {
	return "auth_events"
}
