package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyUserID     = "user_id"
	ContextKeyUser       = "current_user"
	ContextKeyTeamID     = "team_id"
	ContextKeyMembership = "team_membership"
)

const (
	MinPasswordLength = 6
	MaxNameLength     = 100
)

// Wire layouts for date and time-of-day fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
