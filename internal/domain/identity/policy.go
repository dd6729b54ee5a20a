package identity

// Action names a protected surface of the API.
type Action string

const (
	// ActionStaffArea covers the administration surfaces: towers, flats,
	// estimates, settlements, opening balances, user log and account
	// management.
	ActionStaffArea Action = "staff-area"
	// ActionViewOwnRecords covers a flat owner reading their own settlement
	// history.
	ActionViewOwnRecords Action = "view-own-records"
)

// Can is the single access policy. Middleware consults it instead of
// comparing role strings inline.
func Can(role Role, action Action) bool {
	switch action {
	case ActionStaffArea:
		return role.IsStaff()
	case ActionViewOwnRecords:
		return role.IsValid()
	}
	return false
}
