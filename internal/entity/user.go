package entity

const defaultUserName = "Player"

// User - an authenticated caller as reported by the identity provider.
type User struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// SeatAs - builds the seat reference for this user, falling back to "Player X"/"Player O" without a name.
func (that *User) SeatAs(role Role) *PlayerRef {
	name := that.Name
	if name == "" {
		name = defaultUserName + " " + string(role)
	}

	return &PlayerRef{UID: that.UID, Name: name}
}

// DisplayName - picks the first non-empty candidate, "Player" otherwise.
func DisplayName(candidates ...string) string {
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}

	return defaultUserName
}
