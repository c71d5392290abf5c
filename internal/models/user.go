package models

// Gender values accepted by the registration flow.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderOther       = "other"
	GenderUndisclosed = "prefer-not-to-say"
)

// UserProfile is the profile submitted once during registration.
// It is persisted on chain by the registry contract and never mutated locally.
type UserProfile struct {
	// Name is the user's full name. It doubles as the companion contract
	// name and symbol when contract deployment is requested.
	Name string `json:"name"`
	// Email is the user's email address.
	Email string `json:"email"`
	// Gender is one of the Gender* constants.
	Gender string `json:"gender"`
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUndisclosed:
		return true
	}
	return false
}
