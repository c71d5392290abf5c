package models

// Session is the cached wallet session: a wallet address written on
// connect and a companion contract address written after deployment,
// both cleared on disconnect.
type Session struct {
	// ID is the opaque session identifier handed to the client.
	ID string `json:"id" gorm:"column:id;primaryKey;size:36"`
	// Address is the connected wallet address.
	Address string `json:"address" gorm:"column:address;index;not null"`
	// ContractAddress is the per-user habit contract, empty until the
	// companion contract has been deployed.
	ContractAddress string `json:"contract_address" gorm:"column:contract_address"`
	// CreatedAt is the Unix timestamp of the connect.
	CreatedAt int64 `json:"created_at" gorm:"column:created_at;index"`
}

// SessionStore is the explicit session-store surface injected into each
// flow. Flows never touch the cache ad hoc; tests substitute an
// in-memory implementation.
type SessionStore interface {
	// Get returns the session, or ErrSessionNotFound.
	Get(id string) (*Session, error)
	// Put creates or overwrites the session wholesale.
	Put(session *Session) error
	// Clear removes the session and both cached addresses with it.
	Clear(id string) error
}

// RegistrationStatus is the three-valued result of a registry lookup.
// "Not registered" and "lookup failed" are kept distinct so callers can
// react to each deliberately.
type RegistrationStatus string

const (
	Registered    RegistrationStatus = "registered"
	NotRegistered RegistrationStatus = "not_registered"
	LookupFailed  RegistrationStatus = "lookup_failed"
)

// SessionStatus is the session view returned to the client.
type SessionStatus struct {
	Connected    bool               `json:"connected"`
	Address      string             `json:"address,omitempty"`
	Registration RegistrationStatus `json:"registration,omitempty"`
}
