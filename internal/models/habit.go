package models

// Frequency values accepted by the habit draft form.
const (
	FrequencyDaily   = "Daily"
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
)

// ValidFrequency reports whether f is one of the accepted frequencies.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// HabitDraft is the transient form state for a habit before minting.
// It is discarded after a successful mint.
type HabitDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

// HabitNFT is one habit as read back from the per-user NFT contract.
// It is never created locally; the chain returns fixed-order tuples
// (cid, description, title, streak, createdAt, updatedAt) that are
// decoded into this shape.
type HabitNFT struct {
	// ID is the position of the habit in the contract's collection.
	ID int64 `json:"id"`
	// TokenID is the on-chain token identifier.
	TokenID int64 `json:"token_id"`
	// CID is the IPFS content identifier of the habit badge, may be empty.
	CID string `json:"cid"`
	// Title is the habit title. Defaults to "Habit {n}" when the chain
	// record carries an empty title.
	Title string `json:"title"`
	// Description is the habit description.
	Description string `json:"description"`
	// Streak is the consecutive-completion counter, always >= 0.
	Streak int `json:"streak"`
	// Owner is the wallet address the collection belongs to.
	Owner string `json:"owner"`
	// CreatedAt and UpdatedAt are Unix timestamps set by the contract.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Completed reports whether the habit counts as completed on the dashboard.
func (h *HabitNFT) Completed() bool {
	return h.Streak > 0
}

// HabitBoard is the dashboard view over a wallet's habit collection.
type HabitBoard struct {
	Habits             []HabitNFT `json:"habits"`
	Total              int        `json:"total"`
	Completed          int        `json:"completed"`
	ProgressPercentage float64    `json:"progress_percentage"`
}
