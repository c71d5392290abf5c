package models

import (
	"context"
	"errors"
	"io"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or
// cleared sessions.
var ErrSessionNotFound = errors.New("session not found")

// ErrFileNotFound is returned by Uploader.Fetch when the gateway does
// not hold the requested hash.
var ErrFileNotFound = errors.New("file not found in IPFS")

// ChainService represents the on-chain surface this service consumes:
// the shared registry contract and the per-user habit NFT contracts.
type ChainService interface {
	// RegistrationStatus looks the address up in the registry. A failed
	// lookup yields LookupFailed together with the underlying error.
	RegistrationStatus(ctx context.Context, address string) (RegistrationStatus, error)
	// RegisterUser submits the profile under the given address and
	// returns the transaction hash.
	RegisterUser(ctx context.Context, address string, profile *UserProfile) (string, error)
	// DeployCompanion deploys the per-user habit contract and returns
	// its address.
	DeployCompanion(ctx context.Context, name, symbol string) (string, error)
	// Mint mints a habit NFT on the given contract and returns the
	// transaction hash.
	Mint(ctx context.Context, contractAddress, cid, description, title string) (string, error)
	// Grow advances the streak of an existing habit NFT, updating its
	// CID and description, and returns the transaction hash.
	Grow(ctx context.Context, contractAddress string, tokenID int64, cid, description string) (string, error)
	// WaitConfirmed blocks until the transaction has a receipt or the
	// context expires.
	WaitConfirmed(ctx context.Context, txHash string) error
	// AllNFTs returns the raw fixed-order tuples of every NFT on the
	// given contract. Decoding is the caller's concern.
	AllNFTs(ctx context.Context, contractAddress string) ([][]interface{}, error)
}

// UploadResult is the IPFS upload outcome handed back to clients.
type UploadResult struct {
	Hash       string `json:"hash"`
	Size       string `json:"size"`
	LocalURL   string `json:"local_url"`
	PublicURL  string `json:"public_url"`
	GatewayURL string `json:"gateway_url"`
}

// Uploader pins and serves files on IPFS.
type Uploader interface {
	// Upload pins the content of r under the given filename.
	Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error)
	// UploadAsset pins a local file by path.
	UploadAsset(ctx context.Context, path string) (*UploadResult, error)
	// URLs builds the gateway URL set for an already-pinned hash.
	URLs(hash string) *UploadResult
	// Fetch streams a pinned file back from the gateway. It returns the
	// content type and body, or ErrFileNotFound for an unknown hash.
	Fetch(ctx context.Context, hash string) (string, io.ReadCloser, error)
	// Healthy reports whether the IPFS node answers.
	Healthy(ctx context.Context) bool
}

// Motivator produces a short motivational message for a habit.
type Motivator interface {
	Motivate(ctx context.Context, req *MotivationRequest) (string, error)
}

// Repository is the persistence surface: wallet sessions and
// motivational-message delivery links.
type Repository interface {
	CreateSession(session *Session) error
	GetSession(id string) (*Session, error)
	SaveSession(session *Session) error
	DeleteSession(id string) error

	UpsertDeliveryLink(link *DeliveryLink) error
	GetDeliveryLink(address string) (*DeliveryLink, error)
	GetDeliveryLinkByTelegramUsername(username string) (*DeliveryLink, error)
	SetTelegramChatID(username, chatID string) error
}

// RegistrationResult is the outcome of the registration flow. A failed
// companion deployment does not roll back a completed registration; it
// is reported in DeploymentError instead.
type RegistrationResult struct {
	TxHash          string `json:"tx_hash"`
	ContractAddress string `json:"contract_address,omitempty"`
	DeploymentError string `json:"deployment_error,omitempty"`
	// ConfirmationDelaySeconds is how long the client should display the
	// confirmation state before moving to the dashboard.
	ConfirmationDelaySeconds int `json:"confirmation_delay_seconds"`
}

// MintResult is the outcome of the habit NFT flow.
type MintResult struct {
	TxHash string        `json:"tx_hash"`
	Badge  *UploadResult `json:"badge,omitempty"`
}

// HabitHeroI is the application core consumed by the HTTP layer.
type HabitHeroI interface {
	// Connect caches the wallet address and opens a session.
	Connect(ctx context.Context, address string) (*Session, error)
	// Disconnect clears the session and both cached addresses.
	Disconnect(ctx context.Context, sessionID string) error
	// Status reports connection and registration state for the session.
	Status(ctx context.Context, sessionID string) (*SessionStatus, error)

	// Register validates and submits the profile, optionally deploying
	// the companion contract.
	Register(ctx context.Context, sessionID string, profile *UserProfile, deployContract bool) (*RegistrationResult, error)
	// CreateHabit uploads the badge (optional), mints and waits for
	// confirmation.
	CreateHabit(ctx context.Context, sessionID string, draft *HabitDraft, uploadBadge bool) (*MintResult, error)
	// TrackHabit records a completion: the habit NFT grows, advancing
	// its streak and updating its badge.
	TrackHabit(ctx context.Context, sessionID string, habitID int64, description string, uploadBadge bool) (*MintResult, error)
	// ListHabits fetches and decodes the session's habit collection.
	ListHabits(ctx context.Context, sessionID string) (*HabitBoard, error)

	// Motivate generates a motivational message; when sessionID is set
	// the message is also pushed to the wallet's linked channels.
	Motivate(ctx context.Context, req *MotivationRequest, sessionID string) (string, error)
	// LinkDelivery associates delivery channels with the session's wallet.
	LinkDelivery(ctx context.Context, sessionID, telegram, email string) error
}

// APIServer is the HTTP front of the application.
type APIServer interface {
	Start()
	Shutdown() error
}
