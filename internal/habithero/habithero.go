// Package habithero holds the application core: the wallet session,
// registration, habit NFT and dashboard flows, plus the motivational
// message flow. Each flow is a linear sequence gated by precondition
// checks; there is no shared mutable state beyond the session store.
package habithero

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habithero/habitherod/internal/config"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/internal/nft"
	"github.com/habithero/habitherod/pkg/logger"
	"github.com/habithero/habitherod/pkg/validation"
)

const (
	// confirmationDelaySeconds is how long the client displays the
	// registration confirmation before moving to the dashboard.
	confirmationDelaySeconds = 2
	// lookupWindow bounds the registry lookup behind the session status
	// view. It mirrors the client's 15s connect busy window; the
	// underlying chain call is not cancelled beyond it.
	lookupWindow = 15 * time.Second
	// sessionTTL is how long an abandoned session survives before the
	// sweep removes it.
	sessionTTL = 30 * 24 * time.Hour
	// sweepInterval is how often stale sessions are removed.
	sweepInterval = time.Hour
)

// Deliverer pushes a motivational message to a wallet's linked channels.
type Deliverer interface {
	DeliverMotivation(address, message string)
}

// StaleSweeper removes sessions created before the given timestamp.
type StaleSweeper interface {
	RemoveStaleSessions(timestamp int64) error
}

// HabitHero is the main struct for the application. It contains all the
// components the flows need and serves all business logic.
type HabitHero struct {
	logger *logger.Logger
	config *config.Config

	store     models.SessionStore
	chain     models.ChainService
	uploader  models.Uploader
	motivator models.Motivator
	repo      models.Repository
	deliverer Deliverer
	sweeper   StaleSweeper
}

// Option configures optional collaborators.
type Option func(*HabitHero)

// WithDeliverer wires motivational-message delivery.
func WithDeliverer(repo models.Repository, d Deliverer) Option {
	return func(h *HabitHero) {
		h.repo = repo
		h.deliverer = d
	}
}

// WithSweeper wires the stale-session sweep.
func WithSweeper(s StaleSweeper) Option {
	return func(h *HabitHero) {
		h.sweeper = s
	}
}

// NewHabitHero creates a new HabitHero instance.
func NewHabitHero(
	store models.SessionStore,
	chain models.ChainService,
	uploader models.Uploader,
	motivator models.Motivator,
	logger *logger.Logger,
	config *config.Config,
	opts ...Option,
) *HabitHero {
	h := &HabitHero{
		store:     store,
		chain:     chain,
		uploader:  uploader,
		motivator: motivator,
		logger:    logger,
		config:    config,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start launches the background stale-session sweep, if configured.
func (h *HabitHero) Start() {
	if h.sweeper == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			h.logger.Debug("Removing stale sessions")
			if err := h.sweeper.RemoveStaleSessions(time.Now().Add(-sessionTTL).Unix()); err != nil {
				h.logger.Error("Failed to remove stale sessions", "error", err)
			}
		}
	}()
}

// Connect caches the wallet address and opens a session. The wallet
// popup and signing happen outside this service; by the time Connect is
// called the address is already authenticated by the wallet provider.
func (h *HabitHero) Connect(ctx context.Context, address string) (*models.Session, error) {
	normalized, err := validation.ValidateAndNormalizeAddress(address)
	if err != nil {
		return nil, validationErr("invalid wallet address: " + err.Error())
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Address:   normalized,
		CreatedAt: time.Now().Unix(),
	}
	if err := h.store.Put(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	h.logger.Info("Wallet connected ", "address ", normalized)
	return session, nil
}

// Disconnect clears the session and both cached addresses with it.
func (h *HabitHero) Disconnect(ctx context.Context, sessionID string) error {
	if err := h.store.Clear(sessionID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	h.logger.Info("Wallet disconnected ", "session ", sessionID)
	return nil
}

// Status reports connection and registration state for the session.
// A failed registry lookup is reported as LookupFailed, never conflated
// with NotRegistered.
func (h *HabitHero) Status(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	session, err := h.store.Get(sessionID)
	if errors.Is(err, models.ErrSessionNotFound) {
		return &models.SessionStatus{Connected: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupWindow)
	defer cancel()

	status, err := h.chain.RegistrationStatus(lookupCtx, session.Address)
	if err != nil {
		h.logger.Warn("Registry lookup failed", "address", session.Address, "error", err)
	}

	return &models.SessionStatus{
		Connected:    true,
		Address:      session.Address,
		Registration: status,
	}, nil
}

// Register validates the profile, submits the registration and
// optionally deploys the companion contract. A failed deployment does
// not roll back a completed registration; it is reported alongside.
func (h *HabitHero) Register(ctx context.Context, sessionID string, profile *models.UserProfile, deployContract bool) (*models.RegistrationResult, error) {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return nil, ErrNotConnected
	}

	// All validation happens before any chain call.
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	txHash, err := h.chain.RegisterUser(ctx, session.Address, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	h.logger.Info("User registered ", "address ", session.Address, " tx ", txHash)

	result := &models.RegistrationResult{
		TxHash:                   txHash,
		ConfirmationDelaySeconds: confirmationDelaySeconds,
	}

	if deployContract {
		// The user's name doubles as contract name and symbol.
		contractAddress, err := h.chain.DeployCompanion(ctx, profile.Name, profile.Name)
		if err != nil {
			h.logger.Error("Companion deployment failed", "address", session.Address, "error", err)
			result.DeploymentError = "Error deploying contract"
			return result, nil
		}

		session.ContractAddress = contractAddress
		if err := h.store.Put(session); err != nil {
			return nil, fmt.Errorf("failed to cache contract address: %w", err)
		}
		result.ContractAddress = contractAddress
		h.logger.Info("Companion contract cached ", "address ", contractAddress)
	}

	return result, nil
}

// CreateHabit runs the three sequential mint steps: optional badge
// upload, mint, confirmation. Any failure aborts the whole operation;
// an uploaded-but-unminted badge is simply orphaned.
func (h *HabitHero) CreateHabit(ctx context.Context, sessionID string, draft *models.HabitDraft, uploadBadge bool) (*models.MintResult, error) {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return nil, ErrNotConnected
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	if session.ContractAddress == "" {
		return nil, ErrNoContract
	}

	result := &models.MintResult{}
	cid := ""
	if uploadBadge {
		badge, err := h.uploader.UploadAsset(ctx, h.config.BadgeAssetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to upload badge: %w", err)
		}
		cid = badge.Hash
		result.Badge = badge
	}

	txHash, err := h.chain.Mint(ctx, session.ContractAddress, cid, draft.Description, draft.Title)
	if err != nil {
		return nil, err
	}

	if err := h.chain.WaitConfirmed(ctx, txHash); err != nil {
		return nil, err
	}

	result.TxHash = txHash
	h.logger.Info("Habit minted ", "title ", draft.Title, " tx ", txHash)
	return result, nil
}

// TrackHabit records a completion for the given habit: the NFT grows,
// advancing its streak and refreshing its badge. The steps mirror
// CreateHabit: optional badge upload, grow, confirmation, and any
// failure aborts the whole operation.
func (h *HabitHero) TrackHabit(ctx context.Context, sessionID string, habitID int64, description string, uploadBadge bool) (*models.MintResult, error) {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return nil, ErrNotConnected
	}

	if habitID < 0 {
		return nil, validationErr("habit id must be >= 0")
	}

	if session.ContractAddress == "" {
		return nil, ErrNoContract
	}

	result := &models.MintResult{}
	cid := ""
	if uploadBadge {
		badge, err := h.uploader.UploadAsset(ctx, h.config.BadgeAssetPath)
		if err != nil {
			return nil, fmt.Errorf("failed to upload badge: %w", err)
		}
		cid = badge.Hash
		result.Badge = badge
	}

	txHash, err := h.chain.Grow(ctx, session.ContractAddress, habitID, cid, description)
	if err != nil {
		return nil, err
	}

	if err := h.chain.WaitConfirmed(ctx, txHash); err != nil {
		return nil, err
	}

	result.TxHash = txHash
	h.logger.Info("Habit tracked ", "habit ", habitID, " tx ", txHash)
	return result, nil
}

// ListHabits fetches, decodes and summarizes the session's collection.
func (h *HabitHero) ListHabits(ctx context.Context, sessionID string) (*models.HabitBoard, error) {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return nil, ErrNotConnected
	}

	if session.ContractAddress == "" {
		return nil, ErrNoContract
	}

	rows, err := h.chain.AllNFTs(ctx, session.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch NFTs: %w", err)
	}

	habits, err := nft.DecodeAll(rows, session.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to decode NFTs: %w", err)
	}

	return nft.Board(habits), nil
}

// Motivate generates a motivational message. When sessionID names a
// live session the message is also pushed to the wallet's linked
// channels; delivery failures never fail the request.
func (h *HabitHero) Motivate(ctx context.Context, req *models.MotivationRequest, sessionID string) (string, error) {
	message, err := h.motivator.Motivate(ctx, req)
	if err != nil {
		return "", err
	}

	if sessionID != "" && h.deliverer != nil {
		if session, err := h.store.Get(sessionID); err == nil {
			go func(address string) {
				defer func() {
					if r := recover(); r != nil {
						h.logger.Error("Delivery panicked", "address", address, "panic", r)
					}
				}()
				h.deliverer.DeliverMotivation(address, message)
			}(session.Address)
		}
	}

	return message, nil
}

// LinkDelivery associates delivery channels with the session's wallet.
func (h *HabitHero) LinkDelivery(ctx context.Context, sessionID, telegram, email string) error {
	session, err := h.store.Get(sessionID)
	if err != nil {
		return ErrNotConnected
	}
	if h.repo == nil {
		return fmt.Errorf("delivery is not configured")
	}
	if telegram == "" && email == "" {
		return validationErr("at least one delivery channel (telegram or email) is required")
	}
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return validationErr(err.Error())
		}
	}

	return h.repo.UpsertDeliveryLink(&models.DeliveryLink{
		Address:          session.Address,
		TelegramUsername: telegram,
		Email:            email,
	})
}

func validateProfile(profile *models.UserProfile) error {
	if profile.Name == "" || profile.Email == "" || profile.Gender == "" {
		return validationErr("Please fill in all fields")
	}
	if err := validation.ValidateEmail(profile.Email); err != nil {
		return validationErr("Please enter a valid email address")
	}
	if !models.ValidGender(profile.Gender) {
		return validationErr("Please select a valid gender")
	}
	return nil
}

func validateDraft(draft *models.HabitDraft) error {
	if draft.Title == "" || draft.Description == "" || draft.Frequency == "" {
		return validationErr("Please fill in all fields before creating the habit")
	}
	if !models.ValidFrequency(draft.Frequency) {
		return validationErr("Frequency must be Daily, Weekly or Monthly")
	}
	return nil
}
