package http_api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/habithero/habitherod/internal/habithero"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/errmap"
)

// ConnectRequest represents the JSON body for opening a wallet session
type ConnectRequest struct {
	Address string `json:"address" binding:"required"`
}

// SessionRequest represents a JSON body carrying only the session ID
type SessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// RegisterRequest represents the JSON body for user registration
type RegisterRequest struct {
	SessionID      string `json:"session_id" binding:"required"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	DeployContract bool   `json:"deploy_contract"`
}

// CreateHabitRequest represents the JSON body for minting a habit NFT
type CreateHabitRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	UploadBadge bool   `json:"upload_badge"`
}

// TrackHabitRequest represents the JSON body for tracking a completion
type TrackHabitRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	Description string `json:"description"`
	UploadBadge bool   `json:"upload_badge"`
}

// MotivateRequest represents the JSON body for /motivate
type MotivateRequest struct {
	Habit       string `json:"habit"`
	Progress    string `json:"progress"`
	Description string `json:"description"`
	// SessionID optionally routes the message to the wallet's linked
	// delivery channels.
	SessionID string `json:"session_id"`
}

// LinkDeliveryRequest represents the JSON body for linking delivery channels
type LinkDeliveryRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Telegram  string `json:"telegram"`
	Email     string `json:"email"`
}

// flowError writes the right status and message for a core flow error.
// Validation and missing-precondition errors surface verbatim; external
// failures are mapped to a friendly message unless verbatim is set.
func (s *HTTPServer) flowError(c *gin.Context, err error, verbatim bool) {
	switch {
	case habithero.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case habithero.IsPrecondition(err):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	default:
		message := errmap.Friendly(err)
		if verbatim {
			message = err.Error()
		}
		s.logger.Error("Flow failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// connect is a handler for the /session/connect endpoint.
func (s *HTTPServer) connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	session, err := s.app.Connect(c.Request.Context(), req.Address)
	if err != nil {
		s.flowError(c, err, false)
		return
	}

	s.logger.Info("Session opened", "address", session.Address)
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"address":    session.Address,
	})
}

// disconnect is a handler for the /session/disconnect endpoint.
func (s *HTTPServer) disconnect(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := s.app.Disconnect(c.Request.Context(), req.SessionID); err != nil {
		s.flowError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// status is a handler for the /session/status endpoint.
func (s *HTTPServer) status(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	status, err := s.app.Status(c.Request.Context(), sessionID)
	if err != nil {
		s.flowError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, status)
}

// register is a handler for the /register endpoint.
func (s *HTTPServer) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	profile := &models.UserProfile{
		Name:   req.Name,
		Email:  req.Email,
		Gender: req.Gender,
	}

	result, err := s.app.Register(c.Request.Context(), req.SessionID, profile, req.DeployContract)
	if err != nil {
		s.flowError(c, err, false)
		return
	}

	s.logger.Info("User registered", "session", req.SessionID)
	c.JSON(http.StatusOK, result)
}

// createHabit is a handler for the POST /habits endpoint. Failures of
// the upload/mint/confirm sequence surface their message verbatim.
func (s *HTTPServer) createHabit(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	draft := &models.HabitDraft{
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
	}

	result, err := s.app.CreateHabit(c.Request.Context(), req.SessionID, draft, req.UploadBadge)
	if err != nil {
		s.flowError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, result)
}

// trackHabit is a handler for the POST /habits/:id/track endpoint. Like
// createHabit, failures of the grow/confirm sequence surface verbatim.
func (s *HTTPServer) trackHabit(c *gin.Context) {
	habitID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit id"})
		return
	}

	var req TrackHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := s.app.TrackHabit(c.Request.Context(), req.SessionID, habitID, req.Description, req.UploadBadge)
	if err != nil {
		s.flowError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, result)
}

// listHabits is a handler for the GET /habits endpoint.
func (s *HTTPServer) listHabits(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	board, err := s.app.ListHabits(c.Request.Context(), sessionID)
	if err != nil {
		s.flowError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, board)
}

// motivate is a handler for the /motivate endpoint.
func (s *HTTPServer) motivate(c *gin.Context) {
	var req MotivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	message, err := s.app.Motivate(c.Request.Context(), &models.MotivationRequest{
		Habit:       req.Habit,
		Progress:    req.Progress,
		Description: req.Description,
	}, req.SessionID)
	if err != nil {
		s.logger.Error("Motivation error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// upload is a handler for the /upload endpoint.
func (s *HTTPServer) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open file: " + err.Error()})
		return
	}
	defer file.Close()

	result, err := s.uploader.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		s.logger.Error("Upload failed", "file", fileHeader.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "File uploaded to IPFS successfully",
	})
}

// retrieve is a handler for the GET /retrieve/:hash endpoint. It hands
// back the gateway URL set for a pinned hash without touching the node.
func (s *HTTPServer) retrieve(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hash parameter is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.uploader.URLs(hash),
		"message": "File URLs generated successfully",
	})
}

// download is a handler for the GET /download/:hash endpoint. The file
// is streamed from the gateway with an attachment disposition.
func (s *HTTPServer) download(c *gin.Context) {
	hash := c.Param("hash")
	if hash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hash parameter is required"})
		return
	}

	contentType, body, err := s.uploader.Fetch(c.Request.Context(), hash)
	if err != nil {
		if errors.Is(err, models.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found in IPFS"})
			return
		}
		s.logger.Error("Download failed", "hash", hash, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(hash))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		s.logger.Error("Download stream failed", "hash", hash, "error", err)
	}
}

// health is a handler for the /health endpoint.
func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"ipfs":   s.uploader.Healthy(c.Request.Context()),
	})
}

// linkDelivery is a handler for the /delivery endpoint.
func (s *HTTPServer) linkDelivery(c *gin.Context) {
	var req LinkDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := s.app.LinkDelivery(c.Request.Context(), req.SessionID, req.Telegram, req.Email); err != nil {
		s.flowError(c, err, false)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
