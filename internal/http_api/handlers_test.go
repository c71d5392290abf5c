package http_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habithero/habitherod/internal/habithero"
	"github.com/habithero/habitherod/internal/models"
	"github.com/habithero/habitherod/pkg/logger"
)

type fakeApp struct {
	motivateMsg  string
	motivateErr  error
	board        *models.HabitBoard
	listErr      error
	registerErr  error
	session      *models.Session
	disconnected []string
	tracked      []int64
	trackErr     error
}

func (f *fakeApp) Connect(ctx context.Context, address string) (*models.Session, error) {
	if f.session != nil {
		return f.session, nil
	}
	return &models.Session{ID: "sid-1", Address: address}, nil
}

func (f *fakeApp) Disconnect(ctx context.Context, sessionID string) error {
	f.disconnected = append(f.disconnected, sessionID)
	return nil
}

func (f *fakeApp) Status(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	return &models.SessionStatus{Connected: true, Address: "0xab", Registration: models.NotRegistered}, nil
}

func (f *fakeApp) Register(ctx context.Context, sessionID string, profile *models.UserProfile, deployContract bool) (*models.RegistrationResult, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.RegistrationResult{TxHash: "0xtx", ConfirmationDelaySeconds: 2}, nil
}

func (f *fakeApp) CreateHabit(ctx context.Context, sessionID string, draft *models.HabitDraft, uploadBadge bool) (*models.MintResult, error) {
	return &models.MintResult{TxHash: "0xtxmint"}, nil
}

func (f *fakeApp) TrackHabit(ctx context.Context, sessionID string, habitID int64, description string, uploadBadge bool) (*models.MintResult, error) {
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	f.tracked = append(f.tracked, habitID)
	return &models.MintResult{TxHash: "0xtxgrow"}, nil
}

func (f *fakeApp) ListHabits(ctx context.Context, sessionID string) (*models.HabitBoard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.board, nil
}

func (f *fakeApp) Motivate(ctx context.Context, req *models.MotivationRequest, sessionID string) (string, error) {
	return f.motivateMsg, f.motivateErr
}

func (f *fakeApp) LinkDelivery(ctx context.Context, sessionID, telegram, email string) error {
	return nil
}

type fakeUploader struct {
	result   *models.UploadResult
	err      error
	content  string
	fetchErr error
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error) {
	return f.result, f.err
}

func (f *fakeUploader) UploadAsset(ctx context.Context, path string) (*models.UploadResult, error) {
	return f.result, f.err
}

func (f *fakeUploader) URLs(hash string) *models.UploadResult {
	return &models.UploadResult{
		Hash:       hash,
		LocalURL:   "http://127.0.0.1:8081/ipfs/" + hash,
		PublicURL:  "https://ipfs.io/ipfs/" + hash,
		GatewayURL: "http://127.0.0.1:8081/ipfs/" + hash,
	}
}

func (f *fakeUploader) Fetch(ctx context.Context, hash string) (string, io.ReadCloser, error) {
	if f.fetchErr != nil {
		return "", nil, f.fetchErr
	}
	return "image/svg+xml", io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeUploader) Healthy(ctx context.Context) bool { return true }

func newTestServer(app *fakeApp, uploader *fakeUploader) *HTTPServer {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	s := &HTTPServer{
		router:   router,
		app:      app,
		uploader: uploader,
		logger:   logger.NewNop(),
	}
	s.routes()
	return s
}

func doJSON(t *testing.T, s *HTTPServer, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestMotivate_Success(t *testing.T) {
	s := newTestServer(&fakeApp{motivateMsg: "4 days strong, keep going!"}, nil)

	w := doJSON(t, s, http.MethodPost, "/motivate", map[string]string{
		"habit":       "Code for 30 minutes",
		"progress":    "4/10 days",
		"description": "Learn daily",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "4 days strong, keep going!", resp["message"])
}

func TestMotivate_UpstreamFailureIs500(t *testing.T) {
	app := &fakeApp{motivateErr: errors.New("model overloaded")}
	s := newTestServer(app, nil)

	w := doJSON(t, s, http.MethodPost, "/motivate", map[string]string{"habit": "Run"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "model overloaded", resp["error"])

	// The server keeps answering after an upstream failure.
	app.motivateErr = nil
	app.motivateMsg = "Back on track!"
	w = doJSON(t, s, http.MethodPost, "/motivate", map[string]string{"habit": "Run"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListHabits_EmptyCollectionIsOK(t *testing.T) {
	s := newTestServer(&fakeApp{board: &models.HabitBoard{Habits: []models.HabitNFT{}}}, nil)

	w := doJSON(t, s, http.MethodGet, "/api/v1/habits?session_id=sid-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var board models.HabitBoard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Empty(t, board.Habits)
	assert.Equal(t, 0, board.Total)
	assert.Equal(t, 0.0, board.ProgressPercentage)
}

func TestListHabits_MissingContractFailsFast(t *testing.T) {
	s := newTestServer(&fakeApp{listErr: habithero.ErrNoContract}, nil)

	w := doJSON(t, s, http.MethodGet, "/api/v1/habits?session_id=sid-1", nil)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "contract address not set")
}

func TestListHabits_RequiresSessionID(t *testing.T) {
	s := newTestServer(&fakeApp{}, nil)
	w := doJSON(t, s, http.MethodGet, "/api/v1/habits", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ValidationErrorSurfacesVerbatim(t *testing.T) {
	s := newTestServer(&fakeApp{registerErr: habithero.NewValidationError("Please enter a valid email address")}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/v1/register", map[string]interface{}{
		"session_id": "sid-1",
		"name":       "Jane",
		"email":      "jane@x",
		"gender":     "female",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid email address")
}

func TestRegister_ExternalFailureIsMapped(t *testing.T) {
	s := newTestServer(&fakeApp{registerErr: errors.New("execution reverted: User already registered")}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/v1/register", map[string]interface{}{
		"session_id": "sid-1",
		"name":       "Jane",
		"email":      "jane@x.com",
		"gender":     "female",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestConnectDisconnect_Roundtrip(t *testing.T) {
	app := &fakeApp{}
	s := newTestServer(app, nil)

	w := doJSON(t, s, http.MethodPost, "/api/v1/session/connect", map[string]string{
		"address": "0xabababababababababababababababababababababab",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sid-1", resp["session_id"])

	w = doJSON(t, s, http.MethodPost, "/api/v1/session/disconnect", map[string]string{
		"session_id": resp["session_id"],
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"sid-1"}, app.disconnected)
}

func TestTrackHabit_GrowsByID(t *testing.T) {
	app := &fakeApp{}
	s := newTestServer(app, nil)

	w := doJSON(t, s, http.MethodPost, "/api/v1/habits/3/track", map[string]interface{}{
		"session_id":  "sid-1",
		"description": "Day 4 done",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xtxgrow")
	assert.Equal(t, []int64{3}, app.tracked)
}

func TestTrackHabit_InvalidID(t *testing.T) {
	s := newTestServer(&fakeApp{}, nil)
	w := doJSON(t, s, http.MethodPost, "/api/v1/habits/abc/track", map[string]interface{}{
		"session_id": "sid-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackHabit_GrowFailureSurfacesVerbatim(t *testing.T) {
	s := newTestServer(&fakeApp{trackErr: errors.New("failed to grow habit NFT: execution reverted")}, nil)
	w := doJSON(t, s, http.MethodPost, "/api/v1/habits/0/track", map[string]interface{}{
		"session_id": "sid-1",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to grow habit NFT")
}

func TestUpload_Multipart(t *testing.T) {
	uploader := &fakeUploader{result: &models.UploadResult{
		Hash:      "QmTestHash",
		Size:      "42",
		PublicURL: "https://ipfs.io/ipfs/QmTestHash",
	}}
	s := newTestServer(&fakeApp{}, uploader)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "logo.svg")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader("<svg/>"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "QmTestHash")
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestUpload_MissingFile(t *testing.T) {
	s := newTestServer(&fakeApp{}, &fakeUploader{})
	w := doJSON(t, s, http.MethodPost, "/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRetrieve_ReturnsGatewayURLs(t *testing.T) {
	s := newTestServer(&fakeApp{}, &fakeUploader{})

	w := doJSON(t, s, http.MethodGet, "/retrieve/QmTestHash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "https://ipfs.io/ipfs/QmTestHash")
	assert.Contains(t, w.Body.String(), "http://127.0.0.1:8081/ipfs/QmTestHash")
}

func TestDownload_StreamsAttachment(t *testing.T) {
	s := newTestServer(&fakeApp{}, &fakeUploader{content: "<svg/>"})

	w := doJSON(t, s, http.MethodGet, "/download/QmTestHash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<svg/>", w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}

func TestDownload_UnknownHashIs404(t *testing.T) {
	s := newTestServer(&fakeApp{}, &fakeUploader{fetchErr: models.ErrFileNotFound})

	w := doJSON(t, s, http.MethodGet, "/download/QmMissing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "File not found in IPFS")
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeApp{}, &fakeUploader{})
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
