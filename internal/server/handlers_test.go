package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amani-hq/amani/internal/config"
	"github.com/amani-hq/amani/internal/identifier"
	"github.com/amani-hq/amani/internal/resources"
	"github.com/amani-hq/amani/internal/restream"
	"github.com/amani-hq/amani/internal/sequence"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

var testDBSeq int

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDBSeq++
	dsn := fmt.Sprintf("file:server_test_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	models := resources.Models()
	models = append(models, &sequence.Counter{})
	require.NoError(t, db.AutoMigrate(models...))

	log := zap.NewNop()
	cfg := config.Config{
		HTTPAddr:      ":0",
		AuthJWTSecret: testJWTSecret,
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	engine := NewEngine(log, NewHTTPMetrics(prometheus.NewRegistry()))
	return NewServer(ServerParams{
		Gin:      engine,
		Cfg:      cfg,
		Log:      log,
		DB:       db,
		Seq:      sequence.New(log),
		Keys:     identifier.NewGenerator(node),
		Restream: restream.New(cfg, log),
	})
}

func signToken(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func createBranch(t *testing.T, s *Server, name string) map[string]any {
	t.Helper()
	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/branches", map[string]any{
		"name":    name,
		"address": "1 Main St",
		"city":    "Nairobi",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestCreateReturnsEnvelopeWithIdentifiers(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/branches", map[string]any{
		"name": "Westlands",
		"city": "Nairobi",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["message"])

	data := resp["data"].(map[string]any)
	assert.Len(t, data["id"], 24)
	assert.Equal(t, float64(1), data["seq_no"])
	assert.Equal(t, true, data["status"])
}

func TestCreateMissingRequiredFieldIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/branches", map[string]any{
		"city": "Nairobi",
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestGetByStorageKeyAndSequence(t *testing.T) {
	s := newTestServer(t)
	created := createBranch(t, s, "Westlands")

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/branches/"+created["id"].(string), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["id"], resp["data"].(map[string]any)["id"])

	w, resp = doJSON(t, s, http.MethodGet, "/api/v1/branches/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created["id"], resp["data"].(map[string]any)["id"])
}

func TestGetInvalidIdentifierIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/branches/not-an-id", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestGetMissingRecordIsNotFound(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, http.MethodGet, "/api/v1/branches/42", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPaginationEnvelope(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 3; i++ {
		createBranch(t, s, fmt.Sprintf("Branch %d", i))
	}

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/branches?page=1&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := resp["data"].([]any)
	assert.Len(t, items, 2)

	meta := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(1), meta["currentPage"])
	assert.Equal(t, float64(2), meta["totalPages"])
	assert.Equal(t, float64(3), meta["totalItems"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, false, meta["hasPrevPage"])
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	s := newTestServer(t)
	created := createBranch(t, s, "Westlands")
	path := "/api/v1/branches/" + created["id"].(string)

	w, resp := doJSON(t, s, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["data"].(map[string]any)["status"])

	w, resp = doJSON(t, s, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["data"].(map[string]any)["status"])
}

func TestUpdateAppliesPatch(t *testing.T) {
	s := newTestServer(t)
	created := createBranch(t, s, "Westlands")

	w, resp := doJSON(t, s, http.MethodPut, "/api/v1/branches/"+created["id"].(string), map[string]any{
		"city": "Mombasa",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mombasa", resp["data"].(map[string]any)["city"])
}

func TestListMineRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/branches/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestListMineFiltersByCreator(t *testing.T) {
	s := newTestServer(t)
	alice := map[string]string{"Authorization": "Bearer " + signToken(t, 7)}
	bob := map[string]string{"Authorization": "Bearer " + signToken(t, 8)}

	w, _ := doJSON(t, s, http.MethodPost, "/api/v1/branches", map[string]any{"name": "Alice Branch"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = doJSON(t, s, http.MethodPost, "/api/v1/branches", map[string]any{"name": "Bob Branch"}, bob)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/branches/me", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	items := resp["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Alice Branch", items[0].(map[string]any)["name"])
}

func TestCreateWithMissingReferenceIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/rewards", map[string]any{
		"name":      "Free Coffee",
		"branch_id": 42,
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	w, resp = doJSON(t, s, http.MethodGet, "/api/v1/rewards", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["pagination"].(map[string]any)["totalItems"])
}

func TestListResolvesReferences(t *testing.T) {
	s := newTestServer(t)
	branch := createBranch(t, s, "Westlands")

	w, _ := doJSON(t, s, http.MethodPost, "/api/v1/rewards", map[string]any{
		"name":      "Free Coffee",
		"branch_id": branch["seq_no"],
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, s, http.MethodGet, "/api/v1/rewards", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := resp["data"].([]any)
	require.Len(t, items, 1)

	resolved, ok := items[0].(map[string]any)["branch_id"].(map[string]any)
	require.True(t, ok, "branch_id should be spliced with the referenced record")
	assert.Equal(t, "Westlands", resolved["name"])
}

func TestSocialMediaLiveCreatesCompanionReel(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/social-media-lives", map[string]any{
		"title":      "Launch Stream",
		"platform":   "youtube",
		"stream_url": "https://youtube.example/live/1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	live := resp["data"].(map[string]any)
	require.NotNil(t, live["reel_id"])

	w, resp = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/reels/%v", live["reel_id"]), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	reel := resp["data"].(map[string]any)
	assert.Equal(t, "https://youtube.example/live/1", reel["reel_url"])
	assert.Equal(t, "Launch Stream", reel["caption"])
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestRestreamTokenRequiresCode(t *testing.T) {
	s := newTestServer(t)

	w, resp := doJSON(t, s, http.MethodPost, "/api/v1/restream/token", map[string]any{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRestreamChannelsRequiresToken(t *testing.T) {
	s := newTestServer(t)

	w, _ := doJSON(t, s, http.MethodGet, "/api/v1/restream/channels", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
