package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlite/internal/auth"
	"finlite/internal/repository/sqlite"
	"finlite/internal/service"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	clientRepo := sqlite.NewClientRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	cardRepo := sqlite.NewCardRepository(db)
	accountRepo := sqlite.NewAccountRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	ctx := context.Background()
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, clientRepo.Init(ctx))
	require.NoError(t, categoryRepo.Init(ctx))
	require.NoError(t, cardRepo.Init(ctx))
	require.NoError(t, accountRepo.Init(ctx))
	require.NoError(t, taskRepo.Init(ctx))
	require.NoError(t, reportRepo.Init(ctx))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewHandler(
		service.NewUserService(userRepo),
		service.NewClientService(clientRepo),
		service.NewAccountService(accountRepo),
		service.NewCategoryService(categoryRepo),
		service.NewCardService(cardRepo),
		service.NewTaskService(taskRepo),
		service.NewReportService(reportRepo, accountRepo, nil, "", "", logger),
		testSecret,
		time.Hour,
		logger,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email, password string) string {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginClientRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	// fresh account starts with no clients
	rec := doRequest(t, router, http.MethodGet, "/clients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/clients", token, gin.H{
		"name": "Acme Co", "type": "client",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	assert.NotZero(t, created["id"])
	assert.Equal(t, "Acme Co", created["name"])

	rec = doRequest(t, router, http.MethodGet, "/clients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var clients []ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Co", clients[0].Name)

	rec = doRequest(t, router, http.MethodDelete, "/clients/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/clients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/register", "", gin.H{"email": "bob@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/register", "", gin.H{
		"name": "Bob", "email": "bob@x.com", "password": "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/register", "", gin.H{
		"name": "Other Bob", "email": "bob@x.com", "password": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/login", "", gin.H{"email": "bob@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown email and wrong password must be indistinguishable
	unknown := doRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"email": "nobody@x.com", "password": "pw",
	})
	mismatch := doRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"email": "bob@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, mismatch.Code)
	assert.Equal(t, unknown.Body.String(), mismatch.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing token")

	rec = doRequest(t, router, http.MethodGet, "/clients", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "malformed token")

	wrongKey, err := auth.GenerateToken(1, "Bob", "bob@x.com", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	rec = doRequest(t, router, http.MethodGet, "/clients", wrongKey, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "wrong signing key")

	expired, err := auth.GenerateToken(1, "Bob", "bob@x.com", []byte(testSecret), -time.Hour)
	require.NoError(t, err)
	rec = doRequest(t, router, http.MethodGet, "/clients", expired, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "expired token")
}

func TestCrossUserIsolation(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "Alice", "alice@x.com", "pw")
	bobToken := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/clients", aliceToken, gin.H{
		"name": "Acme Co", "type": "client",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/clients", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "bob must not see alice's clients")

	rec = doRequest(t, router, http.MethodPut, "/clients/1", bobToken, gin.H{
		"name": "Hijacked", "type": "client",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/clients/1", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/clients", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var clients []ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &clients))
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Co", clients[0].Name, "alice's client must survive bob's attempts")
}

func TestAccountCreationBoundaries(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/categories", token, gin.H{
		"name": "Consulting", "kind": "income",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/accounts", token, gin.H{
		"client_id": 1, "category_id": 1, "amount": -1, "status": "unpaid",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "negative amount")

	rec = doRequest(t, router, http.MethodPost, "/accounts", token, gin.H{
		"client_id": 1, "category_id": 1, "status": "unpaid",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing amount")

	rec = doRequest(t, router, http.MethodPost, "/accounts", token, gin.H{
		"client_id": 1, "category_id": 1, "amount": 0, "status": "unpaid",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, "zero amount is valid")

	rec = doRequest(t, router, http.MethodPost, "/accounts", token, gin.H{
		"client_id": 1, "category_id": 1, "amount": 10, "status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "status outside the enum")
}

func TestPayFlow(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/categories", token, gin.H{
		"name": "Consulting", "kind": "income",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/cards", token, gin.H{
		"card_number": "4111111111111111", "card_holder_name": "BOB", "balance": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/accounts", token, gin.H{
		"client_id": 1, "category_id": 1, "card_id": 1, "amount": 250, "status": "unpaid",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/accounts/pay/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the balance update and the status flip commit together
	rec = doRequest(t, router, http.MethodGet, "/cards", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cards []CardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.InDelta(t, 350.0, cards[0].Balance, 0.001)

	rec = doRequest(t, router, http.MethodPut, "/accounts/pay/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "second pay must be rejected")

	rec = doRequest(t, router, http.MethodGet, "/cards", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.InDelta(t, 350.0, cards[0].Balance, 0.001, "double pay must not re-apply the amount")

	rec = doRequest(t, router, http.MethodPut, "/accounts/pay/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountUpdateRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/accounts/1", "", gin.H{
		"client_id": 1, "category_id": 1, "amount": 10, "status": "paid",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserProfile(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Bob", body["name"])
	assert.Equal(t, "bob@x.com", body["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestReportsWithoutStorage(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/reports", token, gin.H{"report_name": "Q1 export"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/reports", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/reports", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Q1 export", reports[0].ReportName)
	assert.Empty(t, reports[0].ArchiveLocation)

	rec = doRequest(t, router, http.MethodGet, "/reports/archives", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/reports/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/reports/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/reports", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCategoryValidation(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/categories", token, gin.H{
		"name": "Misc", "kind": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "kind outside the enum")

	rec = doRequest(t, router, http.MethodPost, "/categories", token, gin.H{"kind": "income"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name")
}

func TestTaskLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "Bob", "bob@x.com", "pw")

	rec := doRequest(t, router, http.MethodPost, "/tasks", token, gin.H{
		"title": "Send invoices", "status": "open",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/tasks/1", token, gin.H{
		"title": "Send invoices", "status": "done",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "done", tasks[0].Status)

	rec = doRequest(t, router, http.MethodDelete, "/tasks/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/tasks/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
