package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkarimi/dukapos/internal/application/service"
	"github.com/jkarimi/dukapos/internal/config"
	infra "github.com/jkarimi/dukapos/internal/infrastructure/repository"
	"github.com/jkarimi/dukapos/internal/presentation/http/handler"
	"github.com/jkarimi/dukapos/pkg/utils"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind,omitempty"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	cfg := &config.Config{
		App:       config.AppConfig{Name: "dukapos", Env: "test", Port: "0"},
		Inventory: config.InventoryConfig{LowStockThreshold: 5},
		JWT:       config.JWTConfig{Secret: "test-secret", ExpiryHours: time.Hour},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	catalogRepo, err := infra.NewCatalogRepository(filepath.Join(dir, "inventory_data.json"))
	require.NoError(t, err)
	ledgerRepo, err := infra.NewLedgerRepository(filepath.Join(dir, "sales_history.json"), nil)
	require.NoError(t, err)
	userRepo, err := infra.NewUserRepository(filepath.Join(dir, "users.json"))
	require.NoError(t, err)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	catalogSvc := service.NewCatalogService(catalogRepo, nil)
	saleSvc := service.NewSaleService(catalogRepo, ledgerRepo, nil)
	reportSvc := service.NewReportService(catalogRepo, ledgerRepo, cfg.Inventory.LowStockThreshold, nil)
	authSvc := service.NewAuthService(userRepo, jwtManager, nil)

	h := &Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Catalog: handler.NewCatalogHandler(catalogSvc, reportSvc),
		Sale:    handler.NewSaleHandler(saleSvc, reportSvc),
		Report:  handler.NewReportHandler(reportSvc),
	}
	return Setup(h, &Deps{JWTManager: jwtManager, Cfg: cfg, Log: zap.NewNop()})
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	}
	return rec, env
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	rec, env := do(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)

	rec, env = do(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/items", "/api/v1/sale", "/api/v1/sales"} {
		rec, _ := do(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec, _ := do(t, router, http.MethodGet, "/api/v1/items", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaleFlow(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "amina", "s3cret")

	rec, env := do(t, router, http.MethodPost, "/api/v1/items", token, gin.H{
		"id": "A001", "name": "Widget", "quantity": 10, "price": 2.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)

	rec, env = do(t, router, http.MethodPost, "/api/v1/sale/lines", token, gin.H{
		"item_id": "A001", "quantity": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	rec, env = do(t, router, http.MethodPost, "/api/v1/sale/complete", token, gin.H{
		"discount": 10, "money_given": 10.00,
	})
	require.Equal(t, http.StatusOK, rec.Code, env.Message)

	var completed struct {
		Receipt struct {
			SubTotal float64 `json:"sub_total"`
			Total    float64 `json:"total"`
			Change   float64 `json:"change"`
		} `json:"receipt"`
		ReceiptText string `json:"receipt_text"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	assert.InDelta(t, 10.00, completed.Receipt.SubTotal, 1e-9)
	assert.InDelta(t, 9.00, completed.Receipt.Total, 1e-9)
	assert.InDelta(t, 1.00, completed.Receipt.Change, 1e-9)
	assert.Contains(t, completed.ReceiptText, "Widget x4 @ 2.50 = 10.00")

	// Stock was decremented and the cart cleared.
	rec, env = do(t, router, http.MethodGet, "/api/v1/items", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"quantity":6`)

	rec, env = do(t, router, http.MethodGet, "/api/v1/sale", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"lines":{}}`, string(env.Data))

	// The completed sale shows up in history and in a covering range report.
	rec, env = do(t, router, http.MethodGet, "/api/v1/sales", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"total":9`)

	today := time.Now().Format("2006-01-02")
	rec, env = do(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/reports/sales?start=%s&end=%s", today, today), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Found          bool    `json:"found"`
		TotalSales     float64 `json:"total_sales"`
		TotalItemsSold int     `json:"total_items_sold"`
		MostSoldItemID string  `json:"most_sold_item_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.Found)
	assert.InDelta(t, 9.00, report.TotalSales, 1e-9)
	assert.Equal(t, 4, report.TotalItemsSold)
	assert.Equal(t, "A001", report.MostSoldItemID)
}

func TestSaleFlowErrors(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "amina", "s3cret")

	rec, env := do(t, router, http.MethodPost, "/api/v1/items", token, gin.H{
		"id": "A001", "name": "Widget", "quantity": 2, "price": 2.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)

	t.Run("duplicate item id conflicts", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/items", token, gin.H{
			"id": "A001", "name": "Other", "quantity": 1, "price": 1.00,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "duplicate_id", env.Kind)
	})

	t.Run("oversold line conflicts", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/sale/lines", token, gin.H{
			"item_id": "A001", "quantity": 3,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "insufficient_stock", env.Kind)
	})

	t.Run("completing an empty sale is a bad request", func(t *testing.T) {
		rec, env := do(t, router, http.MethodPost, "/api/v1/sale/complete", token, gin.H{
			"discount": 0, "money_given": 100.00,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "empty_sale", env.Kind)
	})

	t.Run("bad report dates are rejected", func(t *testing.T) {
		rec, _ := do(t, router, http.MethodGet, "/api/v1/reports/sales?start=March&end=2024-03-02", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing receipt is not found", func(t *testing.T) {
		rec, env := do(t, router, http.MethodGet, "/api/v1/sale/receipt", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", env.Kind)
	})
}
