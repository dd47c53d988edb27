package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"iqr-control-backend/config"
	"iqr-control-backend/models"
	"iqr-control-backend/services"
	"iqr-control-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = 4

	db, err := gorm.Open(sqlite.Open("file::memory:"), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	storage, err := services.NewLocalReceiptStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1, CookieName: "token"},
		HTTP: config.HTTPConfig{
			CORSAllowOrigins: []string{"http://localhost:5173"},
		},
		Upload:    config.UploadConfig{Driver: "local", MaxSize: 1 << 20},
		Scheduler: config.SchedulerConfig{ReminderDays: 7},
	}

	handlers := NewHandlers(Dependencies{Config: cfg, DB: db, Storage: storage, Logger: zap.NewNop()})
	router := SetupRouter(cfg, handlers, zap.NewNop())

	_, err = services.NewUserService(db, zap.NewNop()).Create(context.Background(),
		services.UserInput{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	s := &testServer{router: router, db: db}
	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)
	s.token = login.Token
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestUnauthenticatedRequestsGet401(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	for _, path := range []string{"/api/customers", "/api/income", "/api/dashboard/stats", "/api/auth/user"} {
		w := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, utils.MsgLoginFailed, decode[map[string]string](t, w)["message"])
}

func TestCurrentUserHidesPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/auth/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[map[string]any](t, w)
	assert.Equal(t, "admin", user["username"])
	assert.NotContains(t, user, "password")
}

func TestDownPaymentFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/income", map[string]any{
		"type":          "prints",
		"printType":     "كروت",
		"amount":        "25000",
		"totalAmount":   "100000",
		"isDownPayment": true,
		"customerId":    "",
		"description":   "كروت شخصية",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/receivables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	receivables := decode[[]models.Receivable](t, w)
	require.Len(t, receivables, 1)
	assert.Equal(t, "75000", receivables[0].RemainingAmount.String())
	assert.Equal(t, utils.UnknownCustomerName, receivables[0].CustomerName)

	w = s.do(t, http.MethodPatch, "/api/receivables/"+receivables[0].ID.String()+"/pay", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode[models.Receivable](t, w)
	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidAt)

	w = s.do(t, http.MethodPatch, "/api/receivables/"+receivables[0].ID.String()+"/pay", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgReceivableAlreadyPaid, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/income", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.IncomeEntry](t, w), 2)
}

func TestCreateIncome_DownPaymentNeedsTotal(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/income", map[string]any{
		"type":          "prints",
		"amount":        25000,
		"isDownPayment": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgTotalAmountRequired, decode[map[string]string](t, w)["message"])
}

func TestPayUnknownReceivable(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPatch, "/api/receivables/2b1f5c8e-5f6a-4d47-9a34-5b1e0c0f4a11/pay", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, utils.MsgReceivableNotFound, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPatch, "/api/receivables/not-a-uuid/pay", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerRenewAndExpiring(t *testing.T) {
	s := newTestServer(t)
	expiry := time.Now().UTC().AddDate(0, 0, 3).Format(utils.DateLayout)

	w := s.do(t, http.MethodPost, "/api/customers", map[string]any{
		"name":       "مكتبة النور",
		"phone":      "07701234567",
		"expiryDate": expiry,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := decode[models.Customer](t, w)

	w = s.do(t, http.MethodGet, "/api/customers/expiring/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Customer](t, w), 1)

	w = s.do(t, http.MethodPatch, "/api/customers/"+customer.ID.String()+"/renew", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	renewed := decode[models.Customer](t, w)
	assert.True(t, renewed.ExpiryDate.Equal(customer.ExpiryDate.AddDate(1, 0, 0)))
	assert.True(t, renewed.IsActive)

	w = s.do(t, http.MethodGet, "/api/customers/expiring/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/customers", map[string]any{"name": "بدون تاريخ"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgCustomerInvalid, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodDelete, "/api/customers/2b1f5c8e-5f6a-4d47-9a34-5b1e0c0f4a11", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardAndActivities(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/income", map[string]any{"type": "subscription", "amount": "90000"}).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/expenses", map[string]any{"reason": "ورق", "amount": "15000"}).Code)

	w := s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[services.DashboardStats](t, w)
	assert.Equal(t, "75000", stats.NetProfit.String())

	w = s.do(t, http.MethodGet, "/api/dashboard/stats?startDate=oops", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/activities?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	activities := decode[[]models.Activity](t, w)
	require.Len(t, activities, 3)
	assert.Equal(t, models.ActivityExpenseAdded, activities[0].Type)
}

func TestGenerateReport(t *testing.T) {
	s := newTestServer(t)
	today := time.Now().UTC().Format(utils.DateLayout)

	w := s.do(t, http.MethodPost, "/api/reports/generate", map[string]any{
		"startDate":  today,
		"endDate":    today,
		"reportType": "financial",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Equal(t, utils.MsgReportGenerated, body["message"])
	assert.Equal(t, true, body["success"])

	w = s.do(t, http.MethodPost, "/api/reports/generate", map[string]any{"reportType": "yearly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/users", map[string]any{"username": "admin", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgUsernameTaken, decode[map[string]string](t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/users", map[string]any{"username": "staff", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestExpenseWithReceiptUpload(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("reason", "فاتورة كهرباء"))
	require.NoError(t, writer.WriteField("amount", "42000"))
	require.NoError(t, writer.WriteField("notes", ""))
	part, err := writer.CreateFormFile("receipt", "bill.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	expense := decode[models.ExpenseEntry](t, w)
	require.NotNil(t, expense.ReceiptURL)
	assert.Contains(t, *expense.ReceiptURL, "/uploads/")

	w = s.do(t, http.MethodGet, *expense.ReceiptURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = s.do(t, http.MethodGet, "/uploads/missing.pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadRejectsText(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("receipt", "notes.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text, not an image"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgUploadInvalidType, decode[map[string]string](t, w)["message"])
}

func TestRunReminders(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/customers", map[string]any{
		"name":       "مطبعة الرافدين",
		"phone":      "+9647701234567",
		"expiryDate": time.Now().UTC().AddDate(0, 0, 3).Format(utils.DateLayout),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/reminders/run", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[services.SweepResult](t, w)
	assert.Equal(t, 1, result.Reminded)
	assert.Zero(t, result.Failed)
}

func TestCreateInactiveCustomer(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/customers", map[string]any{
		"name":       "مكتب معلق",
		"expiryDate": "2030-01-01",
		"isActive":   false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Customer](t, w)
	assert.False(t, created.IsActive)

	var stored models.Customer
	require.NoError(t, s.db.First(&stored, "id = ?", created.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestExpenseRejectsOversizedBody(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("reason", "ملف ضخم"))
	require.NoError(t, writer.WriteField("amount", "1000"))
	part, err := writer.CreateFormFile("receipt", "huge.pdf")
	require.NoError(t, err)
	_, err = part.Write(append([]byte("%PDF-1.4\n"), make([]byte, 3<<20)...))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.MsgUploadTooLarge, decode[map[string]string](t, w)["message"])
	assert.Zero(t, countExpenses(t, s.db))
}

func countExpenses(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ExpenseEntry{}).Count(&n).Error)
	return n
}
