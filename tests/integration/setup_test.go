package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"meubolso/internal/auth"
	"meubolso/internal/handlers"
	"meubolso/internal/logger"
	"meubolso/internal/middleware"
	"meubolso/internal/models"
	"meubolso/internal/services"
	"meubolso/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.FixedBill{},
		&models.Installment{},
		&models.DailyEntry{},
		&models.FinancialSummary{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	hasher := &auth.BcryptHasher{Cost: bcrypt.MinCost}
	userService := services.NewUserService(db, hasher)
	billService := services.NewFixedBillService(db)
	installmentService := services.NewInstallmentService(db)
	entryService := services.NewDailyEntryService(db)
	ledgerService := services.NewLedgerService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	billHandler := handlers.NewFixedBillHandler(billService)
	installmentHandler := handlers.NewInstallmentHandler(installmentService)
	entryHandler := handlers.NewDailyEntryHandler(entryService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	authRoutes := router.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/info", authHandler.GetInfo)
	authRoutes.PUT("/alterar", authHandler.UpdateUser)
	authRoutes.DELETE("/deletar/:user_id", authHandler.DeleteUser)

	dashboard := router.Group("/dashboard")
	dashboard.GET("/salariomensal", ledgerHandler.GetSalary)
	dashboard.GET("/somacontasfixas", ledgerHandler.GetFixedBillsSum)

	bills := router.Group("/contas-fixas")
	bills.POST("/create", billHandler.Create)
	bills.GET("/minhascontas", billHandler.List)
	bills.PUT("/alterar/:id", billHandler.Update)
	bills.DELETE("/deletar/:id", billHandler.Delete)

	installments := router.Group("/parcelamentos")
	installments.POST("/adicionar", installmentHandler.Create)
	installments.GET("/meusparcelamentos", installmentHandler.List)
	installments.PUT("/alterar/:id", installmentHandler.Update)
	installments.DELETE("/deletar/:id", installmentHandler.Delete)

	entries := router.Group("/registro")
	entries.POST("/adicionar", entryHandler.Create)
	entries.GET("/mostrar/:user_id", entryHandler.List)
	entries.PUT("/alterar/:id", entryHandler.Update)
	entries.DELETE("/deletar/:id", entryHandler.Delete)
	entries.GET("/total-gasto-mes/:user_id/:mes/:ano", ledgerHandler.GetMonthTotal)
	entries.GET("/total-gasto-categoria/:user_id/:mes/:ano", ledgerHandler.GetCategoryTotals)
	entries.GET("/percentual-gasto-categoria/:user_id/:mes/:ano", ledgerHandler.GetCategoryPercentages)

	summaries := router.Group("/fatura")
	summaries.POST("/fechar", ledgerHandler.CloseMonth)
	summaries.GET("/consultar/:user_id/:ano/:mes", ledgerHandler.GetSummary)
	summaries.GET("/historico/:user_id", ledgerHandler.GetHistory)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user with a 5000.00 salary and returns the ID.
func (app *testApp) registerUser(t *testing.T, email string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"nome":"Test User","email":%q,"senha_hash":"password123","salario_mensal":5000.00}`, email)
	rec := app.request("POST", "/auth/register", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["usuario"].(map[string]interface{})
	return user["id"].(float64)
}
