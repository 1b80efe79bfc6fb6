//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"promoter-service/internal/events"
	"promoter-service/internal/handlers"
	"promoter-service/internal/models"
	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

const (
	leadUser     = "admin"
	leadPassword = "admin"
)

// storeSuite runs the same scenarios against a networked collection store
type storeSuite struct {
	suite.Suite
	store  repository.CollectionStore
	repo   *repository.Repository
	router *gin.Engine
	reset  func()
}

// SetupTest clears stored collections and rebuilds the router
func (s *storeSuite) SetupTest() {
	s.reset()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.repo = repository.NewRepository(s.store)
	publisher := events.NewPublisher(logger)
	promoters := services.NewPromoterService(s.repo, "admin")
	sales := services.NewSalesService(s.repo, publisher)
	backup := services.NewBackupService(s.repo, publisher)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	err := handlers.RegisterRoutes(s.router, &handlers.Router{
		Promoters:  handlers.NewPromoterHandler(promoters, sales, services.NewFeedbackService(s.repo, publisher)),
		Verifier:   handlers.NewVerifierHandler(sales),
		Complaints: handlers.NewComplaintHandler(services.NewComplaintService(s.repo, publisher)),
		Lead: handlers.NewLeadHandler(s.repo, promoters, services.NewFloorService(s.repo), sales,
			services.NewSettingsService(s.repo), services.NewDashboardView(time.UTC), publisher),
		Reports:      handlers.NewReportHandler(s.repo, backup, time.UTC),
		PromoterAuth: promoters,
		LeadAccounts: gin.Accounts{leadUser: leadPassword},
		CSAccounts:   gin.Accounts{"user": "password"},
		AuthRate:     "1000-M",
	})
	s.Require().NoError(err)
}

func (s *storeSuite) makeRequest(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(leadUser, leadPassword)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *storeSuite) TestMissingKeyReadsAsAbsent() {
	_, found, err := s.store.Read(context.Background(), "pp_missing_"+uuid.New().String()[:8])
	s.Require().NoError(err)
	s.False(found)
}

func (s *storeSuite) TestDefaultsAreSeededOnce() {
	ctx := context.Background()

	promoters, err := s.repo.ListPromoters(ctx)
	s.Require().NoError(err)
	s.Len(promoters, 2)

	_, found, err := s.store.Read(ctx, repository.KeyPromoters)
	s.Require().NoError(err)
	s.True(found)

	ok, err := s.repo.DeletePromoter(ctx, "p1")
	s.Require().NoError(err)
	s.True(ok)

	promoters, err = s.repo.ListPromoters(ctx)
	s.Require().NoError(err)
	s.Len(promoters, 1)
}

func (s *storeSuite) TestSaleWorkflowPersists() {
	ctx := context.Background()

	body, _ := json.Marshal(map[string]string{"password": "1234", "confirmPassword": "1234"})
	w := s.makeRequest(http.MethodPost, "/api/v1/promoters/p1/password", body, nil)
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	body, _ = json.Marshal(map[string]interface{}{
		"customer": map[string]interface{}{"name": "Jane", "mobile": "0771234567", "email": "jane@example.com"},
		"items":    map[string]int{"Extreme": 1},
	})
	w = s.makeRequest(http.MethodPost, "/api/v1/promoters/p1/sales", body, map[string]string{"X-Promoter-Password": "1234"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var sale models.SaleRecord
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sale))

	body, _ = json.Marshal(map[string]string{"status": models.SaleStatusVerified})
	w = s.makeRequest(http.MethodPost, "/api/v1/verifier/sales/"+sale.ID+"/status", body, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	stored, err := s.repo.GetSale(ctx, sale.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(models.SaleStatusVerified, stored.Status)
}

func (s *storeSuite) TestBackupRestoreRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.repo.AddFloor(ctx, models.Floor{ID: "f9", Name: "Rooftop"}))

	w := s.makeRequest(http.MethodGet, "/api/v1/lead/backup", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	backup := w.Body.Bytes()

	s.reset()

	w = s.makeRequest(http.MethodPost, "/api/v1/lead/restore", backup, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest(http.MethodGet, "/api/v1/lead/backup", nil, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(string(backup), w.Body.String())

	floors, err := s.repo.ListFloors(ctx)
	s.Require().NoError(err)
	s.Len(floors, 4)
}

// ===========================================
// Postgres
// ===========================================

type PostgresStoreSuite struct {
	storeSuite
	db *gorm.DB
}

// SetupSuite runs once before all tests
func (s *PostgresStoreSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=promoter_service_test port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		s.T().Skipf("Postgres unavailable: %v", err)
	}
	s.db = db

	store := repository.NewGormStore(db)
	if err := store.AutoMigrate(); err != nil {
		s.T().Fatalf("Failed to run migrations: %v", err)
	}

	s.store = store
	s.reset = func() {
		s.db.Exec("DELETE FROM stored_collections")
	}
}

// TearDownSuite cleans up test data
func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Exec("DELETE FROM stored_collections")
	}
}

// ===========================================
// Redis
// ===========================================

type RedisStoreSuite struct {
	storeSuite
	client *redis.Client
	prefix string
}

// SetupSuite runs once before all tests
func (s *RedisStoreSuite) SetupSuite() {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	opts, err := redis.ParseURL(url)
	s.Require().NoError(err)

	s.client = redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.T().Skipf("Redis unavailable: %v", err)
	}

	s.prefix = "promoter-test-" + uuid.New().String()[:8] + ":"
	s.store = repository.NewRedisStore(s.client, s.prefix)
	s.reset = func() {
		ctx := context.Background()
		for _, key := range repository.CollectionKeys {
			s.client.Del(ctx, s.prefix+key)
		}
	}
}

// TearDownSuite cleans up test data
func (s *RedisStoreSuite) TearDownSuite() {
	if s.client != nil {
		s.reset()
		_ = s.client.Close()
	}
}

// Run the test suites
func TestPostgresStoreSuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func TestRedisStoreSuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run")
	}
	suite.Run(t, new(RedisStoreSuite))
}
