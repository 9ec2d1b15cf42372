package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/shopadmin/backend/internal/application/catalog"
	merchandisingapp "github.com/shopadmin/backend/internal/application/merchandising"
	"github.com/shopadmin/backend/internal/infrastructure/cache"
	"github.com/shopadmin/backend/internal/infrastructure/event"
	"github.com/shopadmin/backend/internal/infrastructure/persistence"
	"github.com/shopadmin/backend/internal/infrastructure/persistence/models"
	"github.com/shopadmin/backend/internal/interfaces/http/dto"
	"github.com/shopadmin/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// envelope mirrors dto.Response with the data left raw for typed decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type testServer struct {
	t        *testing.T
	engine   *gin.Engine
	tenantID uuid.UUID
}

// newTestServer wires real services over an in-memory sqlite database and
// mounts the handlers behind the request ID and tenant middleware
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(
		&models.CategoryModel{},
		&models.ManufacturerModel{},
		&models.HomepageDisplayModel{},
	))

	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	categoryRepo := persistence.NewGormCategoryRepository(db)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db)

	displayService := merchandisingapp.NewHomepageDisplayService(
		persistence.NewGormHomepageDisplayRepository(db),
		merchandisingapp.NewRepositoryEntityCatalog(categoryRepo, manufacturerRepo),
		store,
		bus,
		merchandisingapp.DefaultSettings(),
		log,
	)
	bus.Subscribe(merchandisingapp.NewCatalogEntityRemovedHandler(displayService, log))

	categories := NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, bus, log))
	manufacturers := NewManufacturerHandler(catalogapp.NewManufacturerService(manufacturerRepo, bus, log))
	homepage := NewHomepageDisplayHandler(displayService)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Tenant(middleware.DefaultTenantConfig()))

	api := engine.Group("/api/v1")
	cat := api.Group("/catalog/categories")
	cat.POST("", categories.Create)
	cat.GET("", categories.List)
	cat.GET("/:id", categories.GetByID)
	cat.PUT("/:id", categories.Update)
	cat.POST("/:id/activate", categories.Activate)
	cat.POST("/:id/deactivate", categories.Deactivate)
	cat.DELETE("/:id", categories.Delete)

	man := api.Group("/catalog/manufacturers")
	man.POST("", manufacturers.Create)
	man.GET("", manufacturers.List)
	man.GET("/:id", manufacturers.GetByID)
	man.PUT("/:id", manufacturers.Update)
	man.POST("/:id/deactivate", manufacturers.Deactivate)
	man.DELETE("/:id", manufacturers.Delete)

	hp := api.Group("/merchandising/homepage")
	hp.GET("/:kind", homepage.Get)
	hp.PUT("/:kind", homepage.Save)
	hp.GET("/:kind/candidates", homepage.Candidates)
	hp.POST("/:kind/assignments", homepage.Assign)

	return &testServer{t: t, engine: engine, tenantID: uuid.New()}
}

// do sends a request as the server's tenant. body is JSON encoded unless nil.
func (s *testServer) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, s.tenantID.String())
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func (s *testServer) createCategory(code, name string) catalogapp.CategoryResponse {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/catalog/categories", catalogapp.CreateCategoryRequest{Code: code, Name: name})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[catalogapp.CategoryResponse](s.t, env)
}

func (s *testServer) createManufacturer(code, name string) catalogapp.ManufacturerResponse {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/catalog/manufacturers", catalogapp.CreateManufacturerRequest{Code: code, Name: name})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[catalogapp.ManufacturerResponse](s.t, env)
}
