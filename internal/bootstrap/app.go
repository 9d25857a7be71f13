package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/skilltrack/internal/catalog"
	"github.com/locvowork/skilltrack/internal/config"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/handler"
	"github.com/locvowork/skilltrack/internal/logger"
	"github.com/locvowork/skilltrack/internal/repository"
	"github.com/locvowork/skilltrack/internal/service"
	"github.com/locvowork/skilltrack/internal/storage"
)

// Components are the wired dependencies shared by the API server and the admin CLI.
type Components struct {
	DB        *database.DB
	Catalog   *catalog.Catalog
	Repos     service.Repositories
	Elastic   *database.ElasticSearchClient
	Datastore *database.DatastoreClient

	Employees *service.EmployeeService
	Imports   *service.ImportService
	Reindex   *service.ReindexService
	Seeder    *database.DataSeeder
}

// Setup loads configuration, initialises logging, opens and migrates the
// database and builds the services. Optional integrations stay nil when unset.
func Setup(ctx context.Context) (*Components, error) {
	if err := config.LoadEnvConfig(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	db, err := database.NewDB(ctx, database.Config{
		Driver:          cfg.DB_DRIVER,
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		Path:            cfg.DB_PATH,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	comp := &Components{DB: db, Catalog: catalog.Default(), Repos: NewRepositories(db)}

	var indexer domain.EmployeeIndexer
	if cfg.ELASTIC_URL != "" {
		es, err := database.NewElasticSearchClient(cfg.ELASTIC_URL, cfg.ELASTIC_INDEX)
		if err != nil {
			logger.WarnLog(ctx, "search index disabled: %v", err)
		} else {
			comp.Elastic = es
			indexer = es
		}
	}

	var history domain.ImportHistory
	if cfg.DATASTORE_PROJECT_ID != "" {
		ds, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID)
		if err != nil {
			logger.WarnLog(ctx, "import history disabled: %v", err)
		} else {
			comp.Datastore = ds
			history = ds
		}
	}

	photos, err := storage.NewLocalStorage(cfg.MEDIA_ROOT, cfg.MEDIA_BASE_URL, cfg.PHOTO_MAX_BYTES)
	if err != nil {
		comp.Close()
		return nil, err
	}

	comp.Employees = service.NewEmployeeService(db, comp.Repos, comp.Catalog, photos, indexer).
		WithRecentAdditions(cfg.RECENT_WINDOW, cfg.RECENT_LIMIT)
	comp.Imports = service.NewImportService(comp.Repos.Employees, comp.Catalog, history, indexer)
	comp.Reindex = service.NewReindexService(comp.Repos.Employees, indexer)
	comp.Seeder = database.NewDataSeeder(db, database.SeedRepositories{
		Employees:   comp.Repos.Employees,
		Modules:     comp.Repos.Modules,
		Assignments: comp.Repos.Assignments,
		Trainings:   comp.Repos.Trainings,
		Dexterity:   comp.Repos.Dexterity,
		Performance: comp.Repos.Performance,
	}, comp.Catalog)
	return comp, nil
}

// NewRepositories builds every repository on db.
func NewRepositories(db *database.DB) service.Repositories {
	return service.Repositories{
		Employees:   repository.NewEmployeeRepository(db),
		Modules:     repository.NewTrainingModuleRepository(db),
		Assignments: repository.NewEmployeeTrainingModuleRepository(db),
		Trainings:   repository.NewTrainingRecordRepository(db),
		OJT:         repository.NewOJTRepository(db),
		Dexterity:   repository.NewDexterityRepository(db),
		Performance: repository.NewPerformanceRepository(db),
	}
}

func (comp *Components) Close() {
	if comp.Datastore != nil {
		_ = comp.Datastore.Close()
	}
	if comp.DB != nil {
		_ = comp.DB.Close()
	}
}

type App struct {
	Echo *echo.Echo
	comp *Components
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

func (a *App) Initialize(ctx context.Context) error {
	comp, err := Setup(ctx)
	if err != nil {
		return err
	}
	a.comp = comp

	a.Echo.Validator = handler.NewRequestValidator(comp.Catalog)
	empHandler := handler.NewEmployeeHandler(comp.Employees, config.DefaultEnvConfig.PHOTO_MAX_BYTES)
	adminHandler := handler.NewAdminHandler(comp.Imports, comp.Catalog)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(handler.NewHandlers(empHandler, comp.Repos, adminHandler))

	return nil
}

func (a *App) RegisterMiddlewares() {
	mediaURL := config.DefaultEnvConfig.MEDIA_BASE_URL
	a.Echo.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, mediaURL+"/")
		},
	}))
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(logger.EchoMiddleware())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.BodyLimit(fmt.Sprintf("%dK", config.DefaultEnvConfig.PHOTO_MAX_BYTES/1024+1024)))
}

func (a *App) RegisterRoutes(hs *handler.Handlers) {
	hs.Register(a.Echo)
	a.Echo.Static(config.DefaultEnvConfig.MEDIA_BASE_URL, config.DefaultEnvConfig.MEDIA_ROOT)
}

func (a *App) Run() error {
	defer a.comp.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
