package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/skilltrack/internal/domain"
	"github.com/locvowork/skilltrack/internal/service"
)

// Handlers bundles every HTTP handler of the API.
type Handlers struct {
	Employees   *EmployeeHandler
	Modules     *RecordHandler[domain.TrainingModule]
	Assignments *RecordHandler[domain.EmployeeTrainingModule]
	Trainings   *RecordHandler[domain.TrainingRecord]
	OJT         *RecordHandler[domain.OnJobTraining]
	Dexterity   *RecordHandler[domain.DexterityAssessment]
	Performance *PerformanceHandler
	Admin       *AdminHandler
}

// NewHandlers wires handlers onto the services.
func NewHandlers(employees *EmployeeHandler, repos service.Repositories, admin *AdminHandler) *Handlers {
	return &Handlers{
		Employees: employees,
		Modules: NewRecordHandler(service.NewRecordService[domain.TrainingModule](service.ModuleCatalog{TrainingModuleRepository: repos.Modules}),
			"Training module", func(m *domain.TrainingModule) *int64 { return &m.ID }),
		Assignments: NewRecordHandler(service.NewRecordService[domain.EmployeeTrainingModule](repos.Assignments),
			"Employee training module", func(m *domain.EmployeeTrainingModule) *int64 { return &m.ID }).
			WithPrepare(func(m *domain.EmployeeTrainingModule) {
				if m.Status == "" {
					m.Status = domain.DefaultModuleStatus
				}
			}),
		Trainings: NewRecordHandler(service.NewRecordService[domain.TrainingRecord](repos.Trainings),
			"Training record", func(r *domain.TrainingRecord) *int64 { return &r.ID }),
		OJT: NewRecordHandler(service.NewRecordService[domain.OnJobTraining](repos.OJT),
			"OJT record", func(r *domain.OnJobTraining) *int64 { return &r.ID }),
		Dexterity: NewRecordHandler(service.NewRecordService[domain.DexterityAssessment](repos.Dexterity),
			"Dexterity assessment", func(d *domain.DexterityAssessment) *int64 { return &d.ID }),
		Performance: NewPerformanceHandler(service.NewPerformanceService(repos.Performance)),
		Admin:       admin,
	}
}

// Register mounts every route. Paths end with a slash; pair with a
// trailing-slash middleware so both spellings resolve.
func (hs *Handlers) Register(e *echo.Echo) {
	e.GET("/health/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	emp := e.Group("/employees")
	emp.GET("/", hs.Employees.ListHandler)
	emp.POST("/", hs.Employees.CreateHandler)
	emp.POST("/search/", hs.Employees.SearchHandler)
	emp.GET("/stats/", hs.Employees.StatsHandler)
	emp.GET("/export/", hs.Employees.ExportHandler)
	emp.GET("/:id/", hs.Employees.GetHandler)
	emp.GET("/:id/detail/", hs.Employees.DetailHandler)
	emp.PUT("/:id/", hs.Employees.UpdateHandler)
	emp.PATCH("/:id/", hs.Employees.PatchHandler)
	emp.POST("/:id/update_training_modules/", hs.Employees.UpdateTrainingModulesHandler)
	emp.POST("/:id/upload_photo/", hs.Employees.UploadPhotoHandler)
	e.GET("/employee_search/", hs.Employees.EmployeeSearchHandler)

	hs.Modules.Register(e.Group("/training-modules"))
	hs.Assignments.Register(e.Group("/employee-training-modules"))
	hs.Trainings.Register(e.Group("/training-records"))
	hs.OJT.Register(e.Group("/ojt-records"))
	hs.Dexterity.Register(e.Group("/dexterity-assessments"))
	hs.Performance.Register(e.Group("/performance-records"))

	e.GET("/catalog/", hs.Admin.CatalogHandler)
	admin := e.Group("/admin")
	admin.POST("/employees/import/", hs.Admin.ImportHandler)
	admin.GET("/employees/import-template/", hs.Admin.ImportTemplateHandler)
	admin.GET("/imports/", hs.Admin.ImportHistoryHandler)
}
