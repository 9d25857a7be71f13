package domain

import "context"

// EmployeeFilter defines criteria for listing employees.
// Exact fields match whole values, *Like fields are case-insensitive fragments;
// every non-empty criterion is AND-ed.
type EmployeeFilter struct {
	EmpNo      string
	AreaOfWork string
	Plant      string
	Category   string
	SkillLevel string
	Gender     string

	EmpNoLike      string
	NameLike       string
	AreaOfWorkLike string
	PlantLike      string

	// Search matches a fragment of emp_no, name or batch_no.
	Search string

	// Ordering is a whitelisted key, optionally prefixed with "-".
	Ordering string
	Limit    int
	Offset   int
}

// RecordFilter selects records owned by employees.
type RecordFilter struct {
	EmployeeID int64
	ModuleID   int64
	Status     string
	Limit      int
	Offset     int
}

// TxManager runs fn inside one transaction carried by the context.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByEmpNo(ctx context.Context, empNo string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdatePhoto(ctx context.Context, id int64, photo string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	Count(ctx context.Context, filter EmployeeFilter) (int, error)
	// Each streams every employee, newest first.
	Each(ctx context.Context, fn func(e *Employee) error) error
}

type TrainingModuleRepository interface {
	Create(ctx context.Context, m *TrainingModule) error
	GetByID(ctx context.Context, id int64) (*TrainingModule, error)
	Update(ctx context.Context, m *TrainingModule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]TrainingModule, error)
	// UpsertBySNo creates the module or refreshes the one with the same serial number.
	UpsertBySNo(ctx context.Context, m *TrainingModule) (created bool, err error)
}

type EmployeeTrainingModuleRepository interface {
	Create(ctx context.Context, m *EmployeeTrainingModule) error
	GetByID(ctx context.Context, id int64) (*EmployeeTrainingModule, error)
	Find(ctx context.Context, employeeID, moduleID int64) (*EmployeeTrainingModule, error)
	Update(ctx context.Context, m *EmployeeTrainingModule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]EmployeeTrainingModule, error)
	Count(ctx context.Context, filter RecordFilter) (int, error)
	// StatusView lists every catalog module with the employee's stored status, defaulting to pending.
	StatusView(ctx context.Context, employeeID int64) ([]ModuleStatusView, error)
}

type TrainingRecordRepository interface {
	Create(ctx context.Context, r *TrainingRecord) error
	GetByID(ctx context.Context, id int64) (*TrainingRecord, error)
	Update(ctx context.Context, r *TrainingRecord) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]TrainingRecord, error)
	Count(ctx context.Context, filter RecordFilter) (int, error)
}

type OJTRepository interface {
	Create(ctx context.Context, r *OnJobTraining) error
	GetByID(ctx context.Context, id int64) (*OnJobTraining, error)
	Update(ctx context.Context, r *OnJobTraining) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]OnJobTraining, error)
	Count(ctx context.Context, filter RecordFilter) (int, error)
}

// DexterityRepository recomputes the derived totals on every write.
type DexterityRepository interface {
	Create(ctx context.Context, d *DexterityAssessment) error
	GetByID(ctx context.Context, id int64) (*DexterityAssessment, error)
	Update(ctx context.Context, d *DexterityAssessment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]DexterityAssessment, error)
	Count(ctx context.Context, filter RecordFilter) (int, error)
}

// PerformanceRepository never changes the approval flags through Update.
type PerformanceRepository interface {
	Create(ctx context.Context, r *PerformanceRecord) error
	GetByID(ctx context.Context, id int64) (*PerformanceRecord, error)
	Update(ctx context.Context, r *PerformanceRecord) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter RecordFilter) ([]PerformanceRecord, error)
	Count(ctx context.Context, filter RecordFilter) (int, error)
	ApproveSupervisor(ctx context.Context, id int64) error
	CertifyPersonnel(ctx context.Context, id int64) error
}

// ImportHistory keeps import run reports outside the relational store.
type ImportHistory interface {
	SaveImportReport(ctx context.Context, r *ImportReport) error
	ListImportReports(ctx context.Context, limit int) ([]ImportReport, error)
}

// EmployeeIndexer mirrors employees into a search index.
type EmployeeIndexer interface {
	IndexEmployee(ctx context.Context, e *Employee) error
	BulkIndexEmployees(ctx context.Context, employees []Employee) error
}
