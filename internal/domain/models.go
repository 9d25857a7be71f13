package domain

import "time"

// Default enumeration values applied when a value is absent.
const (
	DefaultSkillLevel   = "sl0"
	DefaultSLStatus     = "pending"
	DefaultModuleStatus = "pending"

	ModuleStatusAccepted = "accepted"
)

// Employee is the aggregate root. Every other record except TrainingModule belongs to one employee.
type Employee struct {
	ID                 int64    `json:"id"`
	EmpNo              string   `json:"emp_no" validate:"required,max=20"`
	Name               string   `json:"name" validate:"required,max=100"`
	Gender             string   `json:"gender" validate:"omitempty,choice=gender"`
	DOB                *Date    `json:"dob"`
	Age                *int     `json:"age" validate:"omitempty,min=0,max=120"`
	DOJ                *Date    `json:"doj"`
	DOL                *Date    `json:"dol"`
	Photo              *string  `json:"photo"`
	Plant              string   `json:"plant" validate:"omitempty,choice=plant"`
	AreaOfWork         string   `json:"area_of_work" validate:"omitempty,choice=area_of_work"`
	Category           string   `json:"category" validate:"omitempty,choice=category"`
	BatchNo            *string  `json:"batch_no" validate:"omitempty,max=50"`
	TrainingDays       int      `json:"training_days" validate:"min=0"`
	SL1Marks           *int     `json:"sl1_marks" validate:"omitempty,min=0"`
	SL2Marks           *int     `json:"sl2_marks" validate:"omitempty,min=0"`
	SL2OJT             *string  `json:"sl2_ojt" validate:"omitempty,max=100"`
	AfterOJTAreaOfWork *string  `json:"after_ojt_area_of_work" validate:"omitempty,max=100"`
	OverallPercent     *float64 `json:"overall_percent" validate:"omitempty,min=0,max=100"`
	SkillLevel         string   `json:"skill_level" validate:"omitempty,choice=skill_level"`
	Remarks            *string  `json:"remarks"`
	SL1Status          string   `json:"sl1_status" validate:"omitempty,choice=sl_status"`
	SL2Status          string   `json:"sl2_status" validate:"omitempty,choice=sl_status"`
	SL3Status          string   `json:"sl3_status" validate:"omitempty,choice=sl_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyDefaults fills enumerations that have a declared default.
func (e *Employee) ApplyDefaults() {
	if e.SkillLevel == "" {
		e.SkillLevel = DefaultSkillLevel
	}
	for _, s := range []*string{&e.SL1Status, &e.SL2Status, &e.SL3Status} {
		if *s == "" {
			*s = DefaultSLStatus
		}
	}
}

// EmployeeSummary is the list projection of an employee.
type EmployeeSummary struct {
	ID             int64     `json:"id"`
	EmpNo          string    `json:"emp_no"`
	Name           string    `json:"name"`
	Gender         string    `json:"gender"`
	Age            *int      `json:"age"`
	Plant          string    `json:"plant"`
	AreaOfWork     string    `json:"area_of_work"`
	Category       string    `json:"category"`
	SkillLevel     string    `json:"skill_level"`
	OverallPercent *float64  `json:"overall_percent"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summary projects e for list responses.
func (e *Employee) Summary() EmployeeSummary {
	return EmployeeSummary{
		ID:             e.ID,
		EmpNo:          e.EmpNo,
		Name:           e.Name,
		Gender:         e.Gender,
		Age:            e.Age,
		Plant:          e.Plant,
		AreaOfWork:     e.AreaOfWork,
		Category:       e.Category,
		SkillLevel:     e.SkillLevel,
		OverallPercent: e.OverallPercent,
		CreatedAt:      e.CreatedAt,
	}
}

// TrainingModule is a shared catalog entry, ordered by SNo.
type TrainingModule struct {
	ID     int64  `json:"id"`
	SNo    int    `json:"s_no" validate:"required,min=1"`
	Title  string `json:"title" validate:"required,max=200"`
	Expert string `json:"expert" validate:"max=200"`
}

// EmployeeTrainingModule records an employee's status for one catalog module.
type EmployeeTrainingModule struct {
	ID            int64  `json:"id"`
	EmployeeID    int64  `json:"employee" validate:"required"`
	ModuleID      int64  `json:"module_id" validate:"required"`
	Status        string `json:"status" validate:"omitempty,choice=module_status"`
	CompletedDate *Date  `json:"completed_date"`
}

// ModuleStatusView is one line of the derived per-employee module list.
// ID is nil when no stored row exists for the module.
type ModuleStatusView struct {
	ID            *int64         `json:"id"`
	Module        TrainingModule `json:"module"`
	Status        string         `json:"status"`
	CompletedDate *Date          `json:"completed_date"`
}

// ModuleStatusUpdate is one entry of a bulk training-module status update.
type ModuleStatusUpdate struct {
	ModuleID      int64
	Status        string
	CompletedDate *Date
}

type TrainingRecord struct {
	ID              int64  `json:"id"`
	EmployeeID      int64  `json:"employee" validate:"required"`
	Date            Date   `json:"date"`
	TrainingProgram string `json:"training_program" validate:"required,max=200"`
	Duration        string `json:"duration" validate:"required,max=50"`
}

type OnJobTraining struct {
	ID                  int64  `json:"id"`
	EmployeeID          int64  `json:"employee" validate:"required"`
	ProductProcess      string `json:"product_process"`
	MachineOperations   string `json:"machine_operations"`
	QualityCheckPoints  string `json:"quality_check_points"`
	SecondaryOperations string `json:"secondary_operations"`
	Handling            string `json:"handling"`
	PackingLabeling     string `json:"packing_labeling"`
	Others              string `json:"others"`
}

// PerformanceRecord is one day of an employee's performance sheet. The two
// approval flags only change through their dedicated operations.
type PerformanceRecord struct {
	ID                 int64    `json:"id"`
	EmployeeID         int64    `json:"employee" validate:"required"`
	Day                int      `json:"day" validate:"required,min=1,max=31"`
	Description        string   `json:"description"`
	SUStatus           string   `json:"su_status"`
	Scope              string   `json:"scope"`
	OperationName      string   `json:"operation_name"`
	Production         string   `json:"production"`
	Weight             string   `json:"weight"`
	Quantity           string   `json:"quantity"`
	ProN               string   `json:"pro_n"`
	PerfN              string   `json:"perf_n"`
	FinalScore         *float64 `json:"final_score"`
	SupervisorApproved bool     `json:"supervisor_approved"`
	PersonnelCertified bool     `json:"personnel_certified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployeeDetail is the employee with every owned record and the derived module list.
type EmployeeDetail struct {
	Employee
	TrainingModules      []ModuleStatusView    `json:"training_modules"`
	TrainingRecords      []TrainingRecord      `json:"training_records"`
	OJTRecords           []OnJobTraining       `json:"ojt_records"`
	DexterityAssessments []DexterityAssessment `json:"dexterity_assessments"`
	PerformanceRecords   []PerformanceRecord   `json:"performance_records"`
}

// EmployeeStats is the aggregate statistics view.
type EmployeeStats struct {
	TotalEmployees        int               `json:"total_employees"`
	EmployeesByAreaOfWork map[string]int    `json:"employees_by_area_of_work"`
	EmployeesBySkillLevel map[string]int    `json:"employees_by_skill_level"`
	EmployeesByPlant      map[string]int    `json:"employees_by_plant"`
	RecentAdditions       []EmployeeSummary `json:"recent_additions"`
}

// ImportReport summarizes one spreadsheet import run.
type ImportReport struct {
	RunID      string    `json:"run_id" datastore:"RunID"`
	FileName   string    `json:"file_name" datastore:"FileName"`
	Processed  int       `json:"processed" datastore:"Processed"`
	WarnedRows int       `json:"warned_rows" datastore:"WarnedRows"`
	Created    int       `json:"created" datastore:"Created"`
	Updated    int       `json:"updated" datastore:"Updated"`
	Skipped    int       `json:"skipped" datastore:"Skipped"`
	Warnings   []string  `json:"warnings" datastore:"Warnings,noindex"`
	StartedAt  time.Time `json:"started_at" datastore:"StartedAt"`
	FinishedAt time.Time `json:"finished_at" datastore:"FinishedAt"`
}
