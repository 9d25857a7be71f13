package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/locvowork/skilltrack/internal/apperrors"
	"github.com/locvowork/skilltrack/internal/database"
	"github.com/locvowork/skilltrack/internal/domain"
)

var dexterityColumns = []string{
	"id", "employee_id",
	"test_1s_2s", "test_1s_2s_ball", "memory_test", "mind_hand_coordination", "nerve_stability",
	"material_identification", "pick_place_sequence", "pick_right_material", "visual_inspection",
	"defect_identification", "written_test",
	"insert_loading_1", "insert_loading_2", "safety_test", "painting", "screw_assembly",
	"air_cleaner_assembly", "msa_test", "deflashing",
	"basic_skills_total", "advanced_skills_total", "overall_score",
	"created_at", "updated_at",
}

type dexterityRepository struct {
	db *database.DB
}

// NewDexterityRepository returns a repository that recomputes totals before every write.
func NewDexterityRepository(db *database.DB) domain.DexterityRepository {
	return &dexterityRepository{db: db}
}

// scoreArgs lists the sub-scores and totals in column order.
func scoreArgs(d *domain.DexterityAssessment) []interface{} {
	var args []interface{}
	for _, s := range d.BasicScores() {
		args = append(args, s)
	}
	for _, s := range d.AdvancedScores() {
		args = append(args, s)
	}
	return append(args, d.BasicSkillsTotal, d.AdvancedSkillsTotal, d.OverallScore)
}

func (r *dexterityRepository) Create(ctx context.Context, d *domain.DexterityAssessment) error {
	d.ComputeTotals()
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now

	vals := append([]interface{}{d.EmployeeID}, scoreArgs(d)...)
	vals = append(vals, d.CreatedAt, d.UpdatedAt)

	query, args := r.db.Builder().
		Insert("dexterity_assessment", dexterityColumns[1:]...).
		Values(vals...).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&d.ID); err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return nil
}

func (r *dexterityRepository) GetByID(ctx context.Context, id int64) (*domain.DexterityAssessment, error) {
	query, args := r.db.Builder().
		Select(dexterityColumns...).
		From("dexterity_assessment").
		Where("id = ?", id).
		Build()

	d, err := scanDexterity(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("dexterity assessment %d not found", id)
	}
	return d, err
}

func (r *dexterityRepository) Update(ctx context.Context, d *domain.DexterityAssessment) error {
	d.ComputeTotals()
	d.UpdatedAt = time.Now().UTC()

	b := r.db.Builder().Update("dexterity_assessment").Set("employee_id", d.EmployeeID)
	cols := dexterityColumns[2:24]
	for i, v := range scoreArgs(d) {
		b.Set(cols[i], v)
	}
	query, args := b.
		Set("updated_at", d.UpdatedAt).
		Where("id = ?", d.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapRecordWriteError(err, "", "")
	}
	return requireAffected(res, "dexterity assessment", d.ID)
}

func (r *dexterityRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "dexterity_assessment", "dexterity assessment", id)
}

func (r *dexterityRepository) List(ctx context.Context, f domain.RecordFilter) ([]domain.DexterityAssessment, error) {
	b := r.db.Builder().
		Select(dexterityColumns...).
		From("dexterity_assessment").
		OrderBy("created_at DESC", "id DESC")
	applyRecordFilter(b, f)

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.DexterityAssessment{}
	for rows.Next() {
		d, err := scanDexterity(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

func (r *dexterityRepository) Count(ctx context.Context, f domain.RecordFilter) (int, error) {
	return countRecords(ctx, r.db, "dexterity_assessment", f)
}

func scanDexterity(row scanner) (*domain.DexterityAssessment, error) {
	var d domain.DexterityAssessment
	err := row.Scan(&d.ID, &d.EmployeeID,
		&d.Test1S2S, &d.Test1S2SBall, &d.MemoryTest, &d.MindHandCoordination, &d.NerveStability,
		&d.MaterialIdentification, &d.PickPlaceSequence, &d.PickRightMaterial, &d.VisualInspection,
		&d.DefectIdentification, &d.WrittenTest,
		&d.InsertLoading1, &d.InsertLoading2, &d.SafetyTest, &d.Painting, &d.ScrewAssembly,
		&d.AirCleanerAssembly, &d.MSATest, &d.Deflashing,
		&d.BasicSkillsTotal, &d.AdvancedSkillsTotal, &d.OverallScore,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var performanceColumns = []string{
	"id", "employee_id", "day", "description", "su_status", "scope", "operation_name", "production",
	"weight", "quantity", "pro_n", "perf_n", "final_score", "supervisor_approved", "personnel_certified",
	"created_at", "updated_at",
}

type performanceRepository struct {
	db *database.DB
}

func NewPerformanceRepository(db *database.DB) domain.PerformanceRepository {
	return &performanceRepository{db: db}
}

// Create always stores a record that is neither approved nor certified.
func (r *performanceRepository) Create(ctx context.Context, p *domain.PerformanceRecord) error {
	p.SupervisorApproved, p.PersonnelCertified = false, false
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	query, args := r.db.Builder().
		Insert("performance_record", performanceColumns[1:]...).
		Values(p.EmployeeID, p.Day, p.Description, p.SUStatus, p.Scope, p.OperationName, p.Production,
			p.Weight, p.Quantity, p.ProN, p.PerfN, p.FinalScore, p.SupervisorApproved, p.PersonnelCertified,
			p.CreatedAt, p.UpdatedAt).
		Returning("id").
		Build()

	if err := r.db.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return mapPerformanceWriteError(err)
	}
	return nil
}

func (r *performanceRepository) GetByID(ctx context.Context, id int64) (*domain.PerformanceRecord, error) {
	query, args := r.db.Builder().
		Select(performanceColumns...).
		From("performance_record").
		Where("id = ?", id).
		Build()

	p, err := scanPerformance(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("performance record %d not found", id)
	}
	return p, err
}

// Update writes the editable fields. The approval flags are left untouched.
func (r *performanceRepository) Update(ctx context.Context, p *domain.PerformanceRecord) error {
	p.UpdatedAt = time.Now().UTC()

	query, args := r.db.Builder().
		Update("performance_record").
		Set("employee_id", p.EmployeeID).
		Set("day", p.Day).
		Set("description", p.Description).
		Set("su_status", p.SUStatus).
		Set("scope", p.Scope).
		Set("operation_name", p.OperationName).
		Set("production", p.Production).
		Set("weight", p.Weight).
		Set("quantity", p.Quantity).
		Set("pro_n", p.ProN).
		Set("perf_n", p.PerfN).
		Set("final_score", p.FinalScore).
		Set("updated_at", p.UpdatedAt).
		Where("id = ?", p.ID).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapPerformanceWriteError(err)
	}
	return requireAffected(res, "performance record", p.ID)
}

func (r *performanceRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "performance_record", "performance record", id)
}

func (r *performanceRepository) List(ctx context.Context, f domain.RecordFilter) ([]domain.PerformanceRecord, error) {
	b := r.db.Builder().
		Select(performanceColumns...).
		From("performance_record").
		OrderBy("day ASC", "id ASC")
	applyRecordFilter(b, f)

	query, args := b.Build()
	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PerformanceRecord{}
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *performanceRepository) Count(ctx context.Context, f domain.RecordFilter) (int, error) {
	return countRecords(ctx, r.db, "performance_record", f)
}

func (r *performanceRepository) ApproveSupervisor(ctx context.Context, id int64) error {
	return r.setFlag(ctx, id, "supervisor_approved")
}

func (r *performanceRepository) CertifyPersonnel(ctx context.Context, id int64) error {
	return r.setFlag(ctx, id, "personnel_certified")
}

func (r *performanceRepository) setFlag(ctx context.Context, id int64, column string) error {
	query, args := r.db.Builder().
		Update("performance_record").
		Set(column, true).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id).
		Build()

	res, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(res, "performance record", id)
}

func scanPerformance(row scanner) (*domain.PerformanceRecord, error) {
	var p domain.PerformanceRecord
	err := row.Scan(&p.ID, &p.EmployeeID, &p.Day, &p.Description, &p.SUStatus, &p.Scope, &p.OperationName,
		&p.Production, &p.Weight, &p.Quantity, &p.ProN, &p.PerfN, &p.FinalScore,
		&p.SupervisorApproved, &p.PersonnelCertified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func mapPerformanceWriteError(err error) error {
	return mapRecordWriteError(err, "non_field_errors", "The fields employee, day must make a unique set.")
}
