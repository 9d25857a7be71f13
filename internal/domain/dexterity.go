package domain

import "time"

// DexterityAssessment holds one practical skill test. The three totals are derived.
type DexterityAssessment struct {
	ID         int64 `json:"id"`
	EmployeeID int64 `json:"employee" validate:"required"`

	// basic skills
	Test1S2S               *int `json:"test_1s_2s" validate:"omitempty,min=0,max=5"`
	Test1S2SBall           *int `json:"test_1s_2s_ball" validate:"omitempty,min=0,max=5"`
	MemoryTest             *int `json:"memory_test" validate:"omitempty,min=0,max=5"`
	MindHandCoordination   *int `json:"mind_hand_coordination" validate:"omitempty,min=0,max=5"`
	NerveStability         *int `json:"nerve_stability" validate:"omitempty,min=0,max=5"`
	MaterialIdentification *int `json:"material_identification" validate:"omitempty,min=0,max=5"`
	PickPlaceSequence      *int `json:"pick_place_sequence" validate:"omitempty,min=0,max=10"`
	PickRightMaterial      *int `json:"pick_right_material" validate:"omitempty,min=0,max=5"`
	VisualInspection       *int `json:"visual_inspection" validate:"omitempty,min=0,max=5"`
	DefectIdentification   *int `json:"defect_identification" validate:"omitempty,min=0,max=15"`
	WrittenTest            *int `json:"written_test" validate:"omitempty,min=0,max=20"`

	// advanced skills
	InsertLoading1     *int `json:"insert_loading_1" validate:"omitempty,min=0,max=10"`
	InsertLoading2     *int `json:"insert_loading_2" validate:"omitempty,min=0,max=10"`
	SafetyTest         *int `json:"safety_test" validate:"omitempty,min=0,max=15"`
	Painting           *int `json:"painting" validate:"omitempty,min=0,max=15"`
	ScrewAssembly      *int `json:"screw_assembly" validate:"omitempty,min=0,max=10"`
	AirCleanerAssembly *int `json:"air_cleaner_assembly" validate:"omitempty,min=0,max=10"`
	MSATest            *int `json:"msa_test" validate:"omitempty,min=0,max=15"`
	Deflashing         *int `json:"deflashing" validate:"omitempty,min=0,max=15"`

	BasicSkillsTotal    int `json:"basic_skills_total"`
	AdvancedSkillsTotal int `json:"advanced_skills_total"`
	OverallScore        int `json:"overall_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BasicScores returns the basic sub-scores in sheet order.
func (d *DexterityAssessment) BasicScores() []*int {
	return []*int{
		d.Test1S2S, d.Test1S2SBall, d.MemoryTest, d.MindHandCoordination,
		d.NerveStability, d.MaterialIdentification, d.PickPlaceSequence,
		d.PickRightMaterial, d.VisualInspection, d.DefectIdentification, d.WrittenTest,
	}
}

// AdvancedScores returns the advanced sub-scores in sheet order.
func (d *DexterityAssessment) AdvancedScores() []*int {
	return []*int{
		d.InsertLoading1, d.InsertLoading2, d.SafetyTest, d.Painting,
		d.ScrewAssembly, d.AirCleanerAssembly, d.MSATest, d.Deflashing,
	}
}

// ComputeTotals recomputes the derived totals, treating missing sub-scores as 0.
// Caller supplied totals are always overwritten. Range limits are not checked here.
func (d *DexterityAssessment) ComputeTotals() {
	d.BasicSkillsTotal = sumScores(d.BasicScores())
	d.AdvancedSkillsTotal = sumScores(d.AdvancedScores())
	d.OverallScore = d.BasicSkillsTotal + d.AdvancedSkillsTotal
}

func sumScores(scores []*int) int {
	total := 0
	for _, s := range scores {
		if s != nil {
			total += *s
		}
	}
	return total
}
