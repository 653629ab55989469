package catalog

// VisualVariant selects the decorative dashboard template of a product page.
type VisualVariant string

const (
	VariantShortageAssistant VisualVariant = "shortage_assistant"
	VariantAIPlanner         VisualVariant = "ai_planner"
	VariantHirelyAI          VisualVariant = "hirely_ai"
	VariantRecruitFlow       VisualVariant = "recruit_flow"
	VariantInterviewIQ       VisualVariant = "interview_iq"
	VariantOnboardPro        VisualVariant = "onboard_pro"
	VariantPeopleHub         VisualVariant = "people_hub"
	VariantPerformEdge       VisualVariant = "perform_edge"
	VariantSkillForge        VisualVariant = "skill_forge"
	VariantCareerPath        VisualVariant = "career_path"
	VariantPayCore           VisualVariant = "pay_core"
	VariantTimeTrack         VisualVariant = "time_track"
	VariantComplianceGuard   VisualVariant = "compliance_guard"
	VariantPeopleIntel       VisualVariant = "people_intel"
)

var variants = map[VisualVariant]struct{}{
	VariantShortageAssistant: {},
	VariantAIPlanner:         {},
	VariantHirelyAI:          {},
	VariantRecruitFlow:       {},
	VariantInterviewIQ:       {},
	VariantOnboardPro:        {},
	VariantPeopleHub:         {},
	VariantPerformEdge:       {},
	VariantSkillForge:        {},
	VariantCareerPath:        {},
	VariantPayCore:           {},
	VariantTimeTrack:         {},
	VariantComplianceGuard:   {},
	VariantPeopleIntel:       {},
}

// Valid reports whether v belongs to the closed variant set.
func (v VisualVariant) Valid() bool {
	_, ok := variants[v]
	return ok
}

func (v VisualVariant) String() string { return string(v) }
