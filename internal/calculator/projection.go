package calculator

import "github.com/julianstephens/smokefree/internal/models"

// Projection compares the baseline consumption with what was actually smoked.
type Projection struct {
	CigarettesPerHour  float64
	ExpectedCigarettes float64
	CigarettesSmoked   int
	// CigarettesAvoided is negative when the user smoked more than the baseline.
	CigarettesAvoided float64
	CostPerCigarette  float64
	MoneySaved        float64
	// GrossMoneySaved ignores relapses: the cost of every expected cigarette.
	GrossMoneySaved float64
	ElapsedHours    float64
}

// Project computes the projection for the elapsed time. The baseline must have
// positive CigarettesPerPack; callers validate at onboarding.
func Project(baseline models.Baseline, elapsed ElapsedTime, smoked int) Projection {
	perHour := baseline.CigarettesPerDay / 24
	hours := elapsed.ElapsedHours()
	expected := perHour * hours
	avoided := expected - float64(smoked)
	costPerCigarette := baseline.CostPerPack / float64(baseline.CigarettesPerPack)

	return Projection{
		CigarettesPerHour:  perHour,
		ExpectedCigarettes: expected,
		CigarettesSmoked:   smoked,
		CigarettesAvoided:  avoided,
		CostPerCigarette:   costPerCigarette,
		MoneySaved:         avoided * costPerCigarette,
		GrossMoneySaved:    expected * costPerCigarette,
		ElapsedHours:       hours,
	}
}
