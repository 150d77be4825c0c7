package constants

const (
	// SetbackMinutesPerCigarette is the recovery time lost for every cigarette
	// smoked after the quit date.
	SetbackMinutesPerCigarette = 30

	// DefaultCigarettesPerPack is offered at onboarding when the user leaves it blank
	DefaultCigarettesPerPack = 20

	// Craving intensity bounds
	MinIntensity = 1
	MaxIntensity = 3

	// FallbackTrigger replaces a blank craving trigger
	FallbackTrigger = "Other"

	CopingResisted = "Resisted craving"
	CopingGaveIn   = "Gave in to craving"

	// Breathing exercise phases in seconds (4-7-8 technique)
	BreatheInhaleSec = 4
	BreatheHoldSec   = 7
	BreatheExhaleSec = 8
)

// CommonTriggers are offered at onboarding
var CommonTriggers = []string{
	"Stress", "After meals", "Social situations", "Morning coffee",
	"Work breaks", "Driving", "Alcohol", "Boredom",
}

// CommonMotivations are offered at onboarding
var CommonMotivations = []string{
	"Health improvement", "Family", "Financial savings",
	"Better breathing", "More energy", "Freedom from addiction",
	"Setting an example", "Quality of life",
}
