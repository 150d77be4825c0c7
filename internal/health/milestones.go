// Package health maps time since quitting onto a fixed table of recovery
// milestones, pushed back by every cigarette smoked after the quit date.
package health

const (
	hour = 60
	day  = 24 * hour
	year = 365 * day
)

// Milestone is one entry of the recovery timeline
type Milestone struct {
	Label            string
	Benefit          string
	Description      string
	ThresholdMinutes int
	Action           string
}

var milestones = []Milestone{
	{"20 minutes", "Heart rate normalizes", "Your heart rate and blood pressure begin to drop.", 20, "Try deep breathing exercises to help your body relax"},
	{"2 hours", "Blood nicotine drops", "Nicotine levels in your bloodstream drop significantly.", 2 * hour, "Stay hydrated to help flush out toxins"},
	{"8 hours", "Carbon monoxide drops", "Carbon monoxide levels in your blood drop by half.", 8 * hour, "Take a walk outside to get fresh oxygen"},
	{"12 hours", "Oxygen levels improve", "Your blood oxygen levels return to normal.", 12 * hour, "Notice how your breathing feels easier"},
	{"24 hours", "Heart attack risk begins dropping", "Your risk of heart attack has already started to drop.", day, "Monitor your heart rate to see the improvement"},
	{"48 hours", "Nerve endings regenerate", "Your sense of taste and smell begin to improve.", 2 * day, "Try tasting different foods to notice the difference"},
	{"72 hours", "Breathing gets easier", "Your bronchial tubes begin to relax.", 3 * day, "Practice deep breathing exercises"},
	{"5 days", "Most nicotine expelled", "Most nicotine is out of your body.", 5 * day, "Celebrate this milestone with a healthy reward"},
	{"1 week", "Taste buds recover", "Your sense of taste has significantly improved.", 7 * day, "Try foods you used to enjoy before smoking"},
	{"2 weeks", "Circulation improves", "Blood circulation improves throughout your body.", 14 * day, "Notice improved energy during physical activities"},
	{"1 month", "Lung function increases", "Your lung function has significantly improved.", 30 * day, "Try some moderate exercise to test your lungs"},
	{"2 months", "Insulin levels normalize", "Your risk of diabetes starts to decrease.", 60 * day, "Get your blood sugar checked"},
	{"3 months", "Heart health improves", "Your circulation and heart function have improved significantly.", 90 * day, "Consider starting a regular exercise routine"},
	{"6 months", "Stress levels reduce", "You're handling stress better without smoking.", 180 * day, "Practice stress management techniques"},
	{"9 months", "Lungs heal significantly", "Your lungs have healed themselves significantly.", 270 * day, "Try cardiovascular exercises to test your progress"},
	{"1 year", "Heart disease risk halves", "Your risk of heart disease is now half that of a smoker.", year, "Get a health checkup to celebrate your progress"},
	{"2 years", "Stroke risk reduces", "Your risk of stroke is now similar to that of a non-smoker.", 2 * year, "Share your success story with others"},
	{"5 years", "Cancer risk drops", "Your risk of mouth, throat, and bladder cancer has halved.", 5 * year, "Get regular health screenings"},
	{"10 years", "Lung cancer risk halves", "Your risk of lung cancer is now half that of a smoker.", 10 * year, "Celebrate your decade of being smoke-free"},
	{"15 years", "Health fully recovers", "Your risk of heart disease is now the same as a non-smoker.", 15 * year, "You're a true inspiration to others!"},
}

// Milestones returns a copy of the timeline in threshold order
func Milestones() []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)
	return out
}
