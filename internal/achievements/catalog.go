// Package achievements evaluates the fixed badge catalog against the current
// tracker statistics.
package achievements

import "github.com/julianstephens/smokefree/internal/models"

// Stats is the snapshot every predicate is evaluated against
type Stats struct {
	DaysSmokeFree     int64 // whole days since the quit start
	StreakCount       int
	LongestStreak     int
	CravingsManaged   int
	CigarettesAvoided float64
}

// Definition is one catalog entry. Value reports the current progress toward
// Target; the achievement is earned once Value reaches Target.
type Definition struct {
	ID          string
	Title       string
	Description string
	Category    models.AchievementCategory
	Target      float64
	Value       func(Stats) float64
}

// Earned reports whether the stats satisfy the definition
func (d Definition) Earned(s Stats) bool {
	return d.Value(s) >= d.Target
}

var catalog = []Definition{
	{
		ID: "24hours", Title: "24 Hours Free", Description: "Complete your first day smoke-free",
		Category: models.CategoryMilestone, Target: 1,
		Value: func(s Stats) float64 { return float64(s.DaysSmokeFree) },
	},
	{
		ID: "week", Title: "One Week Warrior", Description: "7 days of freedom",
		Category: models.CategoryMilestone, Target: 7,
		Value: func(s Stats) float64 { return float64(s.DaysSmokeFree) },
	},
	{
		ID: "week_streak", Title: "Week Warrior", Description: "Maintain a 7-day streak",
		Category: models.CategoryStreak, Target: 7,
		Value: func(s Stats) float64 { return float64(s.StreakCount) },
	},
	{
		ID: "craving_master", Title: "Craving Master", Description: "Successfully manage 10 cravings",
		Category: models.CategoryHealth, Target: 10,
		Value: func(s Stats) float64 { return float64(s.CravingsManaged) },
	},
	{
		ID: "hundred_cigs", Title: "Century Saver", Description: "Avoid 100 cigarettes",
		Category: models.CategorySavings, Target: 100,
		Value: func(s Stats) float64 { return s.CigarettesAvoided },
	},
}

// Catalog returns every achievement definition in display order
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a definition by id
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
