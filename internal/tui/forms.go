package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/tracker"
)

// OnboardingFormModel holds the raw onboarding answers
type OnboardingFormModel struct {
	Name        string
	StartDate   string
	PerDay      string
	PackCost    string
	PackSize    string
	Currency    models.Currency
	Triggers    []string
	Motivations []string
	Goals       string
}

// NewOnboardingFormModel returns the answers prefilled with defaults
func NewOnboardingFormModel() *OnboardingFormModel {
	return &OnboardingFormModel{
		PackSize: strconv.Itoa(constants.DefaultCigarettesPerPack),
		Currency: models.CurrencyINR,
	}
}

// Input converts the answers into tracker input. A blank start date means now.
func (fm *OnboardingFormModel) Input(loc *time.Location) (tracker.OnboardInput, error) {
	in := tracker.OnboardInput{
		Name:        strings.TrimSpace(fm.Name),
		Currency:    fm.Currency,
		Triggers:    fm.Triggers,
		Motivations: fm.Motivations,
		Goals:       splitList(fm.Goals),
	}

	if s := strings.TrimSpace(fm.StartDate); s != "" {
		start, err := time.ParseInLocation(constants.DateFormat, s, loc)
		if err != nil {
			return in, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", s)
		}
		in.StartDate = start
	}

	var err error
	if in.CigarettesPerDay, err = strconv.ParseFloat(strings.TrimSpace(fm.PerDay), 64); err != nil {
		return in, fmt.Errorf("invalid cigarettes per day %q", fm.PerDay)
	}
	if in.CostPerPack, err = strconv.ParseFloat(strings.TrimSpace(fm.PackCost), 64); err != nil {
		return in, fmt.Errorf("invalid pack cost %q", fm.PackCost)
	}
	in.CigarettesPerPack = constants.DefaultCigarettesPerPack
	if s := strings.TrimSpace(fm.PackSize); s != "" {
		if in.CigarettesPerPack, err = strconv.Atoi(s); err != nil {
			return in, fmt.Errorf("invalid pack size %q", fm.PackSize)
		}
	}
	return in, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validatePositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

// NewOnboardingForm builds the onboarding questionnaire
func NewOnboardingForm(fm *OnboardingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Optional").
				Value(&fm.Name),
			huh.NewInput().
				Title("Quit date (YYYY-MM-DD)").
				Description("Leave empty to start now").
				Value(&fm.StartDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date format, use YYYY-MM-DD")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cigarettes per day").
				Value(&fm.PerDay).
				Validate(validatePositive),
			huh.NewInput().
				Title("Cost per pack").
				Value(&fm.PackCost).
				Validate(validatePositive),
			huh.NewInput().
				Title("Cigarettes per pack").
				Value(&fm.PackSize).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i <= 0 {
						return fmt.Errorf("must be a whole number greater than zero")
					}
					return nil
				}),
			huh.NewSelect[models.Currency]().
				Title("Currency").
				Options(
					huh.NewOption("INR (₹)", models.CurrencyINR),
					huh.NewOption("USD ($)", models.CurrencyUSD),
				).
				Value(&fm.Currency),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("What makes you want to smoke?").
				Options(huh.NewOptions(constants.CommonTriggers...)...).
				Value(&fm.Triggers),
			huh.NewMultiSelect[string]().
				Title("Why are you quitting?").
				Options(huh.NewOptions(constants.CommonMotivations...)...).
				Value(&fm.Motivations),
			huh.NewInput().
				Title("Goals").
				Description("Comma separated, optional").
				Value(&fm.Goals),
		),
	).WithTheme(huh.ThemeDracula())
}

// CravingFormModel holds the raw craving answers
type CravingFormModel struct {
	Trigger   string
	Intensity models.Intensity
	GaveIn    bool
	Smoked    string
}

// Event converts the answers into a craving event for the ledger
func (fm *CravingFormModel) Event() models.CravingEvent {
	e := models.CravingEvent{
		Trigger:   fm.Trigger,
		Intensity: fm.Intensity,
		GaveIn:    fm.GaveIn,
	}
	if fm.GaveIn {
		e.CigarettesSmoked, _ = strconv.Atoi(strings.TrimSpace(fm.Smoked))
	}
	return e
}

// triggerOptions lists the user's own triggers first, then the common ones
func triggerOptions(profile []string) []string {
	out := slices.Clone(profile)
	for _, t := range append(slices.Clone(constants.CommonTriggers), constants.FallbackTrigger) {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// NewCravingForm builds the craving log form
func NewCravingForm(fm *CravingFormModel, triggers []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Trigger").
				Options(huh.NewOptions(triggerOptions(triggers)...)...).
				Value(&fm.Trigger),
			huh.NewSelect[models.Intensity]().
				Title("Intensity").
				Options(
					huh.NewOption("Mild", models.IntensityMild),
					huh.NewOption("Moderate", models.IntensityModerate),
					huh.NewOption("Strong", models.IntensityStrong),
				).
				Value(&fm.Intensity),
			huh.NewConfirm().
				Title("Did you smoke?").
				Affirmative("Yes").
				Negative("No, I resisted").
				Value(&fm.GaveIn),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("How many cigarettes?").
				Value(&fm.Smoked).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i < 1 {
						return fmt.Errorf("must be at least 1")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return !fm.GaveIn }),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm builds a yes/no confirmation bound to confirmed
func NewConfirmForm(title, description string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
