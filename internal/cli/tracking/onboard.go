package tracking

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/smokefree/internal/cli"
	"github.com/julianstephens/smokefree/internal/constants"
	"github.com/julianstephens/smokefree/internal/errors"
	"github.com/julianstephens/smokefree/internal/models"
	"github.com/julianstephens/smokefree/internal/tracker"
	"github.com/julianstephens/smokefree/internal/tui"
)

type OnboardCmd struct {
	Name        string   `help:"Your name."`
	Start       string   `help:"Quit date (YYYY-MM-DD). Defaults to now."`
	PerDay      float64  `name:"per-day" help:"Cigarettes smoked per day before quitting."`
	PackCost    float64  `name:"pack-cost" help:"Price of one pack."`
	PackSize    int      `name:"pack-size" help:"Cigarettes in one pack." default:"20"`
	Currency    string   `help:"Currency of the pack price (USD|INR)." enum:"USD,INR" default:"INR"`
	Trigger     []string `help:"Situation that makes you want to smoke. Repeatable."`
	Motivation  []string `help:"Reason for quitting. Repeatable."`
	Goal        []string `help:"Personal goal. Repeatable."`
	Interactive bool     `short:"i" help:"Answer the questions in a form."`
}

func (c *OnboardCmd) Validate() error {
	if c.Interactive {
		return nil
	}
	if c.PerDay == 0 || c.PackCost == 0 {
		return fmt.Errorf("--per-day and --pack-cost are required unless --interactive is set")
	}
	return nil
}

func (c *OnboardCmd) Run(ctx *cli.Context) error {
	var (
		in  tracker.OnboardInput
		err error
	)
	if c.Interactive {
		in, err = c.ask(ctx)
	} else {
		in, err = c.input(ctx.Tracker.Location())
	}
	if err != nil {
		return err
	}

	p, err := ctx.Tracker.Onboard(in)
	if err != nil {
		if stderrors.Is(err, tracker.ErrAlreadyOnboarded) {
			return errors.WithHint(err, "run 'smokefree reset' to start a new attempt")
		}
		return err
	}

	fmt.Printf("✓ Quit attempt started %s\n", p.StartDate.In(ctx.Tracker.Location()).Format("2006-01-02 15:04"))
	fmt.Printf("  Baseline: %g cigarettes/day, %s per pack of %d\n",
		p.CigarettesPerDay, cli.FormatMoney(ctx.Currency(p), p.CostPerPack), p.CigarettesPerPack)

	// A past start date can already have earned achievements
	unlocked, err := ctx.Tracker.EvaluateAchievements()
	if err != nil {
		return err
	}
	ctx.Announce(unlocked)
	return nil
}

func (c *OnboardCmd) input(loc *time.Location) (tracker.OnboardInput, error) {
	in := tracker.OnboardInput{
		Name:              c.Name,
		CigarettesPerDay:  c.PerDay,
		CostPerPack:       c.PackCost,
		CigarettesPerPack: c.PackSize,
		Currency:          models.Currency(c.Currency),
		Triggers:          c.Trigger,
		Motivations:       c.Motivation,
		Goals:             c.Goal,
	}
	if c.Start != "" {
		start, err := time.ParseInLocation(constants.DateFormat, c.Start, loc)
		if err != nil {
			return in, fmt.Errorf("invalid --start %q, use YYYY-MM-DD", c.Start)
		}
		in.StartDate = start
	}
	return in, nil
}

// ask runs the onboarding form, prefilled with any flags given
func (c *OnboardCmd) ask(ctx *cli.Context) (tracker.OnboardInput, error) {
	fm := tui.NewOnboardingFormModel()
	fm.Name = c.Name
	fm.StartDate = c.Start
	fm.Currency = models.Currency(c.Currency)
	fm.Triggers = c.Trigger
	fm.Motivations = c.Motivation
	if c.PerDay > 0 {
		fm.PerDay = strconv.FormatFloat(c.PerDay, 'f', -1, 64)
	}
	if c.PackCost > 0 {
		fm.PackCost = strconv.FormatFloat(c.PackCost, 'f', -1, 64)
	}
	if c.PackSize > 0 {
		fm.PackSize = strconv.Itoa(c.PackSize)
	}

	if err := tui.NewOnboardingForm(fm).Run(); err != nil {
		return tracker.OnboardInput{}, fmt.Errorf("onboarding cancelled: %w", err)
	}
	in, err := fm.Input(ctx.Tracker.Location())
	if err != nil {
		return in, err
	}
	in.Goals = append(in.Goals, c.Goal...)
	return in, nil
}
