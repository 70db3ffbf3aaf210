package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	fmt.Println("Validating profile, plan and daily logs...")
	problems, err := collectDataProblems(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(problems.FormatReport())
	return nil
}

// collectDataProblems runs the stored-data validators. A store without a plan
// has nothing to validate.
func collectDataProblems(ctx *Context) (validation.Errors, error) {
	state, err := ctx.Tracker.State()
	if errors.Is(err, tracker.ErrNotOnboarded) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quit plan: %w", err)
	}

	var problems validation.Errors
	collect := func(err error) {
		var errs validation.Errors
		if errors.As(err, &errs) {
			problems = append(problems, errs...)
		}
	}

	collect(validation.ValidatePlan(state.Plan))

	logs, err := ctx.Store.GetDailyLogs()
	if err != nil {
		return nil, fmt.Errorf("failed to load daily logs: %w", err)
	}
	collect(validation.ValidateDailyLogs(logs))

	cravings, err := ctx.Store.GetCravings()
	if err != nil {
		return nil, fmt.Errorf("failed to load cravings: %w", err)
	}
	ids := make(map[string]bool, len(cravings))
	for _, c := range cravings {
		if ids[c.ID] {
			problems = append(problems, validation.FieldError{Field: "cravings", Message: "duplicate id " + c.ID})
		}
		ids[c.ID] = true
		collect(validation.ValidateCraving(c))
	}
	return problems, nil
}
