package status

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/pkg/engine"
	"github.com/pasdam/batchRegexRenamer/pkg/rule"
)

// 📋 PreviewTable renders current and new names of every entry
func (u *UserLogger) PreviewTable(res engine.Result) error {
	dup := map[int]bool{}
	for _, group := range res.Duplicates {
		for _, i := range group {
			dup[i] = true
		}
	}

	data := pterm.TableData{{"#", "Current", "New", ""}}
	for i, e := range res.Entries {
		mark := ""
		switch {
		case !e.Checked:
			mark = "skipped"
		case dup[i]:
			mark = "duplicate"
		case !e.Changed():
			mark = "unchanged"
		}
		data = append(data, []string{strconv.Itoa(i), e.BaseName(), e.FullName(), mark})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(u.out).Render(); err != nil {
		return errors.Errorf("rendering preview: %w", err)
	}
	return nil
}

// 📜 RulesTable renders the rules of a pipeline
func (u *UserLogger) RulesTable(specs []*rule.Spec) error {
	data := pterm.TableData{{"#", "Kind", "Enabled", "Valid", "Fields"}}
	for i, s := range specs {
		valid := "yes"
		var invalid *rule.InvalidParamsError
		if errors.As(s.Validate(), &invalid) {
			valid = "no: " + strings.Join(invalid.Params, ", ")
		}
		data = append(data, []string{
			strconv.Itoa(i),
			s.Kind().String(),
			strconv.FormatBool(s.Enabled()),
			valid,
			strings.Join(rule.Encode(s)[2:], ","),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(u.out).Render(); err != nil {
		return errors.Errorf("rendering rules: %w", err)
	}
	return nil
}
