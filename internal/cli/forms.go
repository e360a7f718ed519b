package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
)

func queendomHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: gold accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorGold).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorGold)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorGold).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorGold)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorGold)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// memberFields are the editable profile fields shared by "member add" and
// "member edit".
type memberFields struct {
	Name           string
	Title          string
	ProfilePicture string
	Limits         string
	Kinks          string
	Routine        string
	Hierarchy      string
}

func fieldsOf(m *domain.Member) memberFields {
	return memberFields{
		Name:           m.Name,
		Title:          m.Title,
		ProfilePicture: m.ProfilePicture,
		Limits:         m.Limits,
		Kinks:          m.Kinks,
		Routine:        m.Routine,
		Hierarchy:      m.Hierarchy,
	}
}

func (f memberFields) applyTo(m *domain.Member) {
	m.Name = strings.TrimSpace(f.Name)
	m.Title = strings.TrimSpace(f.Title)
	m.ProfilePicture = strings.TrimSpace(f.ProfilePicture)
	m.Limits = f.Limits
	m.Kinks = f.Kinks
	m.Routine = strings.TrimSpace(f.Routine)
	m.Hierarchy = f.Hierarchy
}

// memberForm collects a member profile. The rank select lists the ladder in
// order; the value is the tier name.
func memberForm(f *memberFields, ladder domain.Ladder) *huh.Form {
	options := make([]huh.Option[string], 0, len(ladder))
	for _, t := range ladder {
		options = append(options, huh.NewOption(strings.TrimSpace(t.Icon+" "+t.Name), t.Name))
	}
	if f.Hierarchy == "" && len(ladder) > 0 {
		f.Hierarchy = ladder[0].Name
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Title").
				Description("Honorific shown when no name is set").
				Value(&f.Title),
			huh.NewSelect[string]().
				Title("Rank").
				Options(options...).
				Value(&f.Hierarchy),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Profile picture URL").
				Value(&f.ProfilePicture),
			huh.NewText().
				Title("Limits").
				Value(&f.Limits),
			huh.NewText().
				Title("Kinks").
				Value(&f.Kinks),
			huh.NewInput().
				Title("Daily routine").
				Placeholder("Morning inspection").
				Value(&f.Routine),
		),
	).WithTheme(queendomHuhTheme()).WithShowHelp(false)
}

// rewardForm asks which kneel reward to take.
func rewardForm(coins, points int, choice *string) *huh.Form {
	*choice = string(domain.RewardCoins)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose your reward").
				Options(
					huh.NewOption(fmt.Sprintf("%d coins", coins), string(domain.RewardCoins)),
					huh.NewOption(fmt.Sprintf("%d points", points), string(domain.RewardPoints)),
				).
				Value(choice),
		),
	).WithTheme(queendomHuhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(queendomHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
