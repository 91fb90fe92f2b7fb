// Package calculator provides the media plan form and result view for the TUI.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/netreach/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/netreach/internal/core/domain"
	"github.com/custodia-labs/netreach/internal/core/ports/driving"
)

const (
	audienceField = 0
	cityField     = 1
	firstChannel  = 2
)

// ErrNothingToSave is shown when saving before a successful calculation.
var ErrNothingToSave = errors.New("calculate a plan before saving it")

// ErrScenariosUnavailable is shown when no scenario store is configured.
var ErrScenariosUnavailable = errors.New("scenario storage is not configured")

// View is the calculator form with the last result below it.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    []*input.Field
	focus     int
	statusbar *status.Bar

	calculator driving.CalculatorService
	scenarios  driving.ScenarioService
	ctx        context.Context

	// seq counts submissions; only the latest one's result is shown.
	seq         uint64
	lastRequest *domain.CalculationRequest
	result      *domain.CalculationResult
	err         error

	width  int
	height int
	ready  bool
}

// NewView creates the calculator view with one reach field per channel.
func NewView(
	s *styles.Styles,
	calculator driving.CalculatorService,
	scenarios driving.ScenarioService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	fields := []*input.Field{
		input.NewField(s, "Audience", "All 18-44"),
		input.NewField(s, "City", "RF"),
	}
	if calculator != nil {
		for _, c := range calculator.Channels() {
			fields = append(fields, input.NewNumberField(s, c))
		}
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.FormHelp())

	return &View{
		styles:     s,
		keymap:     km,
		fields:     fields,
		statusbar:  bar,
		calculator: calculator,
		scenarios:  scenarios,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetDefaults prefills the audience and city fields when they are empty.
func (v *View) SetDefaults(audience, city string) {
	if v.fields[audienceField].Value() == "" {
		v.fields[audienceField].SetValue(audience)
	}
	if v.fields[cityField].Value() == "" {
		v.fields[cityField].SetValue(city)
	}
}

// Init focuses the current field.
func (v *View) Init() tea.Cmd {
	return v.fields[v.focus].Focus()
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.CalculationCompleted:
		v.handleCalculationCompleted(msg)
		return v, nil

	case messages.ScenarioSaved:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.statusbar.SetState(status.StateResult)
		v.statusbar.SetMessage(fmt.Sprintf("Saved scenario %q", msg.Scenario.Name))
		return v, nil

	case messages.ReferenceChanged:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Reference data changed, press enter to recalculate")
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.Calculate):
		return v, v.calculate()
	case keymap.Matches(keyStr, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.moveFocus(1)
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.moveFocus(-1)
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].Focus()
}

// Request builds a calculation request from the form.
// Channel fields left empty are not part of the plan.
func (v *View) Request() (domain.CalculationRequest, error) {
	req := domain.CalculationRequest{
		TargetAudience: strings.TrimSpace(v.fields[audienceField].Value()),
		City:           strings.TrimSpace(v.fields[cityField].Value()),
	}

	for _, f := range v.fields[firstChannel:] {
		raw := strings.TrimSpace(f.Value())
		if raw == "" {
			continue
		}
		raw = strings.ReplaceAll(strings.TrimSuffix(raw, "%"), ",", ".")
		reach, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: reach of %s must be a number", domain.ErrInvalidInput, f.Label())
		}
		req.Plan = append(req.Plan, domain.PlanItem{Name: f.Label(), Reach: reach})
	}
	return req, nil
}

func (v *View) calculate() tea.Cmd {
	if v.calculator == nil {
		return nil
	}

	req, err := v.Request()
	if err != nil {
		v.setError(err)
		return nil
	}

	v.seq++
	v.statusbar.SetState(status.StateCalculating)
	v.statusbar.SetMessage("")
	seq := v.seq
	calc := v.calculator
	ctx := v.ctx
	return func() tea.Msg {
		result, err := calc.Calculate(ctx, req)
		return messages.CalculationCompleted{Seq: seq, Request: req, Result: result, Err: err}
	}
}

func (v *View) save() tea.Cmd {
	if v.scenarios == nil {
		v.setError(ErrScenariosUnavailable)
		return nil
	}
	if v.result == nil || v.lastRequest == nil {
		v.setError(ErrNothingToSave)
		return nil
	}

	svc := v.scenarios
	ctx := v.ctx
	req := *v.lastRequest
	result := v.result
	return func() tea.Msg {
		sc, err := svc.Save(ctx, "", req, result)
		return messages.ScenarioSaved{Scenario: sc, Err: err}
	}
}

func (v *View) handleCalculationCompleted(msg messages.CalculationCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	req := msg.Request
	v.lastRequest = &req
	v.result = msg.Result
	v.err = nil
	v.statusbar.SetState(status.StateResult)
	v.statusbar.SetMessage(fmt.Sprintf("Net reach %.1f%%", msg.Result.FinalReach*100))
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the form, the last result and the status bar.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Media plan"))
	b.WriteString("\n\n")

	for i, f := range v.fields {
		if i == firstChannel {
			b.WriteString("\n")
			b.WriteString(v.styles.Subtitle.Render("Reach, %"))
			b.WriteString("\n")
		}
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	if v.result != nil {
		b.WriteString("\n")
		b.WriteString(v.renderResult())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderResult() string {
	r := v.result

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(r.Header))
	b.WriteString("\n")
	if r.DataSourceMsg != "" {
		b.WriteString(v.styles.Muted.Render(r.DataSourceMsg))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Metric.Render(fmt.Sprintf("Net reach %.1f%%", r.FinalReach*100)))
	b.WriteString("  ")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("gross %.1f%%", r.GrossReach*100)))
	b.WriteString("  ")
	b.WriteString(v.confidenceStyle(r.Confidence).Render("confidence " + r.Confidence.String()))
	b.WriteString("\n")

	if len(r.IncrementalData) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(r.IncrementalData))
	for i, step := range r.IncrementalData {
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, step.Name),
			fmt.Sprintf("%.1f%%", step.Reach*100),
			fmt.Sprintf("+%.1f%%", step.Increment*100),
			fmt.Sprintf("%.1f%%", step.CumulativeReach*100),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(v.styles.TableBorder).
		Headers("Channel", "Reach", "Increment", "Cumulative").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.styles.TableHeader.Padding(0, 1)
			}
			return v.styles.Normal.Padding(0, 1)
		})
	b.WriteString(t.Render())
	return b.String()
}

func (v *View) confidenceStyle(c domain.Confidence) lipgloss.Style {
	switch c {
	case domain.ConfidenceHigh:
		return v.styles.Success
	case domain.ConfidenceMedium:
		return v.styles.Warning
	default:
		return v.styles.Error
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width / 2)
	}
	v.statusbar.SetWidth(width)
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focus
}

// Fields returns the form fields in display order.
func (v *View) Fields() []*input.Field {
	return v.fields
}

// Result returns the last successful result.
func (v *View) Result() *domain.CalculationResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
