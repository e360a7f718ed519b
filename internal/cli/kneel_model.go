package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qkariin/queendom/internal/cli/formatter"
	"github.com/qkariin/queendom/internal/domain"
	"github.com/qkariin/queendom/internal/service"
)

const (
	kneelTickInterval = 50 * time.Millisecond

	// Terminals report a held key as repeated presses. A gap longer than the
	// typical initial repeat delay means the key was released.
	kneelReleaseGap = 600 * time.Millisecond
)

type kneelPhase int

const (
	kneelHolding kneelPhase = iota
	kneelRecording
	kneelChoosing
	kneelClaiming
	kneelDone
	kneelLocked
)

type kneelKeyMap struct {
	Hold    key.Binding
	Toggle  key.Binding
	Coins   key.Binding
	Points  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func newKneelKeyMap() kneelKeyMap {
	return kneelKeyMap{
		Hold:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "hold to kneel")),
		Toggle:  key.NewBinding(key.WithKeys("left", "right", "tab", "h", "l"), key.WithHelp("←/→", "switch")),
		Coins:   key.NewBinding(key.WithKeys("c", "1"), key.WithHelp("c", "coins")),
		Points:  key.NewBinding(key.WithKeys("p", "2"), key.WithHelp("p", "points")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "claim")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k kneelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hold, k.Toggle, k.Confirm, k.Quit}
}

func (k kneelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Hold}, {k.Toggle, k.Coins, k.Points, k.Confirm}, {k.Quit}}
}

// forPhase enables only the bindings that act in phase.
func (k kneelKeyMap) forPhase(p kneelPhase) kneelKeyMap {
	k.Hold.SetEnabled(p == kneelHolding)
	choosing := p == kneelChoosing
	k.Toggle.SetEnabled(choosing)
	k.Coins.SetEnabled(choosing)
	k.Points.SetEnabled(choosing)
	k.Confirm.SetEnabled(choosing)
	return k
}

type (
	kneelTickMsg     time.Time
	kneelFinishedMsg struct {
		member *domain.Member
		err    error
	}
	kneelClaimedMsg struct {
		member *domain.Member
		err    error
	}
)

type kneelModelConfig struct {
	Service      service.KneelService
	Member       *domain.Member
	Status       *service.KneelStatus
	Hold         time.Duration
	RewardCoins  int
	RewardPoints int
	Now          func() time.Time
}

// kneelModel is the hold-to-kneel screen: hold space for the configured
// time, then pick a reward. Releasing early resets the bar.
type kneelModel struct {
	svc    service.KneelService
	member *domain.Member
	status *service.KneelStatus
	hold   time.Duration
	coins  int
	points int
	now    func() time.Time

	keys kneelKeyMap
	help help.Model
	bar  progress.Model

	phase     kneelPhase
	holding   bool
	holdStart time.Time
	lastPress time.Time
	choice    domain.RewardChoice
	err       error
}

func newKneelModel(cfg kneelModelConfig) kneelModel {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	m := kneelModel{
		svc:    cfg.Service,
		member: cfg.Member,
		status: cfg.Status,
		hold:   cfg.Hold,
		coins:  cfg.RewardCoins,
		points: cfg.RewardPoints,
		now:    now,
		keys:   newKneelKeyMap(),
		help:   help.New(),
		bar: progress.New(
			progress.WithSolidFill(string(formatter.ColorGold)),
			progress.WithWidth(40),
		),
		choice: domain.RewardCoins,
	}
	if cfg.Status != nil && cfg.Status.Locked {
		m.phase = kneelLocked
	}
	return m
}

func (m kneelModel) Init() tea.Cmd {
	if m.phase == kneelLocked {
		return nil
	}
	return kneelTick()
}

func kneelTick() tea.Cmd {
	return tea.Tick(kneelTickInterval, func(t time.Time) tea.Msg { return kneelTickMsg(t) })
}

func (m kneelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-8, 10), 60)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case kneelTickMsg:
		if m.phase != kneelHolding {
			return m, nil
		}
		if m.holding && m.now().Sub(m.lastPress) > kneelReleaseGap {
			m.holding = false
		}
		if cmd := m.checkHold(); cmd != nil {
			return m, cmd
		}
		return m, kneelTick()

	case kneelFinishedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, service.ErrKneelLocked) {
				m.phase = kneelLocked
				return m, nil
			}
			m.err = msg.err
			m.phase = kneelDone
			return m, tea.Quit
		}
		m.member = msg.member
		m.phase = kneelChoosing
		return m, nil

	case kneelClaimedMsg:
		m.err = msg.err
		if msg.member != nil {
			m.member = msg.member
		}
		m.phase = kneelDone
		return m, tea.Quit
	}
	return m, nil
}

func (m kneelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.phase {
	case kneelHolding:
		if key.Matches(msg, m.keys.Hold) {
			now := m.now()
			if !m.holding {
				m.holding = true
				m.holdStart = now
			}
			m.lastPress = now
			return m, m.checkHold()
		}
	case kneelChoosing:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if m.choice == domain.RewardCoins {
				m.choice = domain.RewardPoints
			} else {
				m.choice = domain.RewardCoins
			}
		case key.Matches(msg, m.keys.Coins):
			m.choice = domain.RewardCoins
		case key.Matches(msg, m.keys.Points):
			m.choice = domain.RewardPoints
		case key.Matches(msg, m.keys.Confirm):
			m.phase = kneelClaiming
			return m, m.claim()
		}
	case kneelDone, kneelLocked:
		return m, tea.Quit
	}
	return m, nil
}

// checkHold moves to recording once the key has been held long enough.
func (m *kneelModel) checkHold() tea.Cmd {
	if !m.holding || m.now().Sub(m.holdStart) < m.hold {
		return nil
	}
	m.holding = false
	m.phase = kneelRecording
	return m.finish()
}

func (m kneelModel) finish() tea.Cmd {
	svc, id := m.svc, m.member.ID
	return func() tea.Msg {
		member, err := svc.Finish(context.Background(), id)
		return kneelFinishedMsg{member: member, err: err}
	}
}

func (m kneelModel) claim() tea.Cmd {
	svc, id, choice := m.svc, m.member.ID, m.choice
	return func() tea.Msg {
		member, err := svc.ClaimReward(context.Background(), id, choice)
		return kneelClaimedMsg{member: member, err: err}
	}
}

// fraction is the share of the hold time completed so far.
func (m kneelModel) fraction() float64 {
	switch m.phase {
	case kneelHolding:
		if !m.holding || m.hold <= 0 {
			return 0
		}
		return min(float64(m.now().Sub(m.holdStart))/float64(m.hold), 1)
	case kneelLocked:
		return 0
	default:
		return 1
	}
}

func (m kneelModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Kneel before the Queen"))
	b.WriteString("\n\n")

	switch m.phase {
	case kneelHolding:
		fmt.Fprintf(&b, "Hold %s for %s.\n\n", formatter.Bold("space"), m.hold)
		b.WriteString(m.bar.ViewAs(m.fraction()))
		b.WriteString("\n")
	case kneelRecording:
		b.WriteString(m.bar.ViewAs(1))
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Recording..."))
		b.WriteString("\n")
	case kneelChoosing, kneelClaiming:
		b.WriteString(formatter.StyleGreen.Render("✔ Kneel recorded."))
		b.WriteString("\n\n")
		b.WriteString("Choose your reward:  ")
		b.WriteString(m.option(domain.RewardCoins, fmt.Sprintf("%d coins", m.coins)))
		b.WriteString("   ")
		b.WriteString(m.option(domain.RewardPoints, fmt.Sprintf("%d points", m.points)))
		b.WriteString("\n")
	case kneelDone:
		if m.err != nil {
			b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		} else {
			amount := m.coins
			if m.choice == domain.RewardPoints {
				amount = m.points
			}
			b.WriteString(formatter.FormatReward(m.member, m.choice, amount))
		}
		b.WriteString("\n")
	case kneelLocked:
		if m.status != nil && m.status.Locked {
			fmt.Fprintf(&b, "%s %s\n", formatter.StyleRed.Render("🔒 LOCKED"),
				formatter.Dim(fmt.Sprintf("%d min left", m.status.MinutesLeft)))
		} else {
			b.WriteString(formatter.StyleRed.Render("🔒 LOCKED"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.forPhase(m.phase)))
	return b.String()
}

func (m kneelModel) option(choice domain.RewardChoice, label string) string {
	if m.choice == choice {
		return formatter.StyleGold.Render("▶ " + label)
	}
	return formatter.Dim("  " + label)
}
