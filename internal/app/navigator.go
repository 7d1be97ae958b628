package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"healthhub/internal/domain"
)

// Tab identifies one screen of the shell.
type Tab string

const (
	TabDashboard     Tab = "dashboard"
	TabWeight        Tab = "weight"
	TabMeals         Tab = "meals"
	TabSleep         Tab = "sleep"
	TabGoals         Tab = "goals"
	TabCommunity     Tab = "community"
	TabSync          Tab = "sync"
	TabNotifications Tab = "notifications"
	TabExport        Tab = "export"
)

// Tabs lists every tab in navigation order.
var Tabs = []Tab{
	TabDashboard, TabWeight, TabMeals, TabSleep, TabGoals,
	TabCommunity, TabSync, TabNotifications, TabExport,
}

// Label returns the navigation label.
func (t Tab) Label() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabWeight:
		return "Weight"
	case TabMeals:
		return "Meals"
	case TabSleep:
		return "Sleep"
	case TabGoals:
		return "Goals"
	case TabCommunity:
		return "Community"
	case TabSync:
		return "Sync"
	case TabNotifications:
		return "Notifications"
	case TabExport:
		return "Export"
	}
	return string(t)
}

// ParseTab parses a tab name. An empty string yields the dashboard.
func ParseTab(s string) (Tab, error) {
	if s == "" {
		return TabDashboard, nil
	}
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownTab, s)
}

// DataSource is what the navigator needs from the health store.
type DataSource interface {
	Fetch(ctx context.Context, period domain.Period) (*domain.HealthDataSet, error)
	Current(ctx context.Context) (*domain.HealthDataSet, bool)
}

// ShellState is what the shell renders.
type ShellState struct {
	Tab     Tab
	Period  domain.Period
	Data    *domain.HealthDataSet
	Loading bool
}

type navState struct {
	mu      sync.Mutex
	tab     Tab
	period  domain.Period
	fetched bool
}

// Navigator keeps the selected tab and period per user and fetches data when
// the period changes. Anonymous requests only see what they ask for.
type Navigator struct {
	source DataSource

	mu     sync.Mutex
	states map[int64]*navState
}

// NewNavigator creates a Navigator reading from source.
func NewNavigator(source DataSource) *Navigator {
	return &Navigator{source: source, states: make(map[int64]*navState)}
}

// state returns the stored selection of the user in ctx. Requests without a
// user get a fresh selection that is not kept.
func (n *Navigator) state(ctx context.Context) *navState {
	u := UserFrom(ctx)
	if u == nil {
		return &navState{tab: TabDashboard, period: domain.DefaultPeriod}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	st, ok := n.states[u.ID]
	if !ok {
		st = &navState{tab: TabDashboard, period: domain.DefaultPeriod}
		n.states[u.ID] = st
	}
	return st
}

// Navigate selects tab and period. The first call and every period change
// fetch exactly once; selecting the current period again does not.
// An empty tab or period keeps the current selection.
func (n *Navigator) Navigate(ctx context.Context, tab Tab, period domain.Period) ShellState {
	st := n.state(ctx)
	st.mu.Lock()
	defer st.mu.Unlock()

	if tab != "" {
		st.tab = tab
	}
	if period == "" {
		period = st.period
	}
	if !st.fetched || period != st.period {
		st.period = period
		st.fetched = true
		n.load(ctx, period)
	}
	return n.snapshot(ctx, st)
}

// Refresh fetches the current period again.
func (n *Navigator) Refresh(ctx context.Context) ShellState {
	st := n.state(ctx)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.fetched = true
	n.load(ctx, st.period)
	return n.snapshot(ctx, st)
}

// Selection returns the current tab and period without fetching.
func (n *Navigator) Selection(ctx context.Context) (Tab, domain.Period) {
	st := n.state(ctx)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.tab, st.period
}

// load fetches and drops errors. A failed fetch leaves the shell loading.
func (n *Navigator) load(ctx context.Context, period domain.Period) {
	if _, err := n.source.Fetch(ctx, period); err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			slog.DebugContext(ctx, "fetch skipped without user")
			return
		}
		slog.ErrorContext(ctx, "error fetching health data", "period", period, "error", err)
	}
}

func (n *Navigator) snapshot(ctx context.Context, st *navState) ShellState {
	data, ok := n.source.Current(ctx)
	return ShellState{Tab: st.tab, Period: st.period, Data: data, Loading: !ok}
}
