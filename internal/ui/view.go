package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"healthhub/internal/app"
	"healthhub/internal/domain"
	"healthhub/internal/task"
)

//go:embed templates/*.html
var templateFS embed.FS

// Toast is a transient message shown after a form submission.
type Toast struct {
	Title       string
	Description string
	Error       bool
}

// View is everything a page render needs.
type View struct {
	AppName       string
	User          *domain.User
	State         app.ShellState
	Unit          string
	Toast         *Toast
	Dashboard     app.Dashboard
	Challenges    []domain.Challenge
	Devices       []domain.Device
	Connection    domain.Connection
	Notifications []domain.Notification
	Unread        int
	Settings      domain.NotificationSettings
	Tasks         []task.Info
	Now           time.Time
}

// Query builds the shell URL for tab keeping the current period and unit.
func (v View) Query(tab app.Tab) string {
	return fmt.Sprintf("/?tab=%s&period=%s&unit=%s", tab, v.State.Period, v.unit())
}

func (v View) unit() string {
	if v.Unit == domain.UnitLb {
		return domain.UnitLb
	}
	return domain.UnitKg
}

// TasksOf returns the listed tasks of kind.
func (v View) TasksOf(kind string) []task.Info {
	var out []task.Info
	for _, t := range v.Tasks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

var funcs = template.FuncMap{
	"tabClass":     TabClass,
	"button":       ButtonClass,
	"badge":        BadgeClass,
	"thousands":    Thousands,
	"ago":          Ago,
	"weight":       Weight,
	"percent":      Percent,
	"number":       Number,
	"settingLabel": domain.SettingLabel,
	"periods":      func() []domain.Period { return domain.Periods },
	"formats":      func() []domain.ExportFormat { return domain.ExportFormats },
	"ranges":       func() []domain.ExportRange { return domain.ExportRanges },
	"settingKeys":  func() []string { return domain.SettingKeys },
}

var templates = template.Must(template.New("ui").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

var screenTemplates = map[app.Tab]string{
	app.TabDashboard:     "screen-dashboard",
	app.TabWeight:        "screen-weight",
	app.TabMeals:         "screen-meals",
	app.TabSleep:         "screen-sleep",
	app.TabGoals:         "screen-goals",
	app.TabCommunity:     "screen-community",
	app.TabSync:          "screen-sync",
	app.TabNotifications: "screen-notifications",
	app.TabExport:        "screen-export",
}

type page struct {
	View
	Nav      template.HTML
	Screen   template.HTML
	ToastBox template.HTML
}

// fragment renders c for embedding in the layout template.
func fragment(ctx context.Context, c templ.Component) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Screen renders only the screen of the selected tab.
func Screen(v View) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		name, ok := screenTemplates[v.State.Tab]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownTab, v.State.Tab)
		}
		if v.State.Loading && v.State.Tab != app.TabCommunity && v.State.Tab != app.TabSync &&
			v.State.Tab != app.TabNotifications && v.State.Tab != app.TabExport {
			name = "screen-loading"
		}
		return templates.ExecuteTemplate(w, name, v)
	})
}

// Shell renders the full page: header, navigation, the selected screen and
// the toast.
func Shell(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := page{View: v}
		var err error
		if p.Screen, err = fragment(ctx, Screen(v)); err != nil {
			return err
		}
		if p.Nav, err = fragment(ctx, TabNav(v.State.Tab, v.Query)); err != nil {
			return err
		}
		if p.ToastBox, err = fragment(ctx, ToastBox(v.Toast)); err != nil {
			return err
		}
		return templates.ExecuteTemplate(w, "layout", p)
	})
}
