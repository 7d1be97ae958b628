package adapthttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"healthhub/internal/app"
	"healthhub/internal/domain"
	"healthhub/internal/ui"
)

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	var tab app.Tab
	if v := q.Get("tab"); v != "" {
		t, err := app.ParseTab(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		tab = t
	}
	var period domain.Period
	if v := q.Get("period"); v != "" {
		p, err := domain.ParsePeriod(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		period = p
	}

	unit := domain.UnitKg
	if v := q.Get("unit"); v != "" {
		if v == domain.UnitLb {
			unit = domain.UnitLb
		}
		http.SetCookie(w, &http.Cookie{Name: unitCookie, Value: unit, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	} else if c, err := r.Cookie(unitCookie); err == nil && c.Value == domain.UnitLb {
		unit = domain.UnitLb
	}

	state := s.svc.Navigator.Navigate(ctx, tab, period)
	v := ui.View{
		AppName: s.opts.AppName,
		User:    app.UserFrom(ctx),
		State:   state,
		Unit:    unit,
		Toast:   takeFlash(w, r),
		Now:     s.now(),
	}
	if state.Data != nil {
		v.Dashboard = app.BuildDashboard(state.Data, s.opts.Targets)
	}
	switch state.Tab {
	case app.TabCommunity:
		v.Challenges = s.svc.Community.List(ctx)
	case app.TabSync:
		v.Devices = s.svc.Sync.Devices()
		v.Connection, _ = s.svc.Sync.Connection(ctx)
	case app.TabNotifications:
		v.Notifications, _ = s.svc.Notifications.List(ctx)
		v.Settings, _ = s.svc.Notifications.Settings(ctx)
	}
	if v.User != nil {
		v.Unread, _ = s.svc.Notifications.Unread(ctx)
		if s.svc.Tasks != nil {
			v.Tasks = s.svc.Tasks.List(v.User.ID)
		}
	}
	ui.Render(w, r, ui.Shell(v))
}

// finish stores the toast and sends the browser back to tab.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, tab app.Tab, t ui.Toast) {
	_, period := s.svc.Navigator.Selection(r.Context())
	setFlash(w, t)
	q := url.Values{"tab": {string(tab)}, "period": {string(period)}}
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, tab app.Tab, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "form submission failed", "path", r.URL.Path, "error", err)
	}
	s.finish(w, r, tab, toastFor(err))
}

func success(description string) ui.Toast {
	return ui.Toast{Title: "Success", Description: description}
}

func (s *Server) formPost(w http.ResponseWriter, r *http.Request) bool {
	if !allowMethod(w, r, http.MethodPost) {
		return false
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) uiWeight(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	v, err := app.ParseWeightForm(r.PostFormValue("weight"))
	if err == nil {
		err = s.svc.Store.AppendWeight(r.Context(), v)
	}
	if err != nil {
		s.fail(w, r, app.TabWeight, err)
		return
	}
	s.finish(w, r, app.TabWeight, success("Weight logged successfully!"))
}

func (s *Server) uiMeals(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	meal, err := app.ParseMealForm(r.PostFormValue("name"), r.PostFormValue("calories"), r.PostFormValue("time"), s.now())
	if err == nil {
		err = s.svc.Store.AppendMeal(r.Context(), meal)
	}
	if err != nil {
		s.fail(w, r, app.TabMeals, err)
		return
	}
	s.finish(w, r, app.TabMeals, success("Meal logged successfully!"))
}

func (s *Server) uiSleep(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	h, err := app.ParseSleepForm(r.PostFormValue("hours"))
	if err == nil {
		err = s.svc.Store.AppendSleep(r.Context(), h)
	}
	if err != nil {
		s.fail(w, r, app.TabSleep, err)
		return
	}
	s.finish(w, r, app.TabSleep, success("Sleep data logged successfully!"))
}

func (s *Server) uiWater(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	n, err := app.ParseWaterForm(r.PostFormValue("glasses"))
	if err == nil {
		err = s.svc.Store.AppendWater(r.Context(), n)
	}
	if err != nil {
		s.fail(w, r, app.TabDashboard, err)
		return
	}
	s.finish(w, r, app.TabDashboard, success(fmt.Sprintf("%d glasses of water logged!", n)))
}

func (s *Server) uiGoals(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	name, target, err := app.ParseGoalForm(r.PostFormValue("name"), r.PostFormValue("target"))
	if err == nil {
		err = s.svc.Store.AddGoal(r.Context(), name, target)
	}
	if err != nil {
		s.fail(w, r, app.TabGoals, err)
		return
	}
	s.finish(w, r, app.TabGoals, success("Goal added successfully!"))
}

func (s *Server) uiQuickLog(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	msg, err := s.svc.Store.Record(r.Context(), app.QuickLog{
		Kind:     r.PostFormValue("kind"),
		Weight:   r.PostFormValue("weight"),
		MealName: r.PostFormValue("mealName"),
		Calories: r.PostFormValue("calories"),
		Water:    r.PostFormValue("water"),
		Sleep:    r.PostFormValue("sleep"),
	}, s.now())
	if err != nil {
		s.fail(w, r, app.TabDashboard, err)
		return
	}
	s.finish(w, r, app.TabDashboard, success(msg))
}

func (s *Server) uiChallengeJoin(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	c, err := s.svc.Community.Join(r.Context(), r.PostFormValue("id"))
	if err != nil {
		s.fail(w, r, app.TabCommunity, err)
		return
	}
	s.finish(w, r, app.TabCommunity, success("You joined "+c.Name+"!"))
}

func (s *Server) uiDeviceConnect(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	conn, err := s.svc.Sync.Connect(r.Context(), r.PostFormValue("device"))
	if err != nil {
		s.fail(w, r, app.TabSync, err)
		return
	}
	s.finish(w, r, app.TabSync, success(conn.Device.Name+" connected"))
}

func (s *Server) uiDeviceDisconnect(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	if err := s.svc.Sync.Disconnect(r.Context()); err != nil {
		s.fail(w, r, app.TabSync, err)
		return
	}
	s.finish(w, r, app.TabSync, success("Device disconnected"))
}

func checked(r *http.Request, name string) bool {
	v := r.PostFormValue(name)
	return v != "" && v != "off" && v != "false"
}

func (s *Server) uiDevicePreferences(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	prefs := domain.SyncPreferences{
		Steps:     checked(r, "steps"),
		HeartRate: checked(r, "heartRate"),
		Sleep:     checked(r, "sleep"),
		Workouts:  checked(r, "workouts"),
	}
	if _, err := s.svc.Sync.SetPreferences(r.Context(), prefs); err != nil {
		s.fail(w, r, app.TabSync, err)
		return
	}
	s.finish(w, r, app.TabSync, success("Sync preferences saved"))
}

func (s *Server) uiSync(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	if _, err := s.svc.Sync.StartSync(r.Context()); err != nil {
		s.fail(w, r, app.TabSync, err)
		return
	}
	s.finish(w, r, app.TabSync, ui.Toast{Title: "Syncing", Description: "Your device data is syncing"})
}

func (s *Server) uiNotificationRead(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	id, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		s.fail(w, r, app.TabNotifications, domain.ErrNotificationNotFound)
		return
	}
	if err := s.svc.Notifications.MarkRead(r.Context(), id); err != nil {
		s.fail(w, r, app.TabNotifications, err)
		return
	}
	s.finish(w, r, app.TabNotifications, success("Notification marked as read"))
}

func (s *Server) uiNotificationToggle(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	key := r.PostFormValue("key")
	on, err := s.svc.Notifications.ToggleSetting(r.Context(), key)
	if err != nil {
		s.fail(w, r, app.TabNotifications, err)
		return
	}
	state := "disabled"
	if on {
		state = "enabled"
	}
	s.finish(w, r, app.TabNotifications, success(domain.SettingLabel(key)+" "+state))
}

func (s *Server) uiExport(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	format := domain.ExportFormat(r.PostFormValue("format"))
	if _, err := s.svc.Exports.Start(r.Context(), format, domain.ExportRange(r.PostFormValue("range"))); err != nil {
		s.fail(w, r, app.TabExport, err)
		return
	}
	s.finish(w, r, app.TabExport, ui.Toast{
		Title:       "Export started",
		Description: "Your " + strings.ToUpper(string(format)) + " export is being prepared",
	})
}

func (s *Server) uiScan(w http.ResponseWriter, r *http.Request) {
	if !s.formPost(w, r) {
		return
	}
	if _, err := s.svc.Scans.Start(r.Context()); err != nil {
		s.fail(w, r, app.TabExport, err)
		return
	}
	s.finish(w, r, app.TabExport, ui.Toast{Title: "Scanning", Description: "Looking for a barcode"})
}
