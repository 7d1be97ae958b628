package adapthttp

import (
	"net/http"

	"healthhub/internal/app"
	"healthhub/internal/domain"
)

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	type pushOpts struct {
		PresentationOptions []string `json:"presentationOptions"`
	}
	type localOpts struct {
		SmallIcon string `json:"smallIcon"`
		IconColor string `json:"iconColor"`
		Sound     string `json:"sound"`
	}
	n := s.opts.Notifications
	writeJSON(w, http.StatusOK, map[string]any{
		"appName": s.opts.AppName,
		"plugins": map[string]any{
			"PushNotifications":  pushOpts{PresentationOptions: n.PushPresentation},
			"LocalNotifications": localOpts{SmallIcon: n.SmallIcon, IconColor: n.IconColor, Sound: n.Sound},
		},
		"targets": s.opts.Targets,
	})
}

func (s *Server) fetch(r *http.Request) (*domain.HealthDataSet, error) {
	period, err := domain.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		return nil, err
	}
	return s.svc.Store.Fetch(r.Context(), period)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	data, err := s.fetch(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	data, err := s.fetch(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.BuildDashboard(data, s.opts.Targets))
}

// appended answers a successful append with the cached snapshot when the
// user has one.
func (s *Server) appended(w http.ResponseWriter, r *http.Request, message string) {
	resp := map[string]any{"ok": true, "message": message}
	if data, ok := s.svc.Store.Current(r.Context()); ok {
		resp["data"] = data
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Weight *float64 `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := app.ParseWeightForm(numField(body.Weight))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.svc.Store.AppendWeight(r.Context(), v); err != nil {
		writeAppError(w, err)
		return
	}
	s.appended(w, r, "Weight logged successfully!")
}

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Name     string   `json:"name"`
		Calories *float64 `json:"calories"`
		Time     string   `json:"time"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	meal, err := app.ParseMealForm(body.Name, numField(body.Calories), body.Time, s.now())
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.svc.Store.AppendMeal(r.Context(), meal); err != nil {
		writeAppError(w, err)
		return
	}
	s.appended(w, r, "Meal logged successfully!")
}

func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Hours *float64 `json:"hours"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h, err := app.ParseSleepForm(numField(body.Hours))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.svc.Store.AppendSleep(r.Context(), h); err != nil {
		writeAppError(w, err)
		return
	}
	s.appended(w, r, "Sleep data logged successfully!")
}

func (s *Server) handleWater(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Glasses *float64 `json:"glasses"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := app.ParseWaterForm(numField(body.Glasses))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.svc.Store.AppendWater(r.Context(), n); err != nil {
		writeAppError(w, err)
		return
	}
	s.appended(w, r, "Water intake logged successfully!")
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Name   string   `json:"name"`
		Target *float64 `json:"target"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	name, target, err := app.ParseGoalForm(body.Name, numField(body.Target))
	if err != nil {
		writeAppError(w, err)
		return
	}
	if err := s.svc.Store.AddGoal(r.Context(), name, target); err != nil {
		writeAppError(w, err)
		return
	}
	s.appended(w, r, "Goal added successfully!")
}
