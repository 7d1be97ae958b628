package adapthttp

import (
	"fmt"
	"net/http"

	"healthhub/internal/app"
	"healthhub/internal/domain"
	"healthhub/internal/task"
)

type idBody struct {
	ID string `json:"id"`
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": s.svc.Community.List(r.Context())})
}

func (s *Server) handleChallengeJoin(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body idBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := s.svc.Community.Join(r.Context(), body.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	conn, err := s.svc.Sync.Connection(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": s.svc.Sync.Devices(), "connection": conn})
}

func (s *Server) handleDeviceConnect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Device string `json:"device"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	conn, err := s.svc.Sync.Connect(r.Context(), body.Device)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (s *Server) handleDeviceDisconnect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := s.svc.Sync.Disconnect(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDevicePreferences(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}
	var prefs domain.SyncPreferences
	if err := parseJSON(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	conn, err := s.svc.Sync.SetPreferences(r.Context(), prefs)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h, err := s.svc.Sync.StartSync(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.Info())
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx := r.Context()
	items, err := s.svc.Notifications.List(ctx)
	if err != nil {
		writeAppError(w, err)
		return
	}
	unread, _ := s.svc.Notifications.Unread(ctx)
	settings, _ := s.svc.Notifications.Settings(ctx)
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "unread": unread, "settings": settings})
}

func (s *Server) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Notifications.MarkRead(r.Context(), body.ID); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotificationSettings(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}
	var changes map[string]bool
	if err := parseJSON(r, &changes); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	settings, err := s.svc.Notifications.UpdateSettings(r.Context(), changes)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleExports(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body struct {
		Format string `json:"format"`
		Range  string `json:"range"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h, err := s.svc.Exports.Start(r.Context(), domain.ExportFormat(body.Format), domain.ExportRange(body.Range))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.Info())
}

func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	art, body, err := s.svc.Exports.Download(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h, err := s.svc.Scans.Start(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, h.Info())
}

func (s *Server) ownedTask(r *http.Request, id string) (*task.Handle, error) {
	u := app.UserFrom(r.Context())
	if u == nil {
		return nil, domain.ErrNoUser
	}
	return s.svc.Tasks.GetOwned(id, u.ID)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	u := app.UserFrom(r.Context())
	if u == nil {
		writeAppError(w, domain.ErrNoUser)
		return
	}
	items := s.svc.Tasks.List(u.ID)
	if items == nil {
		items = []task.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h, err := s.ownedTask(r, r.URL.Query().Get("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Info())
}

func (s *Server) handleTaskCancel(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var body idBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h, err := s.ownedTask(r, body.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	h.Cancel()
	writeJSON(w, http.StatusOK, h.Info())
}
