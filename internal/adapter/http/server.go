package adapthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"healthhub/internal/app"
	"healthhub/internal/metrics"
	"healthhub/internal/task"
)

// Services are the application services the server routes to.
type Services struct {
	Identity      *app.IdentityService
	Store         *app.HealthStore
	Navigator     *app.Navigator
	Community     *app.CommunityService
	Sync          *app.SyncService
	Notifications *app.NotificationService
	Exports       *app.ExportService
	Scans         *app.ScanService
	Tasks         *task.Runner
}

// NotificationOptions are the mobile notification plugin settings exposed to
// clients.
type NotificationOptions struct {
	PushPresentation []string `json:"presentationOptions"`
	SmallIcon        string   `json:"smallIcon"`
	IconColor        string   `json:"iconColor"`
	Sound            string   `json:"sound"`
}

// Options configure presentation and trust.
type Options struct {
	AppName          string
	Targets          app.Targets
	Notifications    NotificationOptions
	TrustProxyHeader bool
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc  Services
	opts Options
	now  func() time.Time
}

// New creates a Server wired to the given application services.
func New(svc Services, opts Options) *Server {
	if opts.AppName == "" {
		opts.AppName = "TrackYou"
	}
	return &Server{svc: svc, opts: opts, now: time.Now}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/data", s.handleData)
	api.HandleFunc("/dashboard", s.handleDashboard)
	api.HandleFunc("/weight", s.handleWeight)
	api.HandleFunc("/meals", s.handleMeals)
	api.HandleFunc("/sleep", s.handleSleep)
	api.HandleFunc("/water", s.handleWater)
	api.HandleFunc("/goals", s.handleGoals)

	api.HandleFunc("/challenges", s.handleChallenges)
	api.HandleFunc("/challenges/join", s.handleChallengeJoin)

	api.HandleFunc("/devices", s.handleDevices)
	api.HandleFunc("/devices/connect", s.handleDeviceConnect)
	api.HandleFunc("/devices/disconnect", s.handleDeviceDisconnect)
	api.HandleFunc("/devices/preferences", s.handleDevicePreferences)
	api.HandleFunc("/sync", s.handleSync)

	api.HandleFunc("/notifications", s.handleNotifications)
	api.HandleFunc("/notifications/read", s.handleNotificationRead)
	api.HandleFunc("/notifications/settings", s.handleNotificationSettings)

	api.HandleFunc("/exports", s.handleExports)
	api.HandleFunc("/exports/download", s.handleExportDownload)
	api.HandleFunc("/scan", s.handleScan)

	api.HandleFunc("/tasks", s.handleTasks)
	api.HandleFunc("/tasks/get", s.handleTaskGet)
	api.HandleFunc("/tasks/cancel", s.handleTaskCancel)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/metrics", metrics.Handler())
	root.HandleFunc("/ui/weight", s.uiWeight)
	root.HandleFunc("/ui/meals", s.uiMeals)
	root.HandleFunc("/ui/sleep", s.uiSleep)
	root.HandleFunc("/ui/water", s.uiWater)
	root.HandleFunc("/ui/goals", s.uiGoals)
	root.HandleFunc("/ui/quicklog", s.uiQuickLog)
	root.HandleFunc("/ui/challenges/join", s.uiChallengeJoin)
	root.HandleFunc("/ui/devices/connect", s.uiDeviceConnect)
	root.HandleFunc("/ui/devices/disconnect", s.uiDeviceDisconnect)
	root.HandleFunc("/ui/devices/preferences", s.uiDevicePreferences)
	root.HandleFunc("/ui/sync", s.uiSync)
	root.HandleFunc("/ui/notifications/read", s.uiNotificationRead)
	root.HandleFunc("/ui/notifications/toggle", s.uiNotificationToggle)
	root.HandleFunc("/ui/exports", s.uiExport)
	root.HandleFunc("/ui/scan", s.uiScan)
	root.HandleFunc("/", s.handleShell)

	return chain(root,
		middleware.RequestID,
		middleware.RealIP,
		s.loggingMiddleware,
		middleware.Recoverer,
		withNoCache,
		s.identityMiddleware,
	)
}
