package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/app"
	"github.com/shrimpsizemoose/eduspace/internal/forms"
	"github.com/shrimpsizemoose/eduspace/internal/metrics"
	"github.com/shrimpsizemoose/eduspace/internal/views"
)

type Handler struct {
	service *app.Service
	views   *views.Renderer
}

func NewHandler(service *app.Service, renderer *views.Renderer) *Handler {
	return &Handler{
		service: service,
		views:   renderer,
	}
}

// Routes registers both apps, the index page and /metrics on one mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.HandleIndex)

	mux.HandleFunc("GET /eduspace/{$}", h.HandleEduspaceHome)
	mux.HandleFunc("GET /eduspace/login", h.HandleEduspaceLoginPage)
	mux.HandleFunc("POST /eduspace/login", h.HandleEduspaceLogin)
	mux.HandleFunc("POST /eduspace/logout", h.HandleEduspaceLogout)
	mux.HandleFunc("GET /eduspace/view/{view}", h.HandleView)
	mux.HandleFunc("GET /eduspace/courses/{id}", h.HandleCourseDetail)
	mux.HandleFunc("GET /eduspace/threads/{id}", h.HandleThreadDetail)
	mux.HandleFunc("GET /eduspace/new/{form}", h.HandleNewForm)
	mux.HandleFunc("GET /eduspace/search", h.HandleSearch)
	mux.HandleFunc("POST /eduspace/courses", h.HandleAddCourse)
	mux.HandleFunc("POST /eduspace/courses/{id}/delete", h.HandleDeleteCourse)
	mux.HandleFunc("POST /eduspace/assignments", h.HandleAddAssignment)
	mux.HandleFunc("POST /eduspace/assignments/{id}/toggle", h.HandleToggleAssignment)
	mux.HandleFunc("POST /eduspace/assignments/{id}/delete", h.HandleDeleteAssignment)
	mux.HandleFunc("POST /eduspace/grades", h.HandleAddGrade)
	mux.HandleFunc("POST /eduspace/grades/{id}/delete", h.HandleDeleteGrade)
	mux.HandleFunc("POST /eduspace/threads", h.HandleAddThread)
	mux.HandleFunc("POST /eduspace/threads/{id}/reply", h.HandleReply)
	mux.HandleFunc("POST /eduspace/threads/{id}/delete", h.HandleDeleteThread)

	mux.HandleFunc("GET /gradebook/{$}", h.HandleGradebookHome)
	mux.HandleFunc("GET /gradebook/login", h.HandleGradebookLoginPage)
	mux.HandleFunc("POST /gradebook/login", h.HandleGradebookLogin)
	mux.HandleFunc("POST /gradebook/logout", h.HandleGradebookLogout)
	mux.HandleFunc("GET /gradebook/print", h.HandlePrint)
	mux.HandleFunc("GET /gradebook/export.xlsx", h.teacherOnly(h.HandleExport))
	mux.HandleFunc("POST /gradebook/students/{student}/rows", h.teacherOnly(h.HandleAddRow))
	mux.HandleFunc("POST /gradebook/students/{student}/rows/{idx}/edit", h.teacherOnly(h.HandleEditRow))
	mux.HandleFunc("POST /gradebook/students/{student}/rows/{idx}/delete", h.teacherOnly(h.HandleDeleteRow))
	mux.HandleFunc("POST /gradebook/lock", h.teacherOnly(h.HandleLock))
	mux.HandleFunc("POST /gradebook/announcement", h.teacherOnly(h.HandleAnnounce))
	mux.HandleFunc("POST /gradebook/announcement/clear", h.teacherOnly(h.HandleClearAnnouncement))

	mux.Handle("GET /metrics", promhttp.Handler())

	return instrument(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument labels by route pattern so ids in paths do not blow up cardinality.
func instrument(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.WithLabelValues(
			path,
			r.Method,
			strconv.Itoa(rec.status),
		).Observe(time.Since(start).Seconds())
	})
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index", views.Page{Title: "Classroom demos"})
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data views.Page) {
	if err := h.views.Render(w, status, page, data); err != nil {
		logger.Error.Printf("Failed to render %s: %v", page, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, status int, page views.Page, message string) {
	page.Title = http.StatusText(status)
	page.Content = message
	h.render(w, status, "error", page)
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	logger.Error.Printf("ERROR: %v", err)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// submitted keeps what the user typed so a failed form comes back filled in.
func submitted(r *http.Request, form forms.Form) forms.Values {
	values := make(forms.Values, len(form.Fields))
	for _, f := range form.Fields {
		values[f.Name] = strings.TrimSpace(r.PostFormValue(f.Name))
	}
	return values
}

func fieldError(err error) (*forms.FieldError, bool) {
	var fe *forms.FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
