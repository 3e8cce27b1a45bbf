package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/export"
	"github.com/shrimpsizemoose/eduspace/internal/forms"
	"github.com/shrimpsizemoose/eduspace/internal/gradebook"
	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/store"
	"github.com/shrimpsizemoose/eduspace/internal/views"
)

const (
	sessionCookie = "eduspace_sid"
	xlsxType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) session(r *http.Request) (store.KV, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return h.service.SessionStore(c.Value), true
}

func (h *Handler) gradebookUser(r *http.Request) (*models.CurrentUser, error) {
	session, ok := h.session(r)
	if !ok {
		return nil, nil
	}
	return gradebook.CurrentUser(r.Context(), session)
}

// gradebookPage fills the layout. The PA banner shows on every page, logged in or not.
func (h *Handler) gradebookPage(r *http.Request, user *models.CurrentUser, title string) (views.Page, error) {
	page := views.Page{Title: title, App: "gradebook"}
	if user != nil {
		page.User = user.Username
		page.Role = string(user.Role)
	}
	banner, err := h.service.Grades.Announcement(r.Context())
	if err != nil {
		return page, err
	}
	page.Banner = banner
	return page, nil
}

func (h *Handler) HandleGradebookHome(w http.ResponseWriter, r *http.Request) {
	user, err := h.gradebookUser(r)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if user == nil {
		seeOther(w, r, "/gradebook/login")
		return
	}

	if user.Role == models.RoleTeacher {
		h.renderTeacher(w, r, user, http.StatusOK, nil, "")
		return
	}
	h.renderStudent(w, r, user, false)
}

type teacherPage struct {
	View         *gradebook.TeacherView
	Announcement views.FormData
}

func (h *Handler) renderTeacher(w http.ResponseWriter, r *http.Request, user *models.CurrentUser, status int, values forms.Values, message string) {
	view, err := h.service.Grades.TeacherView(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}
	page, err := h.gradebookPage(r, user, "Grade book")
	if err != nil {
		h.serverError(w, err)
		return
	}
	page.Error = message
	page.Content = teacherPage{
		View:         view,
		Announcement: views.FormData{Form: forms.Announcement, Values: values},
	}
	h.render(w, status, "gradebook_teacher", page)
}

func (h *Handler) renderStudent(w http.ResponseWriter, r *http.Request, user *models.CurrentUser, printMode bool) {
	view, err := h.service.Grades.StudentView(r.Context(), user.Username)
	if err != nil {
		h.serverError(w, err)
		return
	}
	page, err := h.gradebookPage(r, user, "My grades")
	if err != nil {
		h.serverError(w, err)
		return
	}
	page.Print = printMode
	page.Content = view
	h.render(w, http.StatusOK, "gradebook_student", page)
}

func (h *Handler) renderGradebookLogin(w http.ResponseWriter, r *http.Request, status int, values forms.Values, message string) {
	page, err := h.gradebookPage(r, nil, "Grade book login")
	if err != nil {
		h.serverError(w, err)
		return
	}
	page.Error = message
	page.Content = views.LoginPage{
		Form:     views.FormData{Form: forms.GradebookLogin, Values: values},
		Teachers: gradebook.Teachers(),
		Students: gradebook.Students(),
	}
	h.render(w, status, "login", page)
}

func (h *Handler) HandleGradebookLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderGradebookLogin(w, r, http.StatusOK, nil, "")
}

func (h *Handler) HandleGradebookLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	values, err := forms.GradebookLogin.Bind(r.PostForm)
	if fe, ok := fieldError(err); ok {
		h.renderGradebookLogin(w, r, http.StatusUnprocessableEntity, submitted(r, forms.GradebookLogin), fe.Error())
		return
	}

	sid := uuid.NewString()
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		sid = c.Value
	}

	user, err := gradebook.SetCurrentUser(r.Context(), h.service.SessionStore(sid), values.Get("username"))
	if errors.Is(err, gradebook.ErrNotOnRoster) {
		h.renderGradebookLogin(w, r, http.StatusUnprocessableEntity, values, "Unknown user. Try one of the names below.")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	logger.Info.Printf("Grade book login: %s (%s)", user.Username, user.Role)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleGradebookLogout(w http.ResponseWriter, r *http.Request) {
	if session, ok := h.session(r); ok {
		if err := gradebook.ClearCurrentUser(r.Context(), session); err != nil {
			h.serverError(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	seeOther(w, r, "/gradebook/login")
}

// HandlePrint is the student's own grades without any controls.
func (h *Handler) HandlePrint(w http.ResponseWriter, r *http.Request) {
	user, err := h.gradebookUser(r)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if user == nil {
		seeOther(w, r, "/gradebook/login")
		return
	}
	if user.Role != models.RoleStudent {
		page, _ := h.gradebookPage(r, user, "")
		h.renderError(w, http.StatusForbidden, page, "Printing is for students. Teachers can download the spreadsheet.")
		return
	}
	h.renderStudent(w, r, user, true)
}

type teacherHandler func(w http.ResponseWriter, r *http.Request, user *models.CurrentUser)

// teacherOnly sends anonymous visitors to the login page and students to a 403.
func (h *Handler) teacherOnly(next teacherHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.gradebookUser(r)
		if err != nil {
			h.serverError(w, err)
			return
		}
		if user == nil {
			seeOther(w, r, "/gradebook/login")
			return
		}
		if user.Role != models.RoleTeacher {
			page, _ := h.gradebookPage(r, user, "")
			h.renderError(w, http.StatusForbidden, page, "Only teachers can do that.")
			return
		}
		next(w, r, user)
	}
}

func (h *Handler) rowError(w http.ResponseWriter, r *http.Request, user *models.CurrentUser, err error) {
	switch {
	case errors.Is(err, gradebook.ErrUnknownStudent), errors.Is(err, gradebook.ErrRowNotFound):
		page, _ := h.gradebookPage(r, user, "")
		h.renderError(w, http.StatusNotFound, page, err.Error())
	case errors.Is(err, gradebook.ErrUnknownField):
		page, _ := h.gradebookPage(r, user, "")
		h.renderError(w, http.StatusBadRequest, page, err.Error())
	default:
		h.serverError(w, err)
	}
}

func (h *Handler) HandleAddRow(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	if err := h.service.Grades.AddRow(r.Context(), r.PathValue("student")); err != nil {
		h.rowError(w, r, user, err)
		return
	}
	seeOther(w, r, "/gradebook/")
}

func rowIndex(r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	return idx, err == nil
}

func (h *Handler) HandleEditRow(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	idx, ok := rowIndex(r)
	if !ok {
		http.Error(w, "Invalid row", http.StatusBadRequest)
		return
	}

	err := h.service.Grades.UpdateRow(
		r.Context(),
		r.PathValue("student"),
		idx,
		r.PostFormValue("field"),
		r.PostFormValue("value"),
	)
	if err != nil {
		h.rowError(w, r, user, err)
		return
	}
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleDeleteRow(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	idx, ok := rowIndex(r)
	if !ok {
		http.Error(w, "Invalid row", http.StatusBadRequest)
		return
	}
	if err := h.service.Grades.DeleteRow(r.Context(), r.PathValue("student"), idx); err != nil {
		h.rowError(w, r, user, err)
		return
	}
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleLock(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	locked, err := strconv.ParseBool(r.PostFormValue("locked"))
	if err != nil {
		http.Error(w, "locked must be true or false", http.StatusBadRequest)
		return
	}
	if err := h.service.Grades.SetLocked(r.Context(), locked); err != nil {
		h.serverError(w, err)
		return
	}
	logger.Info.Printf("%s set grades locked=%t", user.Username, locked)
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleAnnounce(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	values, err := forms.Announcement.Bind(r.PostForm)
	if fe, ok := fieldError(err); ok {
		h.renderTeacher(w, r, user, http.StatusUnprocessableEntity, submitted(r, forms.Announcement), fe.Error())
		return
	}

	err = h.service.Grades.Broadcast(r.Context(), values.Get("message"))
	if errors.Is(err, gradebook.ErrEmptyMessage) {
		h.renderTeacher(w, r, user, http.StatusUnprocessableEntity, values, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	logger.Info.Printf("%s broadcast a PA announcement", user.Username)
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleClearAnnouncement(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	if err := h.service.Grades.ClearAnnouncement(r.Context()); err != nil {
		h.serverError(w, err)
		return
	}
	logger.Info.Printf("%s stopped the PA announcement", user.Username)
	seeOther(w, r, "/gradebook/")
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request, user *models.CurrentUser) {
	book, err := h.service.Grades.Book(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(book, &buf); err != nil {
		h.serverError(w, err)
		return
	}

	logger.Debug.Printf("%s downloaded the grade book", user.Username)
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="grades.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error.Printf("Failed to send grade book export: %v", err)
	}
}
