package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/eduspace"
	"github.com/shrimpsizemoose/eduspace/internal/forms"
	"github.com/shrimpsizemoose/eduspace/internal/views"
)

const userCookie = "eduspace_user"

// formViews is where each "new" form goes back to.
var formViews = map[string]eduspace.ViewKind{
	forms.Course.Name:     eduspace.ViewCourses,
	forms.Assignment.Name: eduspace.ViewAssignments,
	forms.Grade.Name:      eduspace.ViewGrades,
	forms.Thread.Name:     eduspace.ViewDiscussions,
}

// usernames are free text, so the cookie carries them base64 encoded
func eduspaceUser(r *http.Request) string {
	c, err := r.Cookie(userCookie)
	if err != nil {
		return ""
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(raw)
}

func setEduspaceUser(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(username)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// state opens the logged-in user's workspace or sends them to the login page.
func (h *Handler) state(w http.ResponseWriter, r *http.Request) (*eduspace.State, bool) {
	username := eduspaceUser(r)
	if username == "" {
		seeOther(w, r, "/eduspace/login")
		return nil, false
	}
	st, err := h.service.Workspace.Open(r.Context(), username)
	if err != nil {
		h.serverError(w, err)
		return nil, false
	}
	return st, true
}

func (h *Handler) eduspacePage(st *eduspace.State, v eduspace.View, title string) views.Page {
	page := views.Page{Title: title, App: "eduspace"}
	if st != nil {
		page.User = st.User
	}
	for _, kind := range eduspace.NavViews {
		nav := eduspace.View{Kind: kind}
		page.Nav = append(page.Nav, views.NavItem{
			Label:  nav.Title(),
			Path:   nav.Path(),
			Active: v.Active() == kind,
		})
	}
	if back, ok := v.Back(); ok {
		page.Back = back.Path()
	}
	return page
}

func (h *Handler) HandleEduspaceHome(w http.ResponseWriter, r *http.Request) {
	if eduspaceUser(r) == "" {
		seeOther(w, r, "/eduspace/login")
		return
	}
	seeOther(w, r, eduspace.View{Kind: eduspace.ViewDashboard}.Path())
}

func (h *Handler) renderLogin(w http.ResponseWriter, status int, values forms.Values, message string) {
	h.render(w, status, "login", views.Page{
		Title: "Welcome to EduSpace",
		App:   "eduspace",
		Error: message,
		Content: views.LoginPage{
			Form: views.FormData{Form: forms.Login, Values: values},
		},
	})
}

func (h *Handler) HandleEduspaceLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, http.StatusOK, nil, "")
}

func (h *Handler) HandleEduspaceLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	values, err := forms.Login.Bind(r.PostForm)
	if fe, ok := fieldError(err); ok {
		h.renderLogin(w, http.StatusUnprocessableEntity, submitted(r, forms.Login), fe.Error())
		return
	}

	st, err := h.service.Workspace.Login(r.Context(), values.Get("username"))
	if errors.Is(err, eduspace.ErrEmptyUsername) {
		h.renderLogin(w, http.StatusUnprocessableEntity, nil, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	setEduspaceUser(w, st.User)
	seeOther(w, r, eduspace.View{Kind: eduspace.ViewDashboard}.Path())
}

func (h *Handler) HandleEduspaceLogout(w http.ResponseWriter, r *http.Request) {
	if username := eduspaceUser(r); username != "" {
		logger.Info.Printf("User %s logged out", username)
	}
	http.SetCookie(w, &http.Cookie{Name: userCookie, Path: "/", MaxAge: -1})
	seeOther(w, r, "/eduspace/login")
}

func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}

	v, err := eduspace.ParseView(r.PathValue("view"))
	if err != nil {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, eduspace.View{}, ""), err.Error())
		return
	}
	h.renderView(w, http.StatusOK, st, v, "")
}

// renderView draws one of the top-level views, with an optional error alert.
func (h *Handler) renderView(w http.ResponseWriter, status int, st *eduspace.State, v eduspace.View, message string) {
	page := h.eduspacePage(st, v, v.Title())
	page.Error = message

	switch v.Kind {
	case eduspace.ViewDashboard:
		page.Content = eduspace.Dashboard(st)
	case eduspace.ViewCourses:
		page.Content = eduspace.Courses(st)
	case eduspace.ViewAssignments:
		page.Content = eduspace.Assignments(st)
	case eduspace.ViewGrades:
		page.Content = eduspace.Grades(st)
	case eduspace.ViewDiscussions:
		page.Content = eduspace.Discussions(st)
	case eduspace.ViewResources:
		page.Content = eduspace.Resources()
	}
	h.render(w, status, string(v.Kind), page)
}

func (h *Handler) HandleCourseDetail(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	v := eduspace.CourseDetail(id)
	detail, err := eduspace.CourseDetailOf(st, id)
	if errors.Is(err, eduspace.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, v, ""), "That course does not exist anymore.")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	page := h.eduspacePage(st, v, detail.Course.Title)
	page.Content = detail
	h.render(w, http.StatusOK, "course_detail", page)
}

type threadPage struct {
	View  *eduspace.ThreadDetailView
	Reply views.FormData
}

func (h *Handler) renderThread(w http.ResponseWriter, status int, st *eduspace.State, id string, values forms.Values, message string) {
	v := eduspace.ThreadDetail(id)
	detail, err := eduspace.ThreadDetailOf(st, id, h.service.Config.Display.TimestampFormat)
	if errors.Is(err, eduspace.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, v, ""), "That thread does not exist anymore.")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	reply := forms.Reply
	reply.Action = "/eduspace/threads/" + id + "/reply"

	page := h.eduspacePage(st, v, detail.Thread.Title)
	page.Error = message
	page.Content = threadPage{
		View:  detail,
		Reply: views.FormData{Form: reply, Values: values},
	}
	h.render(w, status, "thread_detail", page)
}

func (h *Handler) HandleThreadDetail(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	h.renderThread(w, http.StatusOK, st, r.PathValue("id"), nil, "")
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, st *eduspace.State, name string, values forms.Values, message string) {
	form, err := eduspace.FormFor(st, name)
	if errors.Is(err, eduspace.ErrNoCourses) {
		h.renderView(w, http.StatusUnprocessableEntity, st, eduspace.View{Kind: formViews[name]}, "Add a course first")
		return
	}
	if errors.Is(err, eduspace.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, eduspace.View{}, ""), err.Error())
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}

	parent := eduspace.View{Kind: formViews[name]}
	page := h.eduspacePage(st, parent, form.Submit)
	page.Back = parent.Path()
	page.Error = message
	page.Content = views.FormData{Form: form, Values: values}
	h.render(w, status, "new_form", page)
}

func (h *Handler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	h.renderForm(w, http.StatusOK, st, r.PathValue("form"), nil, "")
}

// submit binds the named form and runs op. Validation failures come back as
// the same form with the message; nothing is written.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, name string, op func(context.Context, *eduspace.State, forms.Values) error) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := forms.ByName[name]
	values, err := form.Bind(r.PostForm)
	if fe, ok := fieldError(err); ok {
		h.renderForm(w, http.StatusUnprocessableEntity, st, name, submitted(r, form), fe.Error())
		return
	}

	err = op(r.Context(), st, values)
	if errors.Is(err, eduspace.ErrNoCourses) {
		h.renderView(w, http.StatusUnprocessableEntity, st, eduspace.View{Kind: formViews[name]}, "Add a course first")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	seeOther(w, r, eduspace.View{Kind: formViews[name]}.Path())
}

// mutate runs a by-id operation and goes back to the given view.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, next eduspace.ViewKind, op func(context.Context, *eduspace.State, string) error) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}

	err := op(r.Context(), st, r.PathValue("id"))
	if errors.Is(err, eduspace.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, eduspace.View{Kind: next}, ""), err.Error())
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	seeOther(w, r, eduspace.View{Kind: next}.Path())
}

func (h *Handler) HandleAddCourse(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, forms.Course.Name, func(ctx context.Context, st *eduspace.State, in forms.Values) error {
		_, err := h.service.Workspace.AddCourse(ctx, st, in)
		return err
	})
}

func (h *Handler) HandleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, eduspace.ViewCourses, h.service.Workspace.DeleteCourse)
}

func (h *Handler) HandleAddAssignment(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, forms.Assignment.Name, func(ctx context.Context, st *eduspace.State, in forms.Values) error {
		_, err := h.service.Workspace.AddAssignment(ctx, st, in)
		return err
	})
}

func (h *Handler) HandleToggleAssignment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, eduspace.ViewAssignments, func(ctx context.Context, st *eduspace.State, id string) error {
		_, err := h.service.Workspace.ToggleAssignment(ctx, st, id)
		return err
	})
}

func (h *Handler) HandleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, eduspace.ViewAssignments, h.service.Workspace.DeleteAssignment)
}

func (h *Handler) HandleAddGrade(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, forms.Grade.Name, func(ctx context.Context, st *eduspace.State, in forms.Values) error {
		_, err := h.service.Workspace.AddGrade(ctx, st, in)
		return err
	})
}

func (h *Handler) HandleDeleteGrade(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, eduspace.ViewGrades, h.service.Workspace.DeleteGrade)
}

func (h *Handler) HandleAddThread(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, forms.Thread.Name, func(ctx context.Context, st *eduspace.State, in forms.Values) error {
		_, err := h.service.Workspace.AddThread(ctx, st, in)
		return err
	})
}

func (h *Handler) HandleDeleteThread(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, eduspace.ViewDiscussions, h.service.Workspace.DeleteThread)
}

func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	values, err := forms.Reply.Bind(r.PostForm)
	if fe, ok := fieldError(err); ok {
		h.renderThread(w, http.StatusUnprocessableEntity, st, id, submitted(r, forms.Reply), fe.Error())
		return
	}

	_, err = h.service.Workspace.Reply(r.Context(), st, id, values)
	if errors.Is(err, eduspace.ErrNotFound) {
		h.renderError(w, http.StatusNotFound, h.eduspacePage(st, eduspace.View{Kind: eduspace.ViewDiscussions}, ""), "That thread does not exist anymore.")
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	seeOther(w, r, eduspace.ThreadDetail(id).Path())
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	st, ok := h.state(w, r)
	if !ok {
		return
	}

	q := r.URL.Query().Get("q")
	page := h.eduspacePage(st, eduspace.View{}, "Search")
	page.Query = q
	page.Content = eduspace.Search(st, q)
	h.render(w, http.StatusOK, "search", page)
}
