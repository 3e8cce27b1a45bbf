package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/eduspace/internal/forms"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, page := range []string{
		"index", "login", "error", "new_form", "search",
		"dashboard", "courses", "assignments", "grades", "discussions", "resources",
		"course_detail", "thread_detail",
		"gradebook_teacher", "gradebook_student",
	} {
		assert.Contains(t, r.pages, page)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	t.Run("layout wraps the page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusTeapot, "error", Page{
			Title:   "Oops",
			App:     "gradebook",
			User:    "alice",
			Role:    "student",
			Banner:  "Snow day",
			Content: "<b>escaped</b>",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

		body := rec.Body.String()
		assert.Contains(t, body, "Grade Book")
		assert.Contains(t, body, "alice (student)")
		assert.Contains(t, body, "Snow day")
		assert.Contains(t, body, "&lt;b&gt;escaped&lt;/b&gt;")
		assert.Contains(t, body, `action="/gradebook/logout"`)
	})

	t.Run("form partial keeps values", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "new_form", Page{
			App: "eduspace",
			Content: FormData{
				Form: forms.Course.WithChoices("desc", []forms.Choice{
					{Value: "a", Label: "First"},
					{Value: "b", Label: "Second"},
				}),
				Values: forms.Values{"title": "Chemistry", "desc": "b"},
			},
		})
		require.NoError(t, err)
		body := rec.Body.String()
		assert.Contains(t, body, `value="Chemistry"`)
		assert.Contains(t, body, `<option value="b" selected>Second</option>`)
		assert.Contains(t, body, `action="/eduspace/courses"`)
	})

	t.Run("print hides the header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := r.Render(rec, http.StatusOK, "index", Page{App: "gradebook", User: "bob", Print: true})
		require.NoError(t, err)
		assert.NotContains(t, rec.Body.String(), "<header>")
	})

	t.Run("unknown page", func(t *testing.T) {
		err := r.Render(httptest.NewRecorder(), http.StatusOK, "nope", Page{})
		assert.Error(t, err)
	})
}
