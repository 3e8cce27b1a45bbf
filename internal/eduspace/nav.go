package eduspace

import "fmt"

type ViewKind string

const (
	ViewDashboard    ViewKind = "dashboard"
	ViewCourses      ViewKind = "courses"
	ViewAssignments  ViewKind = "assignments"
	ViewGrades       ViewKind = "grades"
	ViewDiscussions  ViewKind = "discussions"
	ViewResources    ViewKind = "resources"
	ViewCourseDetail ViewKind = "courseDetail"
	ViewThreadDetail ViewKind = "threadDetail"
)

// NavViews are the top-level views in menu order.
var NavViews = []ViewKind{
	ViewDashboard,
	ViewCourses,
	ViewAssignments,
	ViewGrades,
	ViewDiscussions,
	ViewResources,
}

var viewTitles = map[ViewKind]string{
	ViewDashboard:   "Dashboard",
	ViewCourses:     "Courses",
	ViewAssignments: "Assignments",
	ViewGrades:      "Grades",
	ViewDiscussions: "Discussions",
	ViewResources:   "Resources",
}

// View is the single "current view" tag. Detail views carry the id they show.
type View struct {
	Kind ViewKind
	ID   string
}

func ParseView(name string) (View, error) {
	kind := ViewKind(name)
	if _, ok := viewTitles[kind]; !ok {
		return View{}, fmt.Errorf("unknown view %q", name)
	}
	return View{Kind: kind}, nil
}

func CourseDetail(id string) View {
	return View{Kind: ViewCourseDetail, ID: id}
}

func ThreadDetail(id string) View {
	return View{Kind: ViewThreadDetail, ID: id}
}

func (v View) Title() string {
	return viewTitles[v.Kind]
}

// Back is one level up. Top-level views have nowhere to go back to.
func (v View) Back() (View, bool) {
	switch v.Kind {
	case ViewCourseDetail:
		return View{Kind: ViewCourses}, true
	case ViewThreadDetail:
		return View{Kind: ViewDiscussions}, true
	default:
		return View{}, false
	}
}

// Active is the menu entry to highlight.
func (v View) Active() ViewKind {
	if parent, ok := v.Back(); ok {
		return parent.Kind
	}
	return v.Kind
}

func (v View) Path() string {
	switch v.Kind {
	case ViewCourseDetail:
		return "/eduspace/courses/" + v.ID
	case ViewThreadDetail:
		return "/eduspace/threads/" + v.ID
	default:
		return "/eduspace/view/" + string(v.Kind)
	}
}
