package eduspace

import "strings"

type SearchResult struct {
	Kind  string
	Title string
	Link  string
}

func (r SearchResult) String() string {
	return r.Kind + ": " + r.Title
}

// Search matches titles case-insensitively: courses, then assignments, then threads.
func Search(st *State, query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult
	for _, c := range st.Data.Courses {
		if strings.Contains(strings.ToLower(c.Title), q) {
			results = append(results, SearchResult{Kind: "Course", Title: c.Title, Link: CourseDetail(c.ID).Path()})
		}
	}
	for _, a := range st.Data.Assignments {
		if strings.Contains(strings.ToLower(a.Title), q) {
			results = append(results, SearchResult{Kind: "Assignment", Title: a.Title, Link: View{Kind: ViewAssignments}.Path()})
		}
	}
	for _, t := range st.Data.Discussions {
		if strings.Contains(strings.ToLower(t.Title), q) {
			results = append(results, SearchResult{Kind: "Thread", Title: t.Title, Link: ThreadDetail(t.ID).Path()})
		}
	}
	return results
}
