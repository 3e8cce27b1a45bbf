package gradebook

import (
	"sort"

	"github.com/shrimpsizemoose/eduspace/internal/models"
)

// roster is the compiled-in role table. It is never persisted.
var roster = map[string]models.Role{
	"mr.harris":  models.RoleTeacher,
	"ms.nguyen":  models.RoleTeacher,
	"alice":      models.RoleStudent,
	"bob":        models.RoleStudent,
	"charlie":    models.RoleStudent,
	"dana":       models.RoleStudent,
	"eli.moreno": models.RoleStudent,
}

func RoleOf(username string) (models.Role, bool) {
	role, ok := roster[username]
	return role, ok
}

func IsStudent(username string) bool {
	role, ok := roster[username]
	return ok && role == models.RoleStudent
}

func IsTeacher(username string) bool {
	role, ok := roster[username]
	return ok && role == models.RoleTeacher
}

// Students lists roster students in name order.
func Students() []string {
	return withRole(models.RoleStudent)
}

func Teachers() []string {
	return withRole(models.RoleTeacher)
}

func withRole(want models.Role) []string {
	var out []string
	for name, role := range roster {
		if role == want {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
