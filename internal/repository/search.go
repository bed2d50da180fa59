package repository

import (
	"strings"

	"movie-collection/internal/models"
)

// condition is a WHERE fragment that carries exactly the args its
// placeholders consume.
type condition struct {
	expr string
	args []interface{}
}

func searchConditions(f models.SearchFilter) []condition {
	var conds []condition

	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		conds = append(conds, condition{
			expr: "(movies.title ILIKE ? OR movies.director ILIKE ? OR movies.description ILIKE ?)",
			args: []interface{}{pattern, pattern, pattern},
		})
	}
	if g := strings.TrimSpace(f.Genre); g != "" {
		conds = append(conds, condition{
			expr: "movies.genre ILIKE ?",
			args: []interface{}{"%" + escapeLike(g) + "%"},
		})
	}
	if y := strings.TrimSpace(f.Year); y != "" {
		conds = append(conds, condition{
			expr: "movies.year = ?",
			args: []interface{}{y},
		})
	}

	return conds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
