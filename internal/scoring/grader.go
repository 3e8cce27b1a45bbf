// internal/scoring/grader.go
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/eduspace/internal/models"
)

// round is half-up, the way the browser apps displayed percentages
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Percent returns score/max as a rounded percentage. A non-positive max yields 0.
func Percent(score, max float64) int {
	if max <= 0 {
		return 0
	}
	return round(score / max * 100)
}

// CourseAverage is the rounded mean of score/max over grades, as a percentage.
func CourseAverage(grades []models.Grade) (int, bool) {
	if len(grades) == 0 {
		return 0, false
	}

	var sum float64
	for _, g := range grades {
		if g.Max > 0 {
			sum += g.Score / g.Max
		}
	}
	return round(sum / float64(len(grades)) * 100), true
}

// ParseScore reports whether a text score is a number.
func ParseScore(score string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Average is the rounded mean of the numeric scores. Non-numeric scores count
// toward neither sum nor count; with no numeric scores there is no average.
func Average(scores []string) (int, bool) {
	var (
		sum   float64
		count int
	)
	for _, s := range scores {
		if v, ok := ParseScore(s); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return round(sum / float64(count)), true
}

func RowAverage(rows []models.GradeRow) (int, bool) {
	scores := make([]string, len(rows))
	for i, r := range rows {
		scores[i] = r.Score
	}
	return Average(scores)
}
