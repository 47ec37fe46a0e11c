package recommender

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"app/internal/model"
)

// Algorithm tags reported in the debug block.
const (
	AlgorithmPopular      = "popular-for-new-users"
	AlgorithmSimilar      = "similar-to-first-course"
	AlgorithmSameCategory = "same-category-guarantee"
	AlgorithmStandard     = "standard-scoring"
	AlgorithmRemote       = "remote-model"
)

// ScoredCourse is a catalog record plus the score it earned during ranking.
// Score is nil for the popularity ranking, which attaches no per-course score.
type ScoredCourse struct {
	model.Course
	Score *float64 `json:"score,omitempty"`
}

// Debug describes how a recommendation list was produced.
type Debug struct {
	ViewedCourses     int      `json:"viewed_courses"`
	ResolvedCourses   int      `json:"resolved_courses"`
	PreferredSubjects []string `json:"preferred_subjects"`
	PreferredLevels   []string `json:"preferred_levels"`
	Algorithm         string   `json:"algorithm"`
	ReturnedCourseIDs []string `json:"returned_course_ids"`
	SameSubjectCount  int      `json:"same_subject_count"`
}

// Result is a ranked, truncated recommendation list plus its rationale.
type Result struct {
	Recommendations []ScoredCourse `json:"recommendations"`
	Message         string         `json:"message"`
	Debug           Debug          `json:"debug"`
}

type scoredCourse struct {
	course model.Course
	score  float64
}

// Recommend ranks catalog courses for a user. views holds the user's recent
// view events, most recent first, at most 10 entries; courses is the full
// catalog in file order. topK must be >= 1 — callers validate it. The random
// score terms are fresh draws on every call, so repeated calls with the same
// inputs will not produce identical orderings.
func Recommend(views []model.CourseView, courses []model.Course, topK int) *Result {
	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	switch {
	case len(views) == 0:
		return recommendPopular(courses, topK, views)
	case len(views) == 1:
		seed, ok := byID[views[0].CourseID]
		if !ok {
			// The one view points at a course the catalog no longer carries;
			// treat the history as empty.
			return recommendPopular(courses, topK, views)
		}
		return recommendSimilar(seed, courses, topK)
	default:
		return recommendFromHistory(views, courses, byID, topK)
	}
}

// popularity is the cold-regime ranking criterion.
func popularity(c model.Course) int {
	return c.NumSubscribers + 10*c.NumReviews
}

// recommendPopular ranks the whole catalog by popularity, descending, with
// ties kept in catalog order. Used for users with no usable view history.
func recommendPopular(courses []model.Course, topK int, views []model.CourseView) *Result {
	ranked := make([]model.Course, len(courses))
	copy(ranked, courses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return popularity(ranked[i]) > popularity(ranked[j])
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	recs := make([]ScoredCourse, 0, len(ranked))
	for _, c := range ranked {
		recs = append(recs, ScoredCourse{Course: c})
	}
	return &Result{
		Recommendations: recs,
		Message:         "Welcome! Here are our most popular courses to get you started.",
		Debug: Debug{
			ViewedCourses:     len(views),
			PreferredSubjects: []string{},
			PreferredLevels:   []string{},
			Algorithm:         AlgorithmPopular,
			ReturnedCourseIDs: courseIDs(recs),
		},
	}
}

// recommendSimilar scores every candidate against the single viewed course.
// The subject match dominates (100 > the 10-point noise ceiling), so same-
// subject candidates always outrank differing-subject ones.
func recommendSimilar(seed model.Course, courses []model.Course, topK int) *Result {
	scored := make([]scoredCourse, 0, len(courses))
	for _, c := range courses {
		if c.ID == seed.ID {
			continue
		}
		score := 0.0
		if c.Subject == seed.Subject {
			score += 100
		}
		if c.Level == seed.Level {
			score += 50
		}
		score += math.Min(float64(c.NumSubscribers)/10000, 20)
		score += rand.Float64() * 10
		scored = append(scored, scoredCourse{course: c, score: score})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	recs := attachScores(scored, topK)

	return &Result{
		Recommendations: recs,
		Message:         fmt.Sprintf("Since you viewed %q, you might also like these courses.", seed.Title),
		Debug: Debug{
			ViewedCourses:     1,
			ResolvedCourses:   1,
			PreferredSubjects: []string{seed.Subject},
			PreferredLevels:   []string{seed.Level},
			Algorithm:         AlgorithmSimilar,
			ReturnedCourseIDs: courseIDs(recs),
		},
	}
}

// recommendFromHistory scores candidates against the user's subject and
// level preference sets, then guarantees up to two picks sharing the most
// recently viewed course's subject before filling in from other subjects.
func recommendFromHistory(views []model.CourseView, courses []model.Course, byID map[string]model.Course, topK int) *Result {
	viewed := make(map[string]bool, len(views))
	for _, v := range views {
		viewed[v.CourseID] = true
	}

	var subjects, levels []string
	resolved := 0
	for _, v := range views {
		c, ok := byID[v.CourseID]
		if !ok {
			// Stale ids drop out of the preference sets silently.
			continue
		}
		resolved++
		subjects = appendUnique(subjects, c.Subject)
		levels = appendUnique(levels, c.Level)
	}
	subjectSet := toSet(subjects)
	levelSet := toSet(levels)

	scored := make([]scoredCourse, 0, len(courses))
	for _, c := range courses {
		if viewed[c.ID] {
			continue
		}
		score := 0.0
		if subjectSet[c.Subject] {
			score += 200
		}
		if levelSet[c.Level] {
			score += 50
		}
		score += math.Min(float64(c.NumSubscribers)/10000, 5)
		score += rand.Float64() * 2
		scored = append(scored, scoredCourse{course: c, score: score})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	mostRecent, hasMostRecent := byID[views[0].CourseID]

	var picked []scoredCourse
	algorithm := AlgorithmStandard
	sameCount := 0
	message := "Based on your recent viewing history."

	if hasMostRecent {
		algorithm = AlgorithmSameCategory
		sameLimit := 2
		if topK < sameLimit {
			sameLimit = topK
		}

		same := make([]scoredCourse, 0, sameLimit)
		for _, sc := range scored {
			if len(same) == sameLimit {
				break
			}
			if sc.course.Subject == mostRecent.Subject {
				same = append(same, sc)
			}
		}
		otherLimit := topK - len(same)
		other := make([]scoredCourse, 0, otherLimit)
		for _, sc := range scored {
			if len(other) == otherLimit {
				break
			}
			if sc.course.Subject != mostRecent.Subject {
				other = append(other, sc)
			}
		}
		picked = append(append(picked, same...), other...)
		sameCount = len(same)
		message = fmt.Sprintf("Based on your recent views: %d picks in %s plus more from other subjects.", sameCount, mostRecent.Subject)

		// When one bucket runs dry the list can come up short of topK even
		// though unpicked candidates remain; fill from the remaining scored
		// candidates in score order.
		if len(picked) < topK && len(picked) < len(scored) {
			inPicked := make(map[string]bool, len(picked))
			for _, sc := range picked {
				inPicked[sc.course.ID] = true
			}
			for _, sc := range scored {
				if len(picked) == topK {
					break
				}
				if !inPicked[sc.course.ID] {
					picked = append(picked, sc)
				}
			}
		}
	} else {
		picked = scored
		if len(picked) > topK {
			picked = picked[:topK]
		}
	}

	// Final reshuffle with a random comparator. Not a uniform shuffle: the
	// 0.3 threshold makes entries more likely to move toward the front than
	// the back. Check DESIGN.md before changing this.
	sort.Slice(picked, func(i, j int) bool { return rand.Float64() < 0.3 })

	recs := attachScores(picked, topK)
	return &Result{
		Recommendations: recs,
		Message:         message,
		Debug: Debug{
			ViewedCourses:     len(views),
			ResolvedCourses:   resolved,
			PreferredSubjects: subjects,
			PreferredLevels:   levels,
			Algorithm:         algorithm,
			ReturnedCourseIDs: courseIDs(recs),
			SameSubjectCount:  sameCount,
		},
	}
}

// attachScores truncates to topK and converts to the output type, rounding
// scores to 2 decimal places for display.
func attachScores(scored []scoredCourse, topK int) []ScoredCourse {
	if len(scored) > topK {
		scored = scored[:topK]
	}
	recs := make([]ScoredCourse, 0, len(scored))
	for _, sc := range scored {
		s := math.Round(sc.score*100) / 100
		recs = append(recs, ScoredCourse{Course: sc.course, Score: &s})
	}
	return recs
}

func courseIDs(recs []ScoredCourse) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, v := range list {
		set[v] = true
	}
	return set
}
