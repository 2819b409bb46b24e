package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fairway-app/internal/model"
	"fairway-app/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	view := CoursesView{
		BaseView:  s.baseView(r, "Courses"),
		Standings: stats.BuildCourseStandings(s.snapshot(), stats.AllSeasons),
	}
	if err := s.templates.Render(w, "courses.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCourseCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	course := model.Course{
		ID:          uuid.NewString(),
		Name:        name,
		Location:    strings.TrimSpace(r.FormValue("location")),
		CourseCount: parsePositiveInt(r.FormValue("course_count"), 1),
		HoleCount:   parsePositiveInt(r.FormValue("hole_count"), 18),
		CreatedAt:   time.Now(),
	}
	if _, err := s.store.CreateCourse(course); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/courses?notice=course_added", http.StatusSeeOther)
}

func (s *Server) handleCourseShow(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	course, ok := s.store.GetCourse(courseID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	standing := stats.CourseStanding{Course: course}
	for _, entry := range stats.BuildCourseStandings(s.snapshot(), stats.AllSeasons) {
		if entry.Course.ID == course.ID {
			standing = entry
			break
		}
	}
	rounds := []model.Round{}
	for _, round := range s.store.ListRounds() {
		if round.CourseID == course.ID {
			rounds = append(rounds, round)
		}
	}
	view := CourseView{
		BaseView: s.baseView(r, course.Name),
		Standing: standing,
		Rounds:   s.roundListItems(rounds),
	}
	if err := s.templates.Render(w, "course_show.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCourseUpdate(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	course, ok := s.store.GetCourse(courseID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	course.Name = name
	course.Location = strings.TrimSpace(r.FormValue("location"))
	course.CourseCount = parsePositiveInt(r.FormValue("course_count"), course.CourseCount)
	course.HoleCount = parsePositiveInt(r.FormValue("hole_count"), course.HoleCount)
	if err := s.store.UpdateCourse(course); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/courses/"+course.ID+"?notice=course_updated", http.StatusSeeOther)
}

func (s *Server) handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if err := s.store.DeleteCourse(courseID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/courses?notice=course_deleted", http.StatusSeeOther)
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
