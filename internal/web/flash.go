package web

import "strings"

func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case "player_added":
		return "Player added to the roster."
	case "player_updated":
		return "Player updated."
	case "player_deleted":
		return "Player removed from the roster."
	case "season_added":
		return "Season created."
	case "season_completed":
		return "Season completed."
	case "season_deleted":
		return "Season deleted."
	case "course_added":
		return "Course added."
	case "course_updated":
		return "Course updated."
	case "course_deleted":
		return "Course deleted."
	case "round_added":
		return "Round started."
	case "round_completed":
		return "Round completed."
	case "round_deleted":
		return "Round deleted."
	}
	return ""
}
