package model

import "strings"

// Project is an optional organisational tag from a closed set.
type Project string

// Known projects.
const (
	ProjectCompetitive    Project = "Competitive"
	ProjectShinyLivingDex Project = "Shiny Living Dex"
	ProjectLivingDex      Project = "Living Dex"
	ProjectTrophy         Project = "Trophy"
	ProjectOther          Project = "Other"
)

// Projects returns the known projects in display order.
func Projects() []Project {
	return []Project{ProjectCompetitive, ProjectShinyLivingDex, ProjectLivingDex, ProjectTrophy, ProjectOther}
}

// Valid reports whether p is one of the known projects.
func (p Project) Valid() bool {
	switch p {
	case ProjectCompetitive, ProjectShinyLivingDex, ProjectLivingDex, ProjectTrophy, ProjectOther:
		return true
	}
	return false
}

// ParseProject matches s against the known projects ignoring case.
// The empty string parses to the empty project.
func ParseProject(s string) (Project, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	for _, p := range Projects() {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}
