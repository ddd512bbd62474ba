package core

import (
	"recruitledger/pkg/domain"
	"strconv"
	"strings"
)

// FilterAll disables a PersonFilter predicate.
const FilterAll = "all"

// PersonFilter selects hydrated people. Every field is an independent
// predicate; empty or FilterAll matches everyone.
type PersonFilter struct {
	// Search matches case-insensitively against "First Last" and the school name.
	Search   string
	Role     string
	Position string
	State    string
	City     string
	// Rating is a MaxPreps star tier, "1" through "5".
	Rating string
	School string
}

// FilterOptions lists the distinct values present in a people list.
type FilterOptions struct {
	Positions []string `json:"positions"`
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
}

// FilterPeople returns the people matching every predicate of f, preserving order.
func FilterPeople(people []domain.PersonFull, f PersonFilter) []domain.PersonFull {
	out := make([]domain.PersonFull, 0, len(people))
	for _, p := range people {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f PersonFilter) matches(p domain.PersonFull) bool {
	v := p.View()
	player, isPlayer := p.(*domain.PlayerFull)

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		name := strings.ToLower(v.FullName())
		school := ""
		if v.School != nil {
			school = strings.ToLower(v.School.Name)
		}
		if !strings.Contains(name, q) && !strings.Contains(school, q) {
			return false
		}
	}
	if active(f.Role) && string(v.Type) != f.Role {
		return false
	}
	if active(f.Position) && (!isPlayer || !hasPosition(player.Player.Positions, f.Position)) {
		return false
	}
	if active(f.State) && (v.School == nil || v.School.State == nil || string(*v.School.State) != f.State) {
		return false
	}
	if active(f.City) && (v.School == nil || v.School.City == nil || *v.School.City != f.City) {
		return false
	}
	if active(f.Rating) {
		tier, err := strconv.Atoi(f.Rating)
		if err != nil || !isPlayer || player.Rating == nil || player.Rating.MaxPreps == nil || *player.Rating.MaxPreps != tier {
			return false
		}
	}
	if active(f.School) && (v.SchoolID == nil || *v.SchoolID != f.School) {
		return false
	}
	return true
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

func hasPosition(positions []domain.Position, want string) bool {
	for _, p := range positions {
		if string(p) == want {
			return true
		}
	}
	return false
}

// AvailableFilterOptions collects sorted distinct player positions and school
// states and cities from people.
func AvailableFilterOptions(people []domain.PersonFull) FilterOptions {
	positions := map[string]struct{}{}
	states := map[string]struct{}{}
	cities := map[string]struct{}{}
	for _, p := range people {
		if player, ok := p.(*domain.PlayerFull); ok {
			for _, pos := range player.Player.Positions {
				positions[string(pos)] = struct{}{}
			}
		}
		school := p.View().School
		if school == nil {
			continue
		}
		if school.State != nil {
			states[string(*school.State)] = struct{}{}
		}
		if school.City != nil {
			cities[*school.City] = struct{}{}
		}
	}
	return FilterOptions{
		Positions: sortedStrings(positions),
		States:    sortedStrings(states),
		Cities:    sortedStrings(cities),
	}
}
