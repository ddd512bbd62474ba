package core

import (
	"recruitledger/pkg/domain"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a case-insensitive English collator. Collators are not
// safe for concurrent use, so each sort builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase, collate.Loose)
}

func sortPeople[P domain.PersonFull](people []P) {
	c := newCollator()
	sort.SliceStable(people, func(i, j int) bool {
		a, b := people[i].View(), people[j].View()
		if cmp := c.CompareString(a.LastName, b.LastName); cmp != 0 {
			return cmp < 0
		}
		if cmp := c.CompareString(a.FirstName, b.FirstName); cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})
}

func sortSchools(schools []domain.School) {
	c := newCollator()
	sort.SliceStable(schools, func(i, j int) bool {
		if cmp := c.CompareString(schools[i].Name, schools[j].Name); cmp != 0 {
			return cmp < 0
		}
		return schools[i].ID < schools[j].ID
	})
}

// sortTasks orders dated tasks first by due date, then undated ones, with
// creation time and then id breaking ties.
func sortTasks(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func sortFundingPools(pools []domain.FundingPool) {
	sort.SliceStable(pools, func(i, j int) bool {
		a, b := pools[i], pools[j]
		if a.TeamID != b.TeamID {
			return a.TeamID < b.TeamID
		}
		ac, bc := deref(a.RecruitingCycleID), deref(b.RecruitingCycleID)
		if ac != bc {
			return ac < bc
		}
		if a.PoolType != b.PoolType {
			return a.PoolType < b.PoolType
		}
		return a.ID < b.ID
	})
}

func sortByCreated[T any](items []T, base func(T) domain.Base) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := base(items[i]), base(items[j])
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
