package domain

// IndexSpec declares a secondary index on a top-level payload field.
type IndexSpec struct {
	Field  string
	Unique bool
}

// CollectionSpec declares a collection and its secondary indexes.
type CollectionSpec struct {
	Name    Collection
	Indexes []IndexSpec
}

// Index field names.
const (
	IndexType            = "type"
	IndexSchoolID        = "school_id"
	IndexAssignedCoachID = "assigned_coach_id"
	IndexPersonID        = "person_id"
	IndexPlayerID        = "player_id"
	IndexStatus          = "status"
	IndexFundingPoolID   = "funding_pool_id"
	IndexTeamID          = "team_id"
)

var schema = []CollectionSpec{
	{Name: CollectionPeople, Indexes: []IndexSpec{{Field: IndexType}, {Field: IndexSchoolID}, {Field: IndexAssignedCoachID}}},
	{Name: CollectionPlayers},
	{Name: CollectionCoaches},
	{Name: CollectionStaff},
	{Name: CollectionSchools},
	{Name: CollectionTasks, Indexes: []IndexSpec{{Field: IndexPersonID}, {Field: IndexStatus}}},
	{Name: CollectionPlayerRatings, Indexes: []IndexSpec{{Field: IndexPlayerID, Unique: true}}},
	{Name: CollectionExternalNILDeals, Indexes: []IndexSpec{{Field: IndexPlayerID}}},
	{Name: CollectionInstitutionalAllocations, Indexes: []IndexSpec{{Field: IndexPlayerID}, {Field: IndexFundingPoolID}}},
	{Name: CollectionFundingPools, Indexes: []IndexSpec{{Field: IndexTeamID}}},
}

// Schema returns the collection layout every backend must materialise.
func Schema() []CollectionSpec {
	out := make([]CollectionSpec, len(schema))
	for i, spec := range schema {
		out[i] = CollectionSpec{Name: spec.Name, Indexes: append([]IndexSpec(nil), spec.Indexes...)}
	}
	return out
}

// LookupCollection returns the declaration for c.
func LookupCollection(c Collection) (CollectionSpec, bool) {
	for _, spec := range schema {
		if spec.Name == c {
			return spec, true
		}
	}
	return CollectionSpec{}, false
}

// HasIndex reports whether field is an indexed field of the collection.
func (c CollectionSpec) HasIndex(field string) bool {
	for _, idx := range c.Indexes {
		if idx.Field == field {
			return true
		}
	}
	return false
}

// UniqueIndexes returns the fields carrying a uniqueness constraint.
func (c CollectionSpec) UniqueIndexes() []string {
	var fields []string
	for _, idx := range c.Indexes {
		if idx.Unique {
			fields = append(fields, idx.Field)
		}
	}
	return fields
}

// Record is implemented by every persisted row.
type Record interface {
	RecordID() string
	IndexValues() map[string]string
}

// IndexValues implements Record.
func (School) IndexValues() map[string]string { return nil }

// IndexValues implements Record.
func (p Person) IndexValues() map[string]string {
	return map[string]string{
		IndexType:            string(p.Type),
		IndexSchoolID:        deref(p.SchoolID),
		IndexAssignedCoachID: deref(p.AssignedCoachID),
	}
}

// RecordID implements Record; extension rows share the person's id.
func (p PlayerProfile) RecordID() string { return p.PersonID }

// IndexValues implements Record.
func (PlayerProfile) IndexValues() map[string]string { return nil }

// RecordID implements Record.
func (c CoachProfile) RecordID() string { return c.PersonID }

// IndexValues implements Record.
func (CoachProfile) IndexValues() map[string]string { return nil }

// RecordID implements Record.
func (s StaffProfile) RecordID() string { return s.PersonID }

// IndexValues implements Record.
func (StaffProfile) IndexValues() map[string]string { return nil }

// IndexValues implements Record.
func (r PlayerRating) IndexValues() map[string]string {
	return map[string]string{IndexPlayerID: r.PlayerID}
}

// IndexValues implements Record.
func (d ExternalNILDeal) IndexValues() map[string]string {
	return map[string]string{IndexPlayerID: d.PlayerID}
}

// IndexValues implements Record.
func (a InstitutionalAllocation) IndexValues() map[string]string {
	return map[string]string{IndexPlayerID: a.PlayerID, IndexFundingPoolID: deref(a.FundingPoolID)}
}

// IndexValues implements Record.
func (p FundingPool) IndexValues() map[string]string {
	return map[string]string{IndexTeamID: p.TeamID}
}

// IndexValues implements Record.
func (t Task) IndexValues() map[string]string {
	return map[string]string{IndexPersonID: t.PersonID, IndexStatus: string(t.Status)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
