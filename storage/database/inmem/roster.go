package inmemdb

import (
	"github.com/cumaze/registro-consorcio/core/academic"
)

type rosterRepository struct {
	db *rosterTable
}

func NewRosterRepository(db *DB) academic.Repository {
	return &rosterRepository{db: db.roster}
}

var _ academic.Repository = (*rosterRepository)(nil)

func (repo *rosterRepository) LoadRoster() (academic.Roster, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.roster.Clone(), nil
}

func (repo *rosterRepository) SaveRoster(r academic.Roster) error {
	r = r.Clone()
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.roster = r
	return nil
}

func (repo *rosterRepository) ClearRoster() error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.roster = academic.NewRoster()
	return nil
}

func (repo *rosterRepository) SaveSpecialization(spec academic.Specialization) error {
	spec.Pool = append([]academic.CourseTemplate(nil), spec.Pool...)
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.pools[spec.Tier] = spec
	return nil
}

func (repo *rosterRepository) Specializations() (map[academic.Tier]academic.Specialization, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	pools := make(map[academic.Tier]academic.Specialization, len(repo.db.pools))
	for t, spec := range repo.db.pools {
		spec.Pool = append([]academic.CourseTemplate(nil), spec.Pool...)
		pools[t] = spec
	}
	return pools, nil
}

func (repo *rosterRepository) ClearSpecializations() error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.pools = make(map[academic.Tier]academic.Specialization)
	return nil
}
