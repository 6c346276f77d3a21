package inmemdb

import (
	"sync"

	"github.com/cumaze/registro-consorcio/core/academic"
	"github.com/cumaze/registro-consorcio/core/branding"
)

type (
	// DB is the session store. It lives as long as the process.
	DB struct {
		roster *rosterTable
		asset  *assetTable
	}

	rosterTable struct {
		mutex  sync.RWMutex
		roster academic.Roster
		pools  map[academic.Tier]academic.Specialization
	}

	assetTable struct {
		mutex sync.RWMutex
		t     map[branding.Role]branding.Image
	}
)

func Open() *DB {
	return &DB{
		roster: &rosterTable{roster: academic.NewRoster(), pools: make(map[academic.Tier]academic.Specialization)},
		asset:  &assetTable{t: make(map[branding.Role]branding.Image)},
	}
}
