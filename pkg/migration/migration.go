// Package migration implements a registry-based schema migration runner
// with batch tracking, mirroring the migrate / migrate:rollback /
// migrate:status command set.
package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is one reversible schema change. Name must be unique and is
// conventionally prefixed with a sortable date, e.g.
// "2024_01_01_000001_create_users_table".
type Migration struct {
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

// record is the bookkeeping row in the migrations table.
type record struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:255"`
	Batch     int
	CreatedAt time.Time
}

func (record) TableName() string { return "migrations" }

var registry []Migration

// Register adds a migration to the registry. Called from init() in each
// migration file.
func Register(m Migration) {
	registry = append(registry, m)
}

// Status describes one registered migration and whether it has run.
type Status struct {
	Name    string
	Applied bool
	Batch   int
}

func ensureTable(db *gorm.DB) error {
	return db.AutoMigrate(&record{})
}

func sortedRegistry() []Migration {
	out := make([]Migration, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func appliedSet(db *gorm.DB) (map[string]record, error) {
	var rows []record
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(map[string]record, len(rows))
	for _, r := range rows {
		set[r.Name] = r
	}
	return set, nil
}

// Run applies every pending migration in name order as a single batch.
// Returns the names it applied.
func Run(db *gorm.DB) ([]string, error) {
	if err := ensureTable(db); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	applied, err := appliedSet(db)
	if err != nil {
		return nil, fmt.Errorf("migration: load state: %w", err)
	}

	batch := 1
	for _, r := range applied {
		if r.Batch >= batch {
			batch = r.Batch + 1
		}
	}

	var ran []string
	for _, m := range sortedRegistry() {
		if _, done := applied[m.Name]; done {
			continue
		}
		if err := m.Up(db); err != nil {
			return ran, fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if err := db.Create(&record{Name: m.Name, Batch: batch}).Error; err != nil {
			return ran, fmt.Errorf("migration %s: record: %w", m.Name, err)
		}
		ran = append(ran, m.Name)
	}
	return ran, nil
}

// Rollback reverts the most recent batch in reverse name order and
// returns the names it rolled back.
func Rollback(db *gorm.DB) ([]string, error) {
	if err := ensureTable(db); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	applied, err := appliedSet(db)
	if err != nil {
		return nil, fmt.Errorf("migration: load state: %w", err)
	}
	if len(applied) == 0 {
		return nil, nil
	}

	last := 0
	for _, r := range applied {
		if r.Batch > last {
			last = r.Batch
		}
	}

	byName := make(map[string]Migration, len(registry))
	for _, m := range registry {
		byName[m.Name] = m
	}

	var names []string
	for name, r := range applied {
		if r.Batch == last {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var rolled []string
	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return rolled, fmt.Errorf("migration %s: applied but not registered", name)
		}
		if m.Down != nil {
			if err := m.Down(db); err != nil {
				return rolled, fmt.Errorf("migration %s: down: %w", name, err)
			}
		}
		if err := db.Where("name = ?", name).Delete(&record{}).Error; err != nil {
			return rolled, fmt.Errorf("migration %s: unrecord: %w", name, err)
		}
		rolled = append(rolled, name)
	}
	return rolled, nil
}

// List reports the status of every registered migration in name order.
func List(db *gorm.DB) ([]Status, error) {
	if err := ensureTable(db); err != nil {
		return nil, fmt.Errorf("migration: ensure table: %w", err)
	}

	applied, err := appliedSet(db)
	if err != nil {
		return nil, fmt.Errorf("migration: load state: %w", err)
	}

	var out []Status
	for _, m := range sortedRegistry() {
		s := Status{Name: m.Name}
		if r, ok := applied[m.Name]; ok {
			s.Applied = true
			s.Batch = r.Batch
		}
		out = append(out, s)
	}
	return out, nil
}
