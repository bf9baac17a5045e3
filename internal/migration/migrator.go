// inmo-velar/internal/migration/migrator.go

// Package migration lleva el esquema de la base de datos con migraciones
// versionadas. Cada migración declara su Up y su Down; la tabla
// migration_records registra las aplicadas.
package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Migrator ejecuta las migraciones registradas en orden de versión.
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db}
}

func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// AppliedVersions devuelve el conjunto de versiones ya aplicadas.
func (m *Migrator) AppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool)
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Up aplica todas las migraciones pendientes, en orden de versión.
func (m *Migrator) Up() error {
	applied, err := m.AppliedVersions()
	if err != nil {
		return err
	}

	pendientes := make([]*Migration, len(m.migrations))
	copy(pendientes, m.migrations)
	sort.Slice(pendientes, func(i, j int) bool {
		return pendientes[i].Version < pendientes[j].Version
	})

	for _, mg := range pendientes {
		if applied[mg.Version] {
			continue
		}
		if err := mg.Up(m.db); err != nil {
			return fmt.Errorf("migración %s (%s): %w", mg.Version, mg.Name, err)
		}
		record := MigrationRecord{
			Version:   mg.Version,
			Name:      mg.Name,
			AppliedAt: time.Now(),
		}
		if err := m.db.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// Down revierte la última migración aplicada.
func (m *Migrator) Down() error {
	var last MigrationRecord
	if err := m.db.Order("applied_at DESC").First(&last).Error; err != nil {
		return err
	}

	var target *Migration
	for _, mg := range m.migrations {
		if mg.Version == last.Version {
			target = mg
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migración %s no registrada", last.Version)
	}
	if target.Down != nil {
		if err := target.Down(m.db); err != nil {
			return err
		}
	}
	return m.db.Delete(&MigrationRecord{}, "version = ?", last.Version).Error
}
