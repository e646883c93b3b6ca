// sfcatalog/data/db.go
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Factory is one user-created factory configuration. Items and recipes are
// referenced by class identifier only, never by catalog position.
type Factory struct {
	ID              string
	Name            string
	OutputItemClass string        // ClassName of the item being produced
	RecipeClass     string        // ClassName of the recipe used
	OutputCount     float64       // desired items per minute
	Floor           sql.NullInt64 // optional floor number
}

// RawMaterialInput is an amount of a raw resource the user has available.
type RawMaterialInput struct {
	ItemClass string
	Amount    float64
}

// Theme is the stored UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const themeKey = "theme"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS factories (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		output_item_class VARCHAR(255) NOT NULL,
		recipe_class VARCHAR(255) NOT NULL,
		output_count DOUBLE NOT NULL,
		floor INT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS raw_material_inputs (
		position INT PRIMARY KEY,
		item_class VARCHAR(255) NOT NULL,
		amount DOUBLE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS preferences (
		pref_key VARCHAR(64) PRIMARY KEY,
		pref_value VARCHAR(255) NOT NULL
	)`,
}

// Store persists factories, raw material inputs and preferences in MySQL.
// Factories are cached after the first read.
type Store struct {
	db  *sql.DB
	log *zap.Logger

	factoryCache     map[string]*Factory
	factoryCacheFull bool
	factoryCacheLock sync.RWMutex
}

// OpenStore opens a MySQL connection using the provided DSN, checks it and
// creates the tables if they do not exist yet.
func OpenStore(dsn string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open MySQL: %w", err)
	}
	if pingErr := db.Ping(); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("cannot ping MySQL: %w", pingErr)
	}
	s := NewStore(db, log)
	if err := s.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an already opened database handle.
func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		db:           db,
		log:          log,
		factoryCache: make(map[string]*Factory),
	}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the store's tables.
func (s *Store) EnsureSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// SaveFactory inserts or updates a factory. A factory without an ID gets a new one.
// The stored factory is returned.
func (s *Store) SaveFactory(f Factory) (Factory, error) {
	if f.Name == "" {
		return Factory{}, errors.New("factory name must not be empty")
	}
	if f.OutputCount < 0 {
		return Factory{}, errors.New("output count must not be negative")
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	_, err := s.db.Exec(`
		INSERT INTO factories (id, name, output_item_class, recipe_class, output_count, floor)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			output_item_class = VALUES(output_item_class),
			recipe_class = VALUES(recipe_class),
			output_count = VALUES(output_count),
			floor = VALUES(floor)
	`, f.ID, f.Name, f.OutputItemClass, f.RecipeClass, f.OutputCount, f.Floor)
	if err != nil {
		return Factory{}, fmt.Errorf("save factory %s: %w", f.ID, err)
	}

	stored := f
	s.factoryCacheLock.Lock()
	s.factoryCache[f.ID] = &stored
	s.factoryCacheLock.Unlock()
	return f, nil
}

// dbGetFactory fetches a single factory by ID, consulting the cache first.
func (s *Store) dbGetFactory(id string) (Factory, bool) {
	s.factoryCacheLock.RLock()
	if f, ok := s.factoryCache[id]; ok {
		s.factoryCacheLock.RUnlock()
		return *f, true
	}
	full := s.factoryCacheFull
	s.factoryCacheLock.RUnlock()
	if full {
		return Factory{}, false
	}

	row := s.db.QueryRow(`
		SELECT id, name, output_item_class, recipe_class, output_count, floor
		FROM factories
		WHERE id = ?
	`, id)
	var f Factory
	if err := row.Scan(&f.ID, &f.Name, &f.OutputItemClass, &f.RecipeClass, &f.OutputCount, &f.Floor); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("error querying factory", zap.String("id", id), zap.Error(err))
		}
		return Factory{}, false
	}

	s.factoryCacheLock.Lock()
	s.factoryCache[id] = &f
	s.factoryCacheLock.Unlock()
	return f, true
}

// dbListFactories returns all factories ordered by name, then ID.
func (s *Store) dbListFactories() ([]Factory, error) {
	rows, err := s.db.Query(`
		SELECT id, name, output_item_class, recipe_class, output_count, floor
		FROM factories
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query factories: %w", err)
	}
	defer rows.Close()

	var list []Factory
	cache := make(map[string]*Factory)
	for rows.Next() {
		var f Factory
		if err := rows.Scan(&f.ID, &f.Name, &f.OutputItemClass, &f.RecipeClass, &f.OutputCount, &f.Floor); err != nil {
			s.log.Warn("error scanning factory row", zap.Error(err))
			continue
		}
		list = append(list, f)
		stored := f
		cache[f.ID] = &stored
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate factories: %w", err)
	}

	s.factoryCacheLock.Lock()
	s.factoryCache = cache
	s.factoryCacheFull = true
	s.factoryCacheLock.Unlock()
	return list, nil
}

// DeleteFactory removes a factory. Deleting an unknown ID is not an error.
func (s *Store) DeleteFactory(id string) error {
	if _, err := s.db.Exec(`DELETE FROM factories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete factory %s: %w", id, err)
	}
	s.factoryCacheLock.Lock()
	delete(s.factoryCache, id)
	s.factoryCacheLock.Unlock()
	return nil
}

// RawMaterialInputs returns the stored inputs in the order they were saved.
func (s *Store) RawMaterialInputs() ([]RawMaterialInput, error) {
	rows, err := s.db.Query(`SELECT item_class, amount FROM raw_material_inputs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query raw material inputs: %w", err)
	}
	defer rows.Close()

	var list []RawMaterialInput
	for rows.Next() {
		var in RawMaterialInput
		if err := rows.Scan(&in.ItemClass, &in.Amount); err != nil {
			s.log.Warn("error scanning raw material input row", zap.Error(err))
			continue
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// SetRawMaterialInputs replaces all stored inputs in one transaction.
func (s *Store) SetRawMaterialInputs(inputs []RawMaterialInput) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM raw_material_inputs`); err != nil {
		return fmt.Errorf("clear raw material inputs: %w", err)
	}
	for i, in := range inputs {
		if _, err := tx.Exec(
			`INSERT INTO raw_material_inputs (position, item_class, amount) VALUES (?, ?, ?)`,
			i, in.ItemClass, in.Amount,
		); err != nil {
			return fmt.Errorf("insert raw material input %s: %w", in.ItemClass, err)
		}
	}
	return tx.Commit()
}

// Theme returns the stored theme, or ThemeLight when none is stored.
func (s *Store) Theme() Theme {
	var value string
	err := s.db.QueryRow(`SELECT pref_value FROM preferences WHERE pref_key = ?`, themeKey).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("error reading theme preference", zap.Error(err))
		}
		return ThemeLight
	}
	if t := Theme(value); t == ThemeDark {
		return t
	}
	return ThemeLight
}

// SetTheme stores the theme preference.
func (s *Store) SetTheme(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("unknown theme %q", t)
	}
	_, err := s.db.Exec(`
		INSERT INTO preferences (pref_key, pref_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE pref_value = VALUES(pref_value)
	`, themeKey, string(t))
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() (Theme, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	if err := s.SetTheme(next); err != nil {
		return s.Theme(), err
	}
	return next, nil
}
