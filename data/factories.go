// sfcatalog/data/factories.go
package data

import "fmt"

// GetFactory returns (Factory, true) if found, or (zero, false) otherwise.
// Internally calls dbGetFactory from db.go.
func (s *Store) GetFactory(id string) (Factory, bool) {
	return s.dbGetFactory(id)
}

// GetFactoryNameByID returns the factory name for a given ID, or "Unknown[ID]" if not found.
func (s *Store) GetFactoryNameByID(id string) string {
	f, ok := s.dbGetFactory(id)
	if !ok {
		return fmt.Sprintf("Unknown[%s]", id)
	}
	return f.Name
}

// ListFactories returns every stored factory ordered by name.
// Internally calls dbListFactories from db.go.
func (s *Store) ListFactories() ([]Factory, error) {
	return s.dbListFactories()
}
