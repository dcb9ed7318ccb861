package store

import (
	"fmt"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// EnsureVehicle maps a plate string to a durable vehicle id, creating the
// row on first sight.
func (s *Store) EnsureVehicle(plate string) (int64, error) {
	_, err := s.db.Exec(`
		INSERT INTO vehicles (plate) VALUES (?)
		ON CONFLICT(plate) DO NOTHING
	`, plate)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure vehicle %q: %w", plate, err)
	}

	var id int64
	if err := s.db.QueryRow(`SELECT id FROM vehicles WHERE plate = ?`, plate).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to load vehicle %q: %w", plate, err)
	}
	return id, nil
}

// ListVehicles returns the registry ordered by plate.
func (s *Store) ListVehicles() ([]*model.Vehicle, error) {
	rows, err := s.db.Query(`SELECT id, plate FROM vehicles ORDER BY plate`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*model.Vehicle
	for rows.Next() {
		v := &model.Vehicle{}
		if err := rows.Scan(&v.ID, &v.Plate); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}
