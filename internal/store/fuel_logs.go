package store

import (
	"database/sql"
	"fmt"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/model"
)

// InsertMeta tags a generation of fuel log rows with its provenance.
type InsertMeta struct {
	BatchID   string
	FileID    string
	VehicleID *int64 // vehicle table only
}

// DeleteVehicleLogsBySourceFile removes the previous generation of rows for
// a source filename, inside the caller's per-file transaction.
func (s *Store) DeleteVehicleLogsBySourceFile(tx *sql.Tx, sourceFile string) error {
	if _, err := tx.Exec(`DELETE FROM vehicle_fuel_logs WHERE source_file = ?`, sourceFile); err != nil {
		return fmt.Errorf("failed to delete vehicle logs for %q: %w", sourceFile, err)
	}
	return nil
}

// InsertVehicleRows bulk-inserts the parsed rows of one vehicle workbook.
// Mission rows persist with only their label and provenance.
func (s *Store) InsertVehicleRows(tx *sql.Tx, rows []model.VehicleRow, meta InsertMeta) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO vehicle_fuel_logs (
			vehicle_id, log_date, day, day_number,
			km_depart, km_arrivee, km_jour, km_between_refill,
			compteur, liters, montant_ar, consumption, interval_days,
			chauffeur, frns, link, is_refill, is_mission, mission_label,
			source_file, sheet_name, row_in_sheet, import_batch_id, import_file_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare vehicle insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range rows {
		if r.Mission != nil {
			_, err = stmt.Exec(
				meta.VehicleID, nil, "", nil,
				nil, nil, nil, nil,
				nil, nil, nil, nil, nil,
				"", "", "", false, true, r.Mission.Label,
				r.Mission.Ref.SourceFile, r.Mission.Ref.Sheet, r.Mission.Ref.Row,
				meta.BatchID, meta.FileID,
			)
		} else {
			e := r.Entry
			_, err = stmt.Exec(
				meta.VehicleID, e.LogDate, e.Day, e.DayNumber,
				e.KmDepart, e.KmArrivee, e.KmJour, e.KmBetweenRefill,
				e.Compteur, e.Liters, e.MontantAr, e.Consumption, e.IntervalDays,
				e.Chauffeur, e.Frns, e.Link, e.IsRefill, false, "",
				e.Ref.SourceFile, e.Ref.Sheet, e.Ref.Row,
				meta.BatchID, meta.FileID,
			)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to insert vehicle log row: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// DeleteGeneratorLogsBySourceFile removes the previous generation of
// generator rows for a source filename.
func (s *Store) DeleteGeneratorLogsBySourceFile(tx *sql.Tx, sourceFile string) error {
	if _, err := tx.Exec(`DELETE FROM generator_fuel_logs WHERE source_file = ?`, sourceFile); err != nil {
		return fmt.Errorf("failed to delete generator logs for %q: %w", sourceFile, err)
	}
	return nil
}

// InsertGeneratorEntries bulk-inserts generator fuel log rows.
func (s *Store) InsertGeneratorEntries(tx *sql.Tx, entries []model.GeneratorEntry, meta InsertMeta) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO generator_fuel_logs (
			log_date, liters, montant_ar, link,
			source_file, sheet_name, row_in_sheet, import_batch_id, import_file_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare generator insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.LogDate, e.Liters, e.MontantAr, e.Link,
			e.Ref.SourceFile, e.Ref.Sheet, e.Ref.Row, meta.BatchID, meta.FileID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert generator log row: %w", err)
		}
	}
	return len(entries), nil
}

// DeleteOtherLogsBySourceFile removes the previous generation of misc
// purchase rows for a source filename.
func (s *Store) DeleteOtherLogsBySourceFile(tx *sql.Tx, sourceFile string) error {
	if _, err := tx.Exec(`DELETE FROM other_fuel_logs WHERE source_file = ?`, sourceFile); err != nil {
		return fmt.Errorf("failed to delete other logs for %q: %w", sourceFile, err)
	}
	return nil
}

// InsertOtherEntries bulk-inserts misc fuel purchase rows.
func (s *Store) InsertOtherEntries(tx *sql.Tx, entries []model.OtherEntry, meta InsertMeta) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO other_fuel_logs (
			log_date, liters, montant_ar, link,
			source_file, sheet_name, row_in_sheet, import_batch_id, import_file_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare other insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.Exec(
			e.LogDate, e.Liters, e.MontantAr, e.Link,
			e.Ref.SourceFile, e.Ref.Sheet, e.Ref.Row, meta.BatchID, meta.FileID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert other log row: %w", err)
		}
	}
	return len(entries), nil
}

// CountLogsBySourceFile reports how many rows a source filename currently
// has in one of the three log tables. Used by the reimport tests and the
// status API.
func (s *Store) CountLogsBySourceFile(table, sourceFile string) (int, error) {
	var query string
	switch table {
	case "vehicle":
		query = `SELECT COUNT(*) FROM vehicle_fuel_logs WHERE source_file = ?`
	case "generator":
		query = `SELECT COUNT(*) FROM generator_fuel_logs WHERE source_file = ?`
	case "other":
		query = `SELECT COUNT(*) FROM other_fuel_logs WHERE source_file = ?`
	default:
		return 0, fmt.Errorf("unknown log table %q", table)
	}
	var n int
	if err := s.db.QueryRow(query, sourceFile).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return n, nil
}
