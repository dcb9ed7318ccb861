package store

import (
	"database/sql"
	"fmt"
)

// VehicleLogQueryOptions filters the vehicle fuel log listing.
type VehicleLogQueryOptions struct {
	VehicleID  *int64
	SourceFile *string
	DateFrom   *string // YYYY-MM-DD inclusive
	DateTo     *string // YYYY-MM-DD inclusive
	Refills    bool    // only rows classified as refills
	Limit      int
	Offset     int
}

// VehicleLogRow is one stored vehicle fuel log row, mission markers
// included, as served by the read API.
type VehicleLogRow struct {
	ID           int64    `json:"id"`
	VehicleID    *int64   `json:"vehicleId,omitempty"`
	LogDate      *string  `json:"logDate,omitempty"`
	Day          string   `json:"day,omitempty"`
	KmDepart     *int     `json:"kmDepart,omitempty"`
	KmArrivee    *int     `json:"kmArrivee,omitempty"`
	Compteur     *int     `json:"compteur,omitempty"`
	Liters       *float64 `json:"liters,omitempty"`
	MontantAr    *int     `json:"montantAr,omitempty"`
	Chauffeur    string   `json:"chauffeur,omitempty"`
	Frns         string   `json:"frns,omitempty"`
	IsRefill     bool     `json:"isRefill"`
	IsMission    bool     `json:"isMission"`
	MissionLabel string   `json:"missionLabel,omitempty"`
	SourceFile   string   `json:"sourceFile"`
	SheetName    string   `json:"sheetName"`
	RowInSheet   int      `json:"rowInSheet"`
}

// ListVehicleLogs returns stored vehicle rows, oldest date first.
func (s *Store) ListVehicleLogs(opts VehicleLogQueryOptions) ([]*VehicleLogRow, error) {
	query := `
		SELECT id, vehicle_id, log_date, day, km_depart, km_arrivee, compteur,
		       liters, montant_ar, chauffeur, frns, is_refill, is_mission,
		       mission_label, source_file, sheet_name, row_in_sheet
		FROM vehicle_fuel_logs WHERE 1=1`
	args := []any{}

	if opts.VehicleID != nil {
		query += " AND vehicle_id = ?"
		args = append(args, *opts.VehicleID)
	}
	if opts.SourceFile != nil {
		query += " AND source_file = ?"
		args = append(args, *opts.SourceFile)
	}
	if opts.DateFrom != nil {
		query += " AND log_date >= ?"
		args = append(args, *opts.DateFrom)
	}
	if opts.DateTo != nil {
		query += " AND log_date <= ?"
		args = append(args, *opts.DateTo)
	}
	if opts.Refills {
		query += " AND is_refill = 1"
	}

	query += " ORDER BY log_date, sheet_name, row_in_sheet"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle logs: %w", err)
	}
	defer rows.Close()

	var result []*VehicleLogRow
	for rows.Next() {
		r := &VehicleLogRow{}
		var vehicleID sql.NullInt64
		var logDate sql.NullString
		err := rows.Scan(&r.ID, &vehicleID, &logDate, &r.Day, &r.KmDepart, &r.KmArrivee,
			&r.Compteur, &r.Liters, &r.MontantAr, &r.Chauffeur, &r.Frns,
			&r.IsRefill, &r.IsMission, &r.MissionLabel,
			&r.SourceFile, &r.SheetName, &r.RowInSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle log: %w", err)
		}
		if vehicleID.Valid {
			v := vehicleID.Int64
			r.VehicleID = &v
		}
		if logDate.Valid {
			d := logDate.String
			r.LogDate = &d
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// FuelLogRow is one stored generator or misc purchase row.
type FuelLogRow struct {
	ID         int64    `json:"id"`
	LogDate    string   `json:"logDate"`
	Liters     *float64 `json:"liters,omitempty"`
	MontantAr  *int     `json:"montantAr,omitempty"`
	Link       string   `json:"link,omitempty"`
	SourceFile string   `json:"sourceFile"`
	SheetName  string   `json:"sheetName"`
	RowInSheet int      `json:"rowInSheet"`
}

// ListGeneratorLogs returns stored generator rows, oldest first.
func (s *Store) ListGeneratorLogs(limit int) ([]*FuelLogRow, error) {
	return s.listSimpleLogs("generator_fuel_logs", limit)
}

// ListOtherLogs returns stored misc purchase rows, oldest first.
func (s *Store) ListOtherLogs(limit int) ([]*FuelLogRow, error) {
	return s.listSimpleLogs("other_fuel_logs", limit)
}

func (s *Store) listSimpleLogs(table string, limit int) ([]*FuelLogRow, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT id, log_date, liters, montant_ar, link,
		       source_file, sheet_name, row_in_sheet
		FROM %s ORDER BY log_date, row_in_sheet LIMIT ?
	`, table), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var result []*FuelLogRow
	for rows.Next() {
		r := &FuelLogRow{}
		err := rows.Scan(&r.ID, &r.LogDate, &r.Liters, &r.MontantAr, &r.Link,
			&r.SourceFile, &r.SheetName, &r.RowInSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
