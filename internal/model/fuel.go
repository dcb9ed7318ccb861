package model

// RowRef traces a normalized record back to its source cell area.
type RowRef struct {
	SourceFile string `json:"sourceFile"`
	Sheet      string `json:"sheet"`
	Row        int    `json:"row"` // 1-based row in the sheet
}

// VehicleEntry is one normalized data row of a vehicle fuel log sheet.
// Nil pointer fields mean the cell was empty or unreadable.
type VehicleEntry struct {
	LogDate         string   `json:"logDate"` // YYYY-MM-DD
	Day             string   `json:"day,omitempty"`
	DayNumber       *int     `json:"dayNumber,omitempty"`
	KmDepart        *int     `json:"kmDepart,omitempty"`
	KmArrivee       *int     `json:"kmArrivee,omitempty"`
	KmJour          *float64 `json:"kmJour,omitempty"`
	KmBetweenRefill *float64 `json:"kmBetweenRefill,omitempty"`
	Compteur        *int     `json:"compteur,omitempty"`
	Liters          *float64 `json:"liters,omitempty"`
	MontantAr       *int     `json:"montantAr,omitempty"`
	Consumption     *float64 `json:"consumption,omitempty"`
	IntervalDays    *int     `json:"intervalDays,omitempty"`
	Chauffeur       string   `json:"chauffeur,omitempty"`
	Frns            string   `json:"frns,omitempty"`
	Link            string   `json:"link,omitempty"`
	IsRefill        bool     `json:"isRefill"`
	Ref             RowRef   `json:"ref"`
}

// MissionEntry marks a non-routine vehicle usage row. It carries only a
// label and provenance; numeric and date fields are absent by contract.
type MissionEntry struct {
	Label string `json:"label"`
	Ref   RowRef `json:"ref"`
}

// VehicleRow is one parsed row of a vehicle workbook: exactly one of
// Entry or Mission is non-nil.
type VehicleRow struct {
	Entry   *VehicleEntry `json:"entry,omitempty"`
	Mission *MissionEntry `json:"mission,omitempty"`
}

// IsMission reports whether the row is a mission marker.
func (r VehicleRow) IsMission() bool { return r.Mission != nil }

// GeneratorEntry is one normalized row of a generator fuel log.
type GeneratorEntry struct {
	LogDate   string   `json:"logDate"`
	Liters    *float64 `json:"liters,omitempty"`
	MontantAr *int     `json:"montantAr,omitempty"`
	Link      string   `json:"link,omitempty"`
	Ref       RowRef   `json:"ref"`
}

// OtherEntry is one normalized row of a miscellaneous fuel purchase log.
type OtherEntry struct {
	LogDate   string   `json:"logDate"`
	Liters    *float64 `json:"liters,omitempty"`
	MontantAr *int     `json:"montantAr,omitempty"`
	Link      string   `json:"link,omitempty"`
	Ref       RowRef   `json:"ref"`
}

// Vehicle is a durable vehicle identity keyed by plate number.
type Vehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
}
