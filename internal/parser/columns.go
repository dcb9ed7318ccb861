package parser

import "strings"

// Column matchers work on normalized header text. Each named predicate
// captures one semantic column of the source spreadsheets; resolution never
// relies on fixed offsets except for merged compound sub-columns.

func matchDate(text string) bool { return text == "date" }

func matchDay(text string) bool {
	return strings.Contains(text, "jour") && !strings.Contains(text, "km") &&
		!strings.Contains(text, "intervalle")
}

func matchDayNumber(text string) bool {
	return strings.Contains(text, "n°") || strings.Contains(text, "numero")
}

func matchKilometrage(text string) bool { return strings.Contains(text, "kilometrage") }

func matchKmJour(text string) bool {
	return strings.Contains(text, "km") && strings.Contains(text, "jour")
}

func matchKmDepart(text string) bool {
	return strings.Contains(text, "depart")
}

func matchKmArrivee(text string) bool {
	return strings.Contains(text, "arrive")
}

// matchPleinParent finds the "Plein" parent cell of a compound header
// without tripping on "km entre 2 pleins".
func matchPleinParent(text string) bool {
	return strings.Contains(text, "plein") && !strings.Contains(text, "entre")
}

func matchCompteur(text string) bool { return strings.Contains(text, "compteur") }

func matchLiters(text string) bool { return strings.Contains(text, "litre") }

func matchMontant(text string) bool { return strings.Contains(text, "montant") }

func matchKmBetweenRefill(text string) bool {
	return strings.Contains(text, "entre") && strings.Contains(text, "plein")
}

func matchConsumption(text string) bool { return strings.Contains(text, "consommation") }

func matchIntervalDays(text string) bool { return strings.Contains(text, "intervalle") }

func matchLink(text string) bool {
	return strings.Contains(text, "lien") || strings.Contains(text, "link")
}

func matchChauffeur(text string) bool { return strings.Contains(text, "chauffeur") }

func matchFrns(text string) bool {
	return strings.Contains(text, "frns") || strings.Contains(text, "fournisseur")
}

// findColumn returns the index of the first cell whose normalized text
// satisfies pred, or -1.
func findColumn(row []any, pred func(string) bool) int {
	for i, cell := range row {
		text := NormalizeText(cell)
		if text == "" {
			continue
		}
		if pred(text) {
			return i
		}
	}
	return -1
}

// headerLayout is the shape of a located vehicle header: a flat single-row
// header, or a two-row compound header whose parent cells span merged
// sub-columns.
type headerLayout int

const (
	layoutFlat headerLayout = iota
	layoutCompound
)

// vehicleColumns holds the resolved column index of every vehicle field.
// -1 marks an absent optional column; required columns are checked by
// missingRequired before any row is read.
type vehicleColumns struct {
	layout      headerLayout
	date        int
	day         int
	dayNumber   int
	kmDepart    int
	kmArrivee   int
	kmJour      int
	kmBetween   int
	compteur    int
	liters      int
	montant     int
	consumption int
	interval    int
	link        int
	chauffeur   int
	frns        int
}

// missingRequired aggregates the absent required columns under their
// semantic names, for the structural error message.
func (c vehicleColumns) missingRequired() []string {
	var missing []string
	for _, req := range []struct {
		name string
		idx  int
	}{
		{"date", c.date},
		{"km depart", c.kmDepart},
		{"km arrivee", c.kmArrivee},
		{"compteur", c.compteur},
		{"litres", c.liters},
		{"montant", c.montant},
	} {
		if req.idx < 0 {
			missing = append(missing, req.name)
		}
	}
	return missing
}

// dataStart is the first data row below a header at headerRow.
func (c vehicleColumns) dataStart(headerRow int) int {
	if c.layout == layoutCompound {
		return headerRow + 2
	}
	return headerRow + 1
}

// resolveVehicleColumns maps the semantic vehicle columns onto a located
// header row. When the row below carries "Départ"/"Arrivée" sub-headers the
// layout is compound: km and plein sub-columns resolve on that row, falling
// back to fixed offsets from the merged parent cell when the sub-cells are
// blank. Otherwise every column resolves on the header row itself.
func resolveVehicleColumns(grid Grid, headerRow int) vehicleColumns {
	header := grid[headerRow]

	cols := vehicleColumns{
		layout:      layoutFlat,
		date:        findColumn(header, matchDate),
		day:         findColumn(header, matchDay),
		dayNumber:   findColumn(header, matchDayNumber),
		kmJour:      findColumn(header, matchKmJour),
		kmBetween:   findColumn(header, matchKmBetweenRefill),
		consumption: findColumn(header, matchConsumption),
		interval:    findColumn(header, matchIntervalDays),
		link:        findColumn(header, matchLink),
		chauffeur:   findColumn(header, matchChauffeur),
		frns:        findColumn(header, matchFrns),
		kmDepart:    -1,
		kmArrivee:   -1,
		compteur:    -1,
		liters:      -1,
		montant:     -1,
	}

	var sub []any
	if headerRow+1 < len(grid) {
		sub = grid[headerRow+1]
	}

	kmParent := findColumn(header, matchKilometrage)
	pleinParent := findColumn(header, matchPleinParent)
	if sub != nil && findColumn(sub, matchKmDepart) >= 0 {
		cols.layout = layoutCompound
		cols.kmDepart = findColumn(sub, matchKmDepart)
		cols.kmArrivee = findColumn(sub, matchKmArrivee)
		cols.compteur = findColumn(sub, matchCompteur)
		cols.liters = findColumn(sub, matchLiters)
		cols.montant = findColumn(sub, matchMontant)

		// Merged parents leave blank sub-cells; fall back to offsets from
		// the parent column.
		if kmParent >= 0 {
			if cols.kmDepart < 0 {
				cols.kmDepart = kmParent
			}
			if cols.kmArrivee < 0 {
				cols.kmArrivee = kmParent + 1
			}
		}
		if pleinParent >= 0 {
			if cols.compteur < 0 {
				cols.compteur = pleinParent
			}
			if cols.liters < 0 {
				cols.liters = pleinParent + 1
			}
			if cols.montant < 0 {
				cols.montant = pleinParent + 2
			}
		}

		// Optional columns may also live on the sub-header row.
		if cols.kmJour < 0 {
			cols.kmJour = findColumn(sub, matchKmJour)
		}
		if cols.kmBetween < 0 {
			cols.kmBetween = findColumn(sub, matchKmBetweenRefill)
		}
		if cols.consumption < 0 {
			cols.consumption = findColumn(sub, matchConsumption)
		}
		if cols.interval < 0 {
			cols.interval = findColumn(sub, matchIntervalDays)
		}
		if cols.link < 0 {
			cols.link = findColumn(sub, matchLink)
		}
		if cols.chauffeur < 0 {
			cols.chauffeur = findColumn(sub, matchChauffeur)
		}
		if cols.frns < 0 {
			cols.frns = findColumn(sub, matchFrns)
		}
	} else {
		cols.kmDepart = findColumn(header, matchKmDepart)
		cols.kmArrivee = findColumn(header, matchKmArrivee)
		cols.compteur = findColumn(header, matchCompteur)
		cols.liters = findColumn(header, matchLiters)
		cols.montant = findColumn(header, matchMontant)
	}

	return cols
}

// tableColumns is the shared column set of the generator and misc purchase
// tables: date, liters, montant, optional link.
type tableColumns struct {
	date    int
	liters  int
	montant int
	link    int
}

func (c tableColumns) missingRequired() []string {
	var missing []string
	if c.date < 0 {
		missing = append(missing, "date")
	}
	if c.liters < 0 {
		missing = append(missing, "litres")
	}
	if c.montant < 0 {
		missing = append(missing, "montant")
	}
	return missing
}

func resolveTableColumns(header []any) tableColumns {
	return tableColumns{
		date:    findColumn(header, matchDate),
		liters:  findColumn(header, matchLiters),
		montant: findColumn(header, matchMontant),
		link:    findColumn(header, matchLink),
	}
}

// isTableHeader reports whether a row looks like a classic date/litres/
// montant header.
func isTableHeader(row []any) bool {
	cols := resolveTableColumns(row)
	return cols.date >= 0 && cols.liters >= 0 && cols.montant >= 0
}

// isBlankRow reports whether every cell of the row is empty.
func isBlankRow(row []any) bool {
	for _, cell := range row {
		if NormalizeText(cell) != "" {
			return false
		}
	}
	return true
}
