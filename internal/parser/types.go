package parser

// WorkbookType classifies an uploaded workbook's domain.
type WorkbookType string

const (
	TypeVehicle         WorkbookType = "vehicle"
	TypeGenerator       WorkbookType = "generator"
	TypeOther           WorkbookType = "other"
	TypeFuelRequestForm WorkbookType = "fuel_request_form"
	TypeUnknown         WorkbookType = "unknown"
)

// Options carries the tunable ingestion heuristics. The defaults match the
// spreadsheets in circulation; every limit can be overridden from config.
type Options struct {
	// RefillThresholdAr is the monetary amount (Ariary) at or above which a
	// vehicle log row counts as a full refill.
	RefillThresholdAr int
	// VehicleBlankRowLimit stops a vehicle sheet scan after this many
	// consecutive fully blank rows.
	VehicleBlankRowLimit int
	// GeneratorBlankRowLimit is the same cutoff for generator sheets.
	GeneratorBlankRowLimit int
	// OtherBlankRowLimit is the same cutoff for misc purchase sheets.
	OtherBlankRowLimit int
}

const (
	DefaultRefillThresholdAr      = 100000
	DefaultVehicleBlankRowLimit   = 15
	DefaultGeneratorBlankRowLimit = 10
	DefaultOtherBlankRowLimit     = 10
)

// DefaultOptions returns the stock heuristic limits.
func DefaultOptions() Options {
	return Options{
		RefillThresholdAr:      DefaultRefillThresholdAr,
		VehicleBlankRowLimit:   DefaultVehicleBlankRowLimit,
		GeneratorBlankRowLimit: DefaultGeneratorBlankRowLimit,
		OtherBlankRowLimit:     DefaultOtherBlankRowLimit,
	}
}

// normalized returns opts with zero values replaced by defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.RefillThresholdAr <= 0 {
		o.RefillThresholdAr = d.RefillThresholdAr
	}
	if o.VehicleBlankRowLimit <= 0 {
		o.VehicleBlankRowLimit = d.VehicleBlankRowLimit
	}
	if o.GeneratorBlankRowLimit <= 0 {
		o.GeneratorBlankRowLimit = d.GeneratorBlankRowLimit
	}
	if o.OtherBlankRowLimit <= 0 {
		o.OtherBlankRowLimit = d.OtherBlankRowLimit
	}
	return o
}
