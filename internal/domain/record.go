package domain

// Fields maps a canonical talent key to its raw string value. Values are
// never parsed to numbers; the .rcd files are the source of truth for format.
type Fields map[string]string

// Record is one driver block parsed from a .rcd file.
type Record struct {
	Driver string
	Fields Fields
}

// Row is one line of the reconciled output table. Keys are the metadata
// columns below plus canonical field names.
type Row map[string]string

// Metadata column names in the output table.
const (
	ColDriver       = "Driver"
	ColSourceFile   = "Source_CAR_File"
	ColFilePath     = "CAR_File_Path"
	ColOriginalName = "Original_CAR_Name"
)

// MetadataColumns are the table columns that do not correspond to a talent
// field and must never be written back into a .rcd file.
var MetadataColumns = []string{ColDriver, ColSourceFile, ColFilePath, ColOriginalName}

// EditPlan carries the new values to write into one driver's block. Fields is
// keyed by canonical field name; a value that trims to empty means no change.
type EditPlan struct {
	Driver string
	Fields Fields
}
