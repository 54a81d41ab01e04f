package ports

// Backup copies original files aside before they are mutated. Copy is
// at-most-once per path per run; repeat calls for the same path are no-ops.
type Backup interface {
	Copy(path string) error
	Root() string
}
