package domain

import "errors"

var (
	// ErrPathNotFound aborts the pipeline before any parsing starts.
	ErrPathNotFound = errors.New("configured folder does not exist")

	// Empty-result errors: each stage of the pipeline is fatal when it
	// produces nothing for the next stage to consume.
	ErrNoDrivers = errors.New("no drivers found in .car files")
	ErrNoRecords = errors.New("no driver data found in .rcd files")
	ErrNoMatches = errors.New("no drivers matched with .rcd data")

	// ErrRecordNotFound is a per-driver update failure: no .rcd file
	// contains a block for the driver.
	ErrRecordNotFound = errors.New("no .rcd file found for driver")
)
