package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrNegativeIntensity indicates a cell value below zero.
	ErrNegativeIntensity = errors.New("gridgraph: intensity values must be non-negative")
	// ErrIntensityTooLarge indicates a value large enough that path costs
	// over the field could overflow int64.
	ErrIntensityTooLarge = errors.New("gridgraph: intensity too large for field size")
	// ErrBadCell indicates a cell literal that is not of the form "row,col".
	ErrBadCell = errors.New("gridgraph: cell must be written as row,col")
)
