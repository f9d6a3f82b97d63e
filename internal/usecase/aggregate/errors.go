package aggregate

import "errors"

// ErrInsufficientData indicates that a non-empty collection produced no row for a
// thresholded view. It is distinct from an empty collection, which is not an error.
var ErrInsufficientData = errors.New("insufficient data: no country meets the minimum mention threshold")
