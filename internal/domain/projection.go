package domain

// ProjectionMode selects how the inverse projection obtains its origin, offsets and scale.
// It is either Standard or Custom.
type ProjectionMode interface {
	// Grid resolves the mode to explicit grid parameters.
	Grid() GridParameters
	isProjectionMode()
}

// Standard UTM conventions for one zone.
type Standard struct {
	Zone ZoneDesignator
}

func (m Standard) Grid() GridParameters { return UTMGridParameters(m.Zone) }

func (Standard) isProjectionMode() {}

// Caller supplied grid parameters.
type Custom struct {
	Params GridParameters
}

func (m Custom) Grid() GridParameters { return m.Params }

func (Custom) isProjectionMode() {}
