// Package dist contains the distribution-visualization core: the closed
// diagram-type and axis enumerations, argument validation, the render
// configuration, and the Visualizer that dispatches a grid of per-diagram,
// per-axis cells to a renderer backend.
//
// The package itself never draws. Rendering is delegated to an
// implementation of [Renderer] (see pkg/render/gplot for the static
// gonum/plot backend and pkg/render/echarts for the interactive HTML one).
package dist

import (
	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// DiagramType selects how one grid cell visualizes a distribution.
type DiagramType string

// The closed set of diagram types.
const (
	DiagramViolin  DiagramType = "violin"
	DiagramHist    DiagramType = "hist"
	DiagramBoxplot DiagramType = "boxplot"
)

// Axis selects which point-set column feeds a grid cell.
type Axis string

// The closed set of axes.
const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
)

// ValidDiagramTypes is the set of supported diagram types.
var ValidDiagramTypes = map[DiagramType]bool{
	DiagramViolin:  true,
	DiagramHist:    true,
	DiagramBoxplot: true,
}

// ValidAxes is the set of supported axes.
var ValidAxes = map[Axis]bool{
	AxisX: true,
	AxisY: true,
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateDiagramType checks that a diagram type is a member of the closed
// enumeration.
func ValidateDiagramType(d DiagramType) error {
	if !ValidDiagramTypes[d] {
		return errors.New(errors.ErrCodeInvalidDiagramType,
			"diagram type must be one of violin, hist, boxplot (got %q)", string(d))
	}
	return nil
}

// ValidateDiagramTypes checks a non-empty list of diagram types.
// Callers always pass an explicit list; a single diagram is a list of one.
func ValidateDiagramTypes(diagrams []DiagramType) error {
	if len(diagrams) == 0 {
		return errors.New(errors.ErrCodeInvalidDiagramType, "at least one diagram type is required")
	}
	for _, d := range diagrams {
		if err := ValidateDiagramType(d); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAxis checks that an axis is a member of the closed enumeration.
func ValidateAxis(a Axis) error {
	if !ValidAxes[a] {
		return errors.New(errors.ErrCodeInvalidAxis,
			"axis must be X or Y (got %q)", string(a))
	}
	return nil
}

// ValidateAxes checks a non-empty list of axes.
func ValidateAxes(axes []Axis) error {
	if len(axes) == 0 {
		return errors.New(errors.ErrCodeInvalidAxis, "at least one axis is required")
	}
	for _, a := range axes {
		if err := ValidateAxis(a); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every argument of a visualization request: the diagram
// list, the axis list, and the point-set shape. It performs no rendering
// and no mutation; errors surface to the caller unchanged.
func Validate(set points.Set, diagrams []DiagramType, axes []Axis) error {
	if err := ValidateDiagramTypes(diagrams); err != nil {
		return err
	}
	if err := ValidateAxes(axes); err != nil {
		return err
	}
	return set.Validate()
}

// ParseDiagramType converts a user-supplied string to a DiagramType.
// Accepts the full names and the single-letter shorthands v, h, b.
func ParseDiagramType(s string) (DiagramType, error) {
	switch s {
	case "violin", "v":
		return DiagramViolin, nil
	case "hist", "h":
		return DiagramHist, nil
	case "boxplot", "b":
		return DiagramBoxplot, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDiagramType,
		"diagram type must be one of violin, hist, boxplot (got %q)", s)
}

// ParseAxis converts a user-supplied string to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "X", "x":
		return AxisX, nil
	case "Y", "y":
		return AxisY, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAxis, "axis must be X or Y (got %q)", s)
}

// AxisValues returns the point-set column the axis selects: the abscissa
// for X, the ordinate for Y.
func AxisValues(set points.Set, a Axis) []float64 {
	if a == AxisY {
		return set.Y
	}
	return set.X
}
