package dist

import (
	"testing"

	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
)

func TestValidateDiagramType(t *testing.T) {
	tests := []struct {
		diagram DiagramType
		wantErr bool
	}{
		{DiagramViolin, false},
		{DiagramHist, false},
		{DiagramBoxplot, false},
		{DiagramType("pie"), true},
		{DiagramType("Violin"), true}, // case-sensitive
		{DiagramType(""), true},
	}

	for _, tt := range tests {
		err := ValidateDiagramType(tt.diagram)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDiagramType(%q) error = %v, wantErr %v", tt.diagram, err, tt.wantErr)
		}
	}
}

func TestValidateDiagramTypes(t *testing.T) {
	if err := ValidateDiagramTypes([]DiagramType{DiagramViolin, DiagramBoxplot}); err != nil {
		t.Errorf("valid list should pass: %v", err)
	}

	if err := ValidateDiagramTypes(nil); !errors.Is(err, errors.ErrCodeInvalidDiagramType) {
		t.Errorf("empty list error = %v, want INVALID_DIAGRAM_TYPE", err)
	}

	// A plain string smuggled into the list is rejected.
	if err := ValidateDiagramTypes([]DiagramType{DiagramViolin, "scatter"}); !errors.Is(err, errors.ErrCodeInvalidDiagramType) {
		t.Errorf("mixed list error = %v, want INVALID_DIAGRAM_TYPE", err)
	}
}

func TestValidateAxes(t *testing.T) {
	if err := ValidateAxes([]Axis{AxisX, AxisY}); err != nil {
		t.Errorf("valid list should pass: %v", err)
	}

	tests := []struct {
		name string
		axes []Axis
	}{
		{"empty", nil},
		{"unknown member", []Axis{AxisX, "Z"}},
		{"lowercase", []Axis{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateAxes(tt.axes); !errors.Is(err, errors.ErrCodeInvalidAxis) {
				t.Errorf("ValidateAxes(%v) error = %v, want INVALID_AXIS", tt.axes, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	set := points.FromPairs([][2]float64{{1, 2}, {3, 4}})

	if err := Validate(set, []DiagramType{DiagramHist}, []Axis{AxisX}); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	mismatched := points.Set{X: []float64{1, 2}, Y: []float64{1}}
	if err := Validate(mismatched, []DiagramType{DiagramHist}, []Axis{AxisX}); !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("Validate() error = %v, want SHAPE_MISMATCH", err)
	}

	// Diagram validation runs before shape validation.
	if err := Validate(mismatched, []DiagramType{"pie"}, []Axis{AxisX}); !errors.Is(err, errors.ErrCodeInvalidDiagramType) {
		t.Errorf("Validate() error = %v, want INVALID_DIAGRAM_TYPE", err)
	}
}

func TestParseDiagramType(t *testing.T) {
	tests := []struct {
		input   string
		want    DiagramType
		wantErr bool
	}{
		{"violin", DiagramViolin, false},
		{"v", DiagramViolin, false},
		{"hist", DiagramHist, false},
		{"h", DiagramHist, false},
		{"boxplot", DiagramBoxplot, false},
		{"b", DiagramBoxplot, false},
		{"pie", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDiagramType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDiagramType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDiagramType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseAxis(t *testing.T) {
	for _, s := range []string{"X", "x"} {
		if got, err := ParseAxis(s); err != nil || got != AxisX {
			t.Errorf("ParseAxis(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseAxis("Z"); !errors.Is(err, errors.ErrCodeInvalidAxis) {
		t.Errorf("ParseAxis(Z) error = %v, want INVALID_AXIS", err)
	}
}

func TestAxisValues(t *testing.T) {
	set := points.FromPairs([][2]float64{{1, 10}, {2, 20}})

	x := AxisValues(set, AxisX)
	if len(x) != 2 || x[0] != 1 {
		t.Errorf("AxisValues(X) = %v", x)
	}
	y := AxisValues(set, AxisY)
	if len(y) != 2 || y[1] != 20 {
		t.Errorf("AxisValues(Y) = %v", y)
	}
}
