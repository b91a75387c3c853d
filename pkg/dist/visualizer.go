package dist

import (
	"os"

	"github.com/distviz/distviz/pkg/errors"
	"github.com/distviz/distviz/pkg/points"
)

// Renderer draws a |diagrams| x |axes| grid of distribution cells for a
// point set and returns the encoded figure. Row i shows diagrams[i],
// column j shows the column of set selected by axes[j]; the figure spans
// len(axes)*cfg.BlockWidth by len(diagrams)*cfg.BlockHeight cells, and the
// cells of the first row are titled with their axis name.
//
// Implementations assemble the entire figure in memory and return an error
// without producing partial output when any cell fails.
type Renderer interface {
	Render(set points.Set, diagrams []DiagramType, axes []Axis, cfg Config) ([]byte, error)
}

// Visualizer validates distribution-visualization requests and hands them
// to a renderer backend. The zero value is not usable; construct with New.
type Visualizer struct {
	Config   Config
	Renderer Renderer
}

// New creates a Visualizer with the default configuration.
func New(r Renderer) *Visualizer {
	return &Visualizer{
		Config:   Default(),
		Renderer: r,
	}
}

// Render validates the request and returns the encoded figure.
// Validation errors propagate unchanged; nothing is rendered when
// validation fails.
func (v *Visualizer) Render(set points.Set, diagrams []DiagramType, axes []Axis) ([]byte, error) {
	if err := Validate(set, diagrams, axes); err != nil {
		return nil, err
	}
	if v.Renderer == nil {
		return nil, errors.New(errors.ErrCodeInternal, "visualizer has no renderer")
	}
	return v.Renderer.Render(set, diagrams, axes, v.Config)
}

// Visualize renders the request and, when pathToSave is non-empty, writes
// the figure there. The output format is the renderer's; pairing a path
// extension with a matching renderer backend is the caller's concern, as
// is presenting the figure afterwards (the CLI opens saved files or serves
// HTML figures over HTTP).
func (v *Visualizer) Visualize(set points.Set, diagrams []DiagramType, axes []Axis, pathToSave string) error {
	artifact, err := v.Render(set, diagrams, axes)
	if err != nil {
		return err
	}

	if pathToSave == "" {
		return nil
	}
	if err := errors.ValidateOutputPath(pathToSave); err != nil {
		return err
	}
	if err := os.WriteFile(pathToSave, artifact, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save figure to %s", pathToSave)
	}
	return nil
}
