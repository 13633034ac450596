package api

import (
	"errors"
	"fmt"

	"github.com/annel0/shapebuilder/internal/shape"
	"github.com/annel0/shapebuilder/internal/vec"
)

// ErrMissingField возвращается, если у фигуры не задан обязательный параметр
var ErrMissingField = errors.New("missing required field")

// ShapeRequest - JSON-описание фигуры. Какие поля используются, зависит от Shape.
//
//	{"shape":"sphere","center":{"x":0,"y":70,"z":0},"radius":5,"policy":"hollow","material":"glass"}
type ShapeRequest struct {
	Shape    string `json:"shape" binding:"required"`
	Policy   string `json:"policy"`
	Material string `json:"material"`

	Center *vec.Vec3 `json:"center"`
	From   *vec.Vec3 `json:"from"`
	To     *vec.Vec3 `json:"to"`

	Radius      int `json:"radius"`
	RadiusX     int `json:"radius_x"`
	RadiusY     int `json:"radius_y"`
	RadiusZ     int `json:"radius_z"`
	MajorRadius int `json:"major_radius"`
	MinorRadius int `json:"minor_radius"`
	BaseRadius  int `json:"base_radius"`
	WaistRadius int `json:"waist_radius"`
	Height      int `json:"height"`

	Turns          float64         `json:"turns"`
	Axis           string          `json:"axis"`
	ShellThreshold float64         `json:"shell_threshold"`
	Points         []vec.Vec3Float `json:"points"`
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// ToSpec собирает shape.Spec из запроса. Размеры не проверяются: недопустимые
// значения дают пустую фигуру, ограничение объёма проверяет сервер.
func (r *ShapeRequest) ToSpec(defaultShell float64) (shape.Spec, error) {
	kind, err := shape.ParseKind(r.Shape)
	if err != nil {
		return nil, err
	}

	switch kind {
	case shape.KindLine, shape.KindCuboid:
		if r.From == nil {
			return nil, missing("from")
		}
		if r.To == nil {
			return nil, missing("to")
		}
		if kind == shape.KindLine {
			return shape.Line{From: *r.From, To: *r.To}, nil
		}
		return shape.Cuboid{From: *r.From, To: *r.To}, nil
	case shape.KindBezier:
		if len(r.Points) == 0 {
			return nil, missing("points")
		}
		return shape.Bezier{Points: r.Points}, nil
	}

	if r.Center == nil {
		return nil, missing("center")
	}
	c := *r.Center

	switch kind {
	case shape.KindCircle:
		axis, err := shape.ParseAxis(r.Axis)
		if err != nil {
			return nil, err
		}
		return shape.Circle{Center: c, Radius: r.Radius, Axis: axis}, nil
	case shape.KindSphere:
		return shape.Sphere{Center: c, Radius: r.Radius}, nil
	case shape.KindCylinder:
		return shape.Cylinder{Center: c, Radius: r.Radius, Height: r.Height}, nil
	case shape.KindCone:
		return shape.Cone{Center: c, Radius: r.Radius, Height: r.Height}, nil
	case shape.KindParaboloid:
		return shape.Paraboloid{Center: c, Radius: r.Radius, Height: r.Height}, nil
	case shape.KindTorus:
		return shape.Torus{Center: c, MajorRadius: r.MajorRadius, MinorRadius: r.MinorRadius}, nil
	case shape.KindHyperboloid:
		return shape.Hyperboloid{Center: c, BaseRadius: r.BaseRadius, WaistRadius: r.WaistRadius, Height: r.Height}, nil
	case shape.KindHelix:
		return shape.Helix{Center: c, Radius: r.Radius, Height: r.Height, Turns: r.Turns}, nil
	case shape.KindEllipsoid:
		shell := r.ShellThreshold
		if shell == 0 {
			shell = defaultShell
		} else if !shape.ValidShellThreshold(shell) {
			return nil, fmt.Errorf("shell_threshold must be in (0, 1), got %g", shell)
		}
		return shape.Ellipsoid{Center: c, RadiusX: r.RadiusX, RadiusY: r.RadiusY, RadiusZ: r.RadiusZ, ShellThreshold: shell}, nil
	}
	return nil, fmt.Errorf("%w: %q", shape.ErrUnknownShape, r.Shape)
}
