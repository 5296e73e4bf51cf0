package gonewton

import (
	"errors"
	"strconv"
	"strings"
)

// Stable primitive identifiers.
const (
	IDFunction  = "func"
	IDAxis      = "axis"
	IDRoot      = "root"
	IDIterLine  = "iterLine"
	iterPointID = "iterP"

	// DefaultKnownPoints is the number of iteration point ids a reset clears.
	DefaultKnownPoints = 200

	viewHalfWidth = 6.0
)

// IterPointID returns the id of the i-th trace marker.
func IterPointID(i int) string { return iterPointID + strconv.Itoa(i) }

type PrimitiveKind string

const (
	PrimitiveCurve    PrimitiveKind = "curve"
	PrimitivePoint    PrimitiveKind = "point"
	PrimitivePolyline PrimitiveKind = "polyline"
)

// Color is a symbolic colour name; renderers map it to their palette.
type Color string

const (
	ColorDefault Color = ""
	ColorGray    Color = "gray"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Primitive is one drawable, addressed by ID.
type Primitive struct {
	ID     string        `json:"id"`
	Kind   PrimitiveKind `json:"kind"`
	LaTeX  string        `json:"latex"`
	Points []Point       `json:"points,omitempty"`
	Color  Color         `json:"color,omitempty"`
}

type Viewport struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// Plot is the ordered set of primitives for one solve.
type Plot struct {
	Primitives []Primitive `json:"primitives"`
	Viewport   Viewport    `json:"viewport"`
}

// IDs returns the primitive ids in drawing order.
func (p Plot) IDs() []string {
	ids := make([]string, len(p.Primitives))
	for i, prim := range p.Primitives {
		ids[i] = prim.ID
	}
	return ids
}

// Plotter is an identifier-keyed drawing surface.
type Plotter interface {
	// SetPrimitive adds or replaces the primitive with the given id.
	SetPrimitive(id string, p Primitive) error
	// RemovePrimitive deletes id. A missing id is not an error.
	RemovePrimitive(id string) error
	SetViewport(v Viewport) error
}

// BuildPlot turns a result into primitives: the curve y = expr, the x axis,
// the root marker, one marker per trace point and the iteration polyline.
func BuildPlot(expr string, res RootResult) Plot {
	prims := make([]Primitive, 0, len(res.Trace)+4)
	prims = append(prims,
		Primitive{ID: IDFunction, Kind: PrimitiveCurve, LaTeX: "y=" + expr},
		Primitive{ID: IDAxis, Kind: PrimitiveCurve, LaTeX: "y=0", Color: ColorGray},
		pointPrimitive(IDRoot, Point{X: res.Root}, ColorRed),
	)

	path := make([]Point, len(res.Trace))
	for i, tp := range res.Trace {
		path[i] = Point{X: tp.X, Y: tp.FX}
		prims = append(prims, pointPrimitive(IterPointID(i), path[i], ColorOrange))
	}
	prims = append(prims, Primitive{
		ID:     IDIterLine,
		Kind:   PrimitivePolyline,
		LaTeX:  "[" + joinPoints(path) + "]",
		Points: path,
		Color:  ColorOrange,
	})

	return Plot{
		Primitives: prims,
		Viewport: Viewport{
			Left:   res.Root - viewHalfWidth,
			Right:  res.Root + viewHalfWidth,
			Bottom: -viewHalfWidth,
			Top:    viewHalfWidth,
		},
	}
}

func pointPrimitive(id string, pt Point, c Color) Primitive {
	return Primitive{ID: id, Kind: PrimitivePoint, LaTeX: pointLaTeX(pt), Points: []Point{pt}, Color: c}
}

func pointLaTeX(pt Point) string {
	return "(" + strconv.FormatFloat(pt.X, 'f', -1, 64) + "," + strconv.FormatFloat(pt.Y, 'f', -1, 64) + ")"
}

func joinPoints(pts []Point) string {
	parts := make([]string, len(pts))
	for i, pt := range pts {
		parts[i] = pointLaTeX(pt)
	}
	return strings.Join(parts, ",")
}

// KnownIDs lists every id a plot with up to n trace points can use.
func KnownIDs(n int) []string {
	ids := []string{IDFunction, IDAxis, IDRoot, IDIterLine}
	for i := 0; i < n; i++ {
		ids = append(ids, IterPointID(i))
	}
	return ids
}

// Retract removes ids from p. It keeps going past failures and returns
// them joined.
func Retract(p Plotter, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := p.RemovePrimitive(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Draw retracts the previous rendering, then sets every primitive of plot
// and its viewport.
func Draw(p Plotter, plot Plot, previous []string) error {
	if err := Retract(p, previous); err != nil {
		return err
	}
	for _, prim := range plot.Primitives {
		if err := p.SetPrimitive(prim.ID, prim); err != nil {
			return err
		}
	}
	return p.SetViewport(plot.Viewport)
}
