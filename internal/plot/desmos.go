package plot

import "github.com/njchilds90/gonewton"

// Desmos palette for the symbolic colours.
var desmosColors = map[gonewton.Color]string{
	gonewton.ColorGray:   "#6b6b6b",
	gonewton.ColorRed:    "#c74440",
	gonewton.ColorOrange: "#fa7e19",
}

// DesmosExpression is one entry of a Desmos expression list.
type DesmosExpression struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	LaTeX string `json:"latex"`
	Color string `json:"color,omitempty"`
}

// DesmosBounds mirrors Calculator.setMathBounds.
type DesmosBounds struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// DesmosState can be passed to a Desmos calculator with setExpressions and
// setMathBounds.
type DesmosState struct {
	Expressions []DesmosExpression `json:"expressions"`
	MathBounds  DesmosBounds       `json:"mathBounds"`
}

// Desmos exports the canvas.
func (c *Canvas) Desmos() DesmosState {
	prims := c.Primitives()
	v := c.Viewport()
	exprs := make([]DesmosExpression, len(prims))
	for i, p := range prims {
		exprs[i] = DesmosExpression{
			Type:  "expression",
			ID:    p.ID,
			LaTeX: p.LaTeX,
			Color: desmosColors[p.Color],
		}
	}
	return DesmosState{
		Expressions: exprs,
		MathBounds:  DesmosBounds{Left: v.Left, Right: v.Right, Bottom: v.Bottom, Top: v.Top},
	}
}
