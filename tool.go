package gonewton

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Kind   ErrorKind   `json:"kind,omitempty"`
}

func toolError(err error) ToolResponse {
	return ToolResponse{Error: err.Error(), Kind: KindOf(err)}
}

type solveParams struct {
	Function      string  `mapstructure:"function"`
	X0            float64 `mapstructure:"x0"`
	Epsilon       float64 `mapstructure:"epsilon"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

type pointParams struct {
	Function string  `mapstructure:"function"`
	X0       float64 `mapstructure:"x0"`
}

type functionParams struct {
	Function string `mapstructure:"function"`
}

type derivativeParams struct {
	Function string `mapstructure:"function"`
	Order    int    `mapstructure:"order"`
}

// decodeParams copies params into out. Numbers may arrive as JSON numbers
// or numeric strings; unknown keys are rejected.
func decodeParams(params map[string]interface{}, out interface{}, required ...string) error {
	for _, key := range required {
		if _, ok := params[key]; !ok {
			return fmt.Errorf("%w: missing param: %s", ErrToolParams, key)
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrToolParams, err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", ErrToolParams, err)
	}
	return nil
}

// parseFunction normalises and parses equation text.
func parseFunction(text string) (string, *Expression, error) {
	norm, err := Normalize(text)
	if err != nil {
		return "", nil, err
	}
	f, err := Parse(norm)
	if err != nil {
		return "", nil, err
	}
	return norm, f, nil
}

// HandleToolCall dispatches req with a default Solver.
func HandleToolCall(req ToolRequest) ToolResponse {
	return NewSolver().HandleToolCall(req)
}

// HandleToolCall dispatches one tool request. Failures are reported in the
// response, never as a Go error.
func (s *Solver) HandleToolCall(req ToolRequest) ToolResponse {
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	solve := func() (Outcome, error) {
		var p solveParams
		if err := decodeParams(req.Params, &p, "function", "x0", "epsilon"); err != nil {
			return Outcome{}, err
		}
		solver := s
		if p.MaxIterations > 0 {
			solver = &Solver{logger: s.logger, find: append(append([]Option{}, s.find...), WithMaxIterations(p.MaxIterations))}
		}
		out := solver.Solve(Request{Function: p.Function, X0: p.X0, Epsilon: p.Epsilon})
		return out, out.Err
	}

	switch req.Tool {
	case "find_root":
		out, err := solve()
		if err != nil {
			return toolError(err)
		}
		return ToolResponse{
			Result: out,
			LaTeX:  out.LaTeX,
			String: fmt.Sprintf("x ≈ %.10f after %d iterations (%s)", out.Result.Root, out.Result.Iterations, out.Result.Termination),
		}

	case "plot":
		out, err := solve()
		if err != nil {
			return toolError(err)
		}
		return ToolResponse{Result: out.Plot, LaTeX: out.LaTeX}

	case "check_convergence":
		var p pointParams
		if err := decodeParams(req.Params, &p, "function", "x0"); err != nil {
			return toolError(err)
		}
		_, f, err := parseFunction(p.Function)
		if err != nil {
			return toolError(err)
		}
		rep, err := CheckConvergence(f, p.X0)
		if err != nil {
			return toolError(err)
		}
		return ToolResponse{Result: rep, String: rep.Message()}

	case "normalize":
		var p functionParams
		if err := decodeParams(req.Params, &p, "function"); err != nil {
			return toolError(err)
		}
		norm, err := Normalize(p.Function)
		if err != nil {
			return toolError(err)
		}
		return ToolResponse{Result: norm, String: norm}

	case "derivative":
		p := derivativeParams{Order: 1}
		if err := decodeParams(req.Params, &p, "function"); err != nil {
			return toolError(err)
		}
		_, f, err := parseFunction(p.Function)
		if err != nil {
			return toolError(err)
		}
		d, err := f.Derivative(p.Order)
		if err != nil {
			return toolError(err)
		}
		return ToolResponse{Result: d.Root().toJSON(), LaTeX: d.LaTeX(), String: d.String()}

	case "mcp_spec":
		return ToolResponse{Result: json.RawMessage(MCPToolSpec())}
	}
	return toolError(fmt.Errorf("%w: %q", ErrUnknownTool, req.Tool))
}

// ToolNames lists the tools HandleToolCall accepts, sorted.
func ToolNames() []string {
	names := make([]string, 0, len(toolSpecs))
	for _, t := range toolSpecs {
		names = append(names, t.name)
	}
	sort.Strings(names)
	return names
}

type toolSpec struct {
	name        string
	description string
	required    []string
	props       map[string]string
}

var toolSpecs = []toolSpec{
	{"find_root", "Find a root of f(x) with Newton–Raphson. Accepts 'A = B', 'y = expr' and 'f(x) = expr'. Optional: max_iterations",
		[]string{"function", "x0", "epsilon"},
		map[string]string{"function": "string", "x0": "number", "epsilon": "number", "max_iterations": "integer"}},
	{"check_convergence", "Check |f(x0)·f''(x0)| < f'(x0)^2 at the initial guess",
		[]string{"function", "x0"}, map[string]string{"function": "string", "x0": "number"}},
	{"normalize", "Rewrite equation text into zero-seeking form",
		[]string{"function"}, map[string]string{"function": "string"}},
	{"derivative", "Exact symbolic derivative d/dx. Optional: order (1 or 2)",
		[]string{"function"}, map[string]string{"function": "string", "order": "integer"}},
	{"plot", "Solve and return the plot primitives and viewport",
		[]string{"function", "x0", "epsilon"},
		map[string]string{"function": "string", "x0": "number", "epsilon": "number", "max_iterations": "integer"}},
	{"mcp_spec", "Return this tool schema", []string{}, map[string]string{}},
}

// MCPToolSpec returns the JSON schema of every tool.
func MCPToolSpec() string {
	tools := make([]map[string]interface{}, len(toolSpecs))
	for i, t := range toolSpecs {
		tools[i] = ts(t.name, t.description, t.required, t.props)
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
