package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/zephyrtronium/graphcalc"
	"github.com/zephyrtronium/graphcalc/finance"
	"github.com/zephyrtronium/graphcalc/newton"
	"github.com/zephyrtronium/graphcalc/normal"
)

type errorResponse struct {
	Error string `json:"error"`
	// Pos is the column of the offending token for expression errors.
	Pos int `json:"pos,omitempty"`
}

type evalRequest struct {
	Expr string `json:"expr"`
	// Var names the variable; empty means graphcalc.DefaultVar.
	Var string   `json:"var,omitempty"`
	X   *float64 `json:"x,omitempty"`
}

type evalResponse struct {
	Value  *float64 `json:"value"`
	Finite bool     `json:"finite"`
	Expr   string   `json:"expr"`
	Vars   []string `json:"vars"`
}

type sampleRequest struct {
	Expr    string  `json:"expr"`
	Var     string  `json:"var,omitempty"`
	XMin    float64 `json:"xmin"`
	XMax    float64 `json:"xmax"`
	Columns int     `json:"columns,omitempty"`
}

type sampleResponse struct {
	// Segments holds each segment as a list of [x, y] pairs.
	Segments [][][2]float64 `json:"segments"`
}

type irrRequest struct {
	// Flows is a comma-separated list of amounts, index 0 first.
	Flows string `json:"flows"`
}

type irrResponse struct {
	Converged  bool     `json:"converged"`
	Rate       *float64 `json:"rate,omitempty"`
	Percent    *float64 `json:"percent,omitempty"`
	Iterations int      `json:"iterations"`
	// Residual is the NPV at the rate in extended precision.
	Residual string `json:"residual,omitempty"`
}

type contractRequest struct {
	Kind   string  `json:"kind"`
	Spot   float64 `json:"spot"`
	Strike float64 `json:"strike"`
	Rate   float64 `json:"rate"`
	Years  float64 `json:"years"`
	Sigma  float64 `json:"sigma,omitempty"`
	Price  float64 `json:"price,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if !s.decode(w, r, &req) {
		return
	}
	e, err := s.parse(req.Expr, req.Var)
	if err != nil {
		s.inputError(w, err)
		return
	}
	vars := graphcalc.Bindings{}
	if req.X != nil {
		vars[e.Var()] = *req.X
	}
	v, err := e.Eval(vars)
	if err != nil {
		s.inputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evalResponse{
		Value:  finite(v),
		Finite: finite(v) != nil,
		Expr:   e.String(),
		Vars:   e.Vars(),
	})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if !s.decode(w, r, &req) {
		return
	}
	cfg := s.cfg.Load()
	if req.Columns == 0 {
		req.Columns = cfg.Sampler.DefaultColumns
	}
	if req.Columns > cfg.Sampler.MaxColumns {
		err := fmt.Errorf("columns %d exceeds the limit of %d", req.Columns, cfg.Sampler.MaxColumns)
		s.metrics.RecordInputError(err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	e, err := s.parse(req.Expr, req.Var)
	if err != nil {
		s.inputError(w, err)
		return
	}
	segs, err := graphcalc.Sample(e, req.XMin, req.XMax, req.Columns)
	if err != nil {
		s.inputError(w, err)
		return
	}
	s.metrics.sampledSegments.Observe(float64(len(segs)))
	resp := sampleResponse{Segments: make([][][2]float64, len(segs))}
	for i, seg := range segs {
		pts := make([][2]float64, len(seg))
		for j, p := range seg {
			pts[j] = [2]float64{p.X, p.Y}
		}
		resp.Segments[i] = pts
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIRR(w http.ResponseWriter, r *http.Request) {
	var req irrRequest
	if !s.decode(w, r, &req) {
		return
	}
	flows, err := finance.ParseCashFlows(req.Flows)
	if err != nil {
		s.inputError(w, err)
		return
	}
	cfg := s.cfg.Load()
	res := finance.IRR(flows, newton.Tolerance(cfg.Solver.Tolerance), newton.MaxIter(cfg.Solver.MaxIter))
	s.metrics.RecordSolve("irr", res.Iterations, res.Converged)
	resp := irrResponse{Converged: res.Converged, Iterations: res.Iterations}
	if rate, err := res.Root(); err == nil {
		pct := rate * 100
		resp.Rate, resp.Percent = &rate, &pct
		if v, err := finance.Residual(flows, rate, cfg.Solver.ResidualPrec); err == nil {
			resp.Residual = v.Text('g', 10)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCDF(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		s.inputError(w, fmt.Errorf("invalid x: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]*float64{"x": finite(x), "p": finite(normal.CDF(x))})
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := req.contract()
	if err != nil {
		s.inputError(w, err)
		return
	}
	p, err := finance.BlackScholes(c, req.Sigma)
	if err != nil {
		s.inputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*float64{"price": finite(p)})
}

func (s *Server) handleImpliedVol(w http.ResponseWriter, r *http.Request) {
	var req contractRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := req.contract()
	if err != nil {
		s.inputError(w, err)
		return
	}
	cfg := s.cfg.Load()
	res, err := finance.ImpliedVol(c, req.Price, newton.Tolerance(cfg.Solver.Tolerance), newton.MaxIter(cfg.Solver.MaxIter))
	if err != nil {
		s.inputError(w, err)
		return
	}
	s.metrics.RecordSolve("implied_vol", res.Iterations, res.Converged)
	resp := map[string]any{"converged": res.Converged, "iterations": res.Iterations}
	if v, err := res.Root(); err == nil {
		resp["sigma"] = v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (req *contractRequest) contract() (finance.Contract, error) {
	kind, err := finance.ParseOptionKind(req.Kind)
	if err != nil {
		return finance.Contract{}, err
	}
	return finance.Contract{
		Kind:   kind,
		Spot:   req.Spot,
		Strike: req.Strike,
		Rate:   req.Rate,
		Years:  req.Years,
	}, nil
}

// parse parses an expression through the cache with the configured limits.
func (s *Server) parse(src, name string) (*graphcalc.Expr, error) {
	opts := []graphcalc.ParseOption{graphcalc.MaxDepth(s.cfg.Load().Sampler.MaxDepth)}
	if name != "" {
		if err := graphcalc.CheckVar(name); err != nil {
			return nil, err
		}
		opts = append(opts, graphcalc.Var(name))
	}
	return s.cache.Parse(src, opts...)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Load().Server.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// inputError responds 400 with the error, including its position for
// expression errors.
func (s *Server) inputError(w http.ResponseWriter, err error) {
	s.metrics.RecordInputError(err)
	resp := errorResponse{Error: err.Error()}
	var ie graphcalc.InputError
	if errors.As(err, &ie) {
		resp.Pos = ie.Pos()
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// finite returns a pointer to x, or nil if x is NaN or infinite, which JSON
// cannot represent.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
