package server

import (
	"net/http"

	"github.com/iwvelando/omnicalc/pkg/arith"
	"github.com/iwvelando/omnicalc/pkg/currency"
	"github.com/iwvelando/omnicalc/pkg/format"
	"github.com/iwvelando/omnicalc/pkg/mathutil"
	"github.com/iwvelando/omnicalc/pkg/units"
)

type unitCategory struct {
	Name  units.Category `json:"name"`
	Units []string       `json:"units"`
}

type unitConvertRequest struct {
	Category string  `json:"category" validate:"required"`
	From     string  `json:"from" validate:"required"`
	To       string  `json:"to" validate:"required"`
	Value    float64 `json:"value"`
}

type resultResponse struct {
	Result float64 `json:"result"`
}

type ratesResponse struct {
	Currencies []currency.Currency `json:"currencies"`
	Base       string              `json:"base"`
	Date       string              `json:"date"`
	Rates      map[string]float64  `json:"rates"`
	Stale      bool                `json:"stale,omitempty"`
}

type currencyConvertRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	From   string  `json:"from" validate:"required,len=3"`
	To     string  `json:"to" validate:"required,len=3"`
}

type currencyConvertResponse struct {
	Result    float64 `json:"result"`
	Rate      float64 `json:"rate"`
	Formatted string  `json:"formatted"`
	Date      string  `json:"date"`
	Stale     bool    `json:"stale,omitempty"`
}

type calcStep struct {
	Op    string  `json:"op" validate:"required"`
	Value float64 `json:"value"`
}

type calcEvaluateRequest struct {
	Initial float64    `json:"initial"`
	Steps   []calcStep `json:"steps" validate:"dive"`
}

type calcFunctionRequest struct {
	Name  string  `json:"name" validate:"required"`
	Value float64 `json:"value"`
}

// handleUnits lists every category with its units, or a single category
// when ?category= is given.
func (h *handler) handleUnits(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUnits"
	names := units.Categories()
	if raw := r.URL.Query().Get("category"); raw != "" {
		names = []units.Category{units.Category(raw)}
	}

	categories := make([]unitCategory, 0, len(names))
	for _, name := range names {
		list, err := units.Units(name)
		if err != nil {
			h.respondCalcError(w, r, err, op)
			return
		}
		categories = append(categories, unitCategory{Name: name, Units: list})
	}
	h.writeJSON(w, r, http.StatusOK, map[string][]unitCategory{"categories": categories})
}

func (h *handler) handleUnitConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUnitConvert"
	var req unitConvertRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := units.Convert(units.Category(req.Category), req.From, req.To, req.Value)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, resultResponse{Result: mathutil.RoundTo(result, 6)})
}

func (h *handler) latestRates(w http.ResponseWriter, r *http.Request, op string) (*currency.Rates, bool) {
	if h.rates == nil {
		h.respondErrorWithOp(w, r, http.StatusServiceUnavailable, "exchange rates are not configured", op)
		return nil, false
	}
	rates, err := h.rates.Latest(r.Context())
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return nil, false
	}
	return rates, true
}

func (h *handler) handleCurrencyRates(w http.ResponseWriter, r *http.Request) {
	rates, ok := h.latestRates(w, r, "server.handleCurrencyRates")
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, ratesResponse{
		Currencies: currency.Supported(),
		Base:       rates.Base,
		Date:       rates.Date,
		Rates:      rates.Supported(),
		Stale:      rates.Stale,
	})
}

func (h *handler) handleCurrencyConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCurrencyConvert"
	var req currencyConvertRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	target, err := currency.Lookup(req.To)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	if _, err := currency.Lookup(req.From); err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}

	rates, ok := h.latestRates(w, r, op)
	if !ok {
		return
	}
	result, err := rates.Convert(req.Amount, req.From, req.To)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	rate, err := rates.Rate(req.From, req.To)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}

	h.writeJSON(w, r, http.StatusOK, currencyConvertResponse{
		Result:    mathutil.Round(result),
		Rate:      mathutil.RoundTo(rate, 6),
		Formatted: format.Money(result, target.Symbol),
		Date:      rates.Date,
		Stale:     rates.Stale,
	})
}

func (h *handler) handleCalcFunctions(w http.ResponseWriter, r *http.Request) {
	pi, _ := arith.Constant("pi")
	e, _ := arith.Constant("e")
	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"functions": arith.Functions(),
		"operators": []arith.Operator{arith.Add, arith.Subtract, arith.Multiply, arith.Divide, arith.Modulo},
		"constants": map[string]float64{"pi": pi, "e": e},
	})
}

func (h *handler) handleCalcEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalcEvaluate"
	var req calcEvaluateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	steps := make([]arith.Step, 0, len(req.Steps))
	for _, s := range req.Steps {
		operator, err := arith.ParseOperator(s.Op)
		if err != nil {
			h.respondCalcError(w, r, err, op)
			return
		}
		steps = append(steps, arith.Step{Op: operator, Value: s.Value})
	}

	result, err := arith.Chain(req.Initial, steps)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, resultResponse{Result: result})
}

func (h *handler) handleCalcFunction(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalcFunction"
	var req calcFunctionRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := arith.Function(req.Name, req.Value)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, resultResponse{Result: result})
}
