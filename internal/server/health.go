package server

import (
	"net/http"

	"github.com/iwvelando/omnicalc/pkg/health"
)

type bmiRequest struct {
	Weight float64 `json:"weight" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	System string  `json:"system,omitempty" validate:"omitempty,oneof=metric imperial"`
}

type bmrRequest struct {
	Weight   float64 `json:"weight" validate:"gt=0"`
	Height   float64 `json:"height" validate:"gt=0"`
	Age      int     `json:"age" validate:"gt=0,lte=150"`
	Sex      string  `json:"sex" validate:"required"`
	Activity string  `json:"activity,omitempty"`
}

type bmrResponse struct {
	health.BMRResult
	Activity string  `json:"activity,omitempty"`
	Calories float64 `json:"calories,omitempty"`
}

type idealWeightRequest struct {
	Height float64 `json:"height" validate:"gt=0"`
	Sex    string  `json:"sex" validate:"required"`
}

func (h *handler) handleBMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBMI"
	var req bmiRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	system, err := health.ParseSystem(req.System)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	result, err := health.BMI(req.Weight, req.Height, system)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, result)
}

func (h *handler) handleBMR(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBMR"
	var req bmrRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	sex, err := health.ParseSex(req.Sex)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	result, err := health.BMR(req.Weight, req.Height, req.Age, sex)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}

	resp := bmrResponse{BMRResult: result}
	if req.Activity != "" {
		calories, err := health.TDEE(result.BMR, health.ActivityLevel(req.Activity))
		if err != nil {
			h.respondCalcError(w, r, err, op)
			return
		}
		resp.Activity = req.Activity
		resp.Calories = calories
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) handleIdealWeight(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleIdealWeight"
	var req idealWeightRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	sex, err := health.ParseSex(req.Sex)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	result, err := health.IdealWeight(req.Height, sex)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, result)
}
