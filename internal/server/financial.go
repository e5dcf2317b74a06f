package server

import (
	"net/http"

	"github.com/iwvelando/omnicalc/pkg/finance"
	"github.com/iwvelando/omnicalc/pkg/loans"
)

type mortgageRequest struct {
	HomePrice    float64 `json:"homePrice" validate:"gt=0"`
	DownPayment  float64 `json:"downPayment" validate:"gte=0"`
	InterestRate float64 `json:"interestRate" validate:"gte=0,lte=100"`
	TermYears    int     `json:"termYears" validate:"gt=0,lte=100"`
}

type investmentResponse struct {
	finance.InvestmentResult
	Schedule []finance.YearBalance `json:"schedule"`
}

func (h *handler) handleLoan(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoan"
	var req loans.LoanRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	summary, err := loans.Summarize(req)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, summary)
}

func (h *handler) handleMortgage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMortgage"
	var req mortgageRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	summary, err := loans.Mortgage(req.HomePrice, req.DownPayment, req.InterestRate, req.TermYears)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, summary)
}

func (h *handler) handleInvestment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleInvestment"
	var req finance.InvestmentRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	result, err := finance.FutureValue(req)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	schedule, err := h.investments.GrowthSchedule(req)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, investmentResponse{InvestmentResult: result, Schedule: schedule})
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAmortization"
	var req loans.ScheduleRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	schedule, err := h.schedules.GenerateSchedule(req)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, schedule)
}
