package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iwvelando/omnicalc/pkg/bikram"
	"github.com/iwvelando/omnicalc/pkg/datetime"
	"github.com/iwvelando/omnicalc/pkg/format"
)

// Conversion directions used as metric labels.
const (
	directionAdToBs = "ad_to_bs"
	directionBsToAd = "bs_to_ad"
)

// timezoneLayout is the wall clock format accepted by the timezone endpoint.
const timezoneLayout = "2006-01-02T15:04"

type calendarDateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type bsResponse struct {
	Valid     bool          `json:"valid"`
	Date      bikram.BsDate `json:"date"`
	Formatted string        `json:"formatted"`
}

type adResponse struct {
	Valid     bool          `json:"valid"`
	Date      bikram.AdDate `json:"date"`
	Formatted string        `json:"formatted"`
	Weekday   string        `json:"weekday"`
}

type bsMonth struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Days   int    `json:"days,omitempty"`
}

type bsMonthsResponse struct {
	Year       int           `json:"year,omitempty"`
	DaysInYear int           `json:"daysInYear,omitempty"`
	Months     []bsMonth     `json:"months"`
	FirstBs    bikram.BsDate `json:"firstBs"`
	LastBs     bikram.BsDate `json:"lastBs"`
	FirstAd    bikram.AdDate `json:"firstAd"`
	LastAd     bikram.AdDate `json:"lastAd"`
}

type todayResponse struct {
	Ad bikram.AdDate `json:"ad"`
	Bs bikram.BsDate `json:"bs"`
}

type ageRequest struct {
	BirthDate string `json:"birthDate" validate:"required"`
	Today     string `json:"today,omitempty"`
}

type diffRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type spanResponse struct {
	datetime.Span
	From string `json:"from"`
	To   string `json:"to"`
}

type addDaysRequest struct {
	Date      string `json:"date" validate:"required"`
	Days      int    `json:"days" validate:"gte=0"`
	Operation string `json:"operation,omitempty" validate:"omitempty,oneof=add subtract"`
}

type dateResponse struct {
	Date      string `json:"date"`
	Formatted string `json:"formatted"`
}

type timezoneRequest struct {
	DateTime string `json:"dateTime" validate:"required"`
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
}

type timezoneResponse struct {
	DateTime string `json:"dateTime"`
	Zone     string `json:"zone"`
	Offset   string `json:"offset"`
}

func (h *handler) handleAdToBs(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAdToBs"
	var req calendarDateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	bs, err := bikram.AdToBs(req.Year, req.Month, req.Day)
	h.observeConversion(directionAdToBs, err)
	if err != nil {
		h.respondInvalidDate(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, bsResponse{Valid: true, Date: bs, Formatted: bs.String()})
}

func (h *handler) handleBsToAd(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBsToAd"
	var req calendarDateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	ad, err := bikram.BsToAd(req.Year, req.Month, req.Day)
	h.observeConversion(directionBsToAd, err)
	if err != nil {
		h.respondInvalidDate(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, adResponse{
		Valid:     true,
		Date:      ad,
		Formatted: ad.String(),
		Weekday:   ad.Time().Weekday().String(),
	})
}

// handleBsMonths lists the month names and the supported range. With a
// ?year= query the month lengths of that BS year are included.
func (h *handler) handleBsMonths(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBsMonths"
	firstBs, lastBs := bikram.SupportedBsRange()
	firstAd, lastAd := bikram.SupportedAdRange()
	resp := bsMonthsResponse{FirstBs: firstBs, LastBs: lastBs, FirstAd: firstAd, LastAd: lastAd}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "year must be an integer", op)
			return
		}
		total, err := bikram.DaysInYear(parsed)
		if err != nil {
			h.respondInvalidDate(w, r, err, op)
			return
		}
		year = parsed
		resp.Year = year
		resp.DaysInYear = total
	}

	for i, name := range bikram.MonthNames() {
		month := bsMonth{Number: i + 1, Name: name}
		if year != 0 {
			// year was validated above
			month.Days, _ = bikram.DaysInMonth(year, i+1)
		}
		resp.Months = append(resp.Months, month)
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) handleToday(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	bs, err := bikram.TodayBs(now)
	if err != nil {
		h.respondInvalidDate(w, r, err, "server.handleToday")
		return
	}
	y, m, d := now.Date()
	h.writeJSON(w, r, http.StatusOK, todayResponse{Ad: bikram.AdDate{Year: y, Month: int(m), Day: d}, Bs: bs})
}

func (h *handler) handleAge(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAge"
	var req ageRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	birth, err := datetime.ParseDate(req.BirthDate)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	today := h.now()
	if req.Today != "" {
		if today, err = datetime.ParseDate(req.Today); err != nil {
			h.respondCalcError(w, r, err, op)
			return
		}
	}

	span, err := datetime.Age(birth, today)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, spanResponse{
		Span: span,
		From: format.LongDate(birth),
		To:   format.LongDate(today),
	})
}

func (h *handler) handleDiff(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDiff"
	var req diffRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	start, err := datetime.ParseDate(req.StartDate)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	end, err := datetime.ParseDate(req.EndDate)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}

	span, err := datetime.Difference(start, end)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, spanResponse{
		Span: span,
		From: format.LongDate(start),
		To:   format.LongDate(end),
	})
}

func (h *handler) handleAddDays(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddDays"
	var req addDaysRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	start, err := datetime.ParseDate(req.Date)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}

	var result time.Time
	if req.Operation == "subtract" {
		result = datetime.SubtractDays(start, req.Days)
	} else {
		result = datetime.AddDays(start, req.Days)
	}
	h.writeJSON(w, r, http.StatusOK, dateResponse{
		Date:      result.Format(datetime.DateLayout),
		Formatted: format.LongDate(result),
	})
}

func (h *handler) handleTimezone(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTimezone"
	var req timezoneRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	wall, err := time.Parse(timezoneLayout, req.DateTime)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "dateTime must be formatted as YYYY-MM-DDTHH:MM", op)
		return
	}
	converted, err := datetime.ConvertTimezone(wall, req.From, req.To)
	if err != nil {
		h.respondCalcError(w, r, err, op)
		return
	}
	h.writeJSON(w, r, http.StatusOK, timezoneResponse{
		DateTime: converted.Format(timezoneLayout),
		Zone:     req.To,
		Offset:   converted.Format("-07:00"),
	})
}

func (h *handler) observeConversion(direction string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveConversion(direction, err)
	}
}
