package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aguxez/bmrcalc/calculator"
	"github.com/aguxez/bmrcalc/logging"
	"github.com/aguxez/bmrcalc/metrics"
	"github.com/aguxez/bmrcalc/models"
)

const maxBodyBytes = 1 << 16

type Calculator interface {
	Compute(in models.UserMeasurement) (models.CalculationResult, error)
}

type BatchStatusReporter interface {
	Status() models.BatchStatus
}

type Handler struct {
	calc    Calculator
	batch   BatchStatusReporter
	version string
	started time.Time
}

func NewHandler(calc Calculator, batch BatchStatusReporter, version string) *Handler {
	return &Handler{
		calc:    calc,
		batch:   batch,
		version: version,
		started: time.Now(),
	}
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeBody reads exactly one JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

type calculateResponse struct {
	Success bool `json:"success"`
	models.CalculationResult
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var in models.UserMeasurement
	if err := decodeBody(w, r, &in); err != nil {
		log.WithError(err).Debug("rejecting request body")
		resp := ErrorResponse{Message: "Invalid request body"}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			resp.Field = typeErr.Field
		}
		writeError(w, r, http.StatusBadRequest, resp)
		return
	}

	res, err := h.calc.Compute(in)
	if err != nil {
		var verr *calculator.ValidationError
		if errors.As(err, &verr) {
			metrics.ObserveCalculation(metrics.SourceHTTP, metrics.OutcomeInvalid, verr.Field)
			log.WithField("field", verr.Field).Info(verr.Message)
			writeError(w, r, http.StatusBadRequest, ErrorResponse{
				Message: verr.Message,
				Field:   verr.Field,
				Reason:  string(verr.Reason),
				Choices: verr.Choices,
			})
			return
		}

		metrics.ObserveCalculation(metrics.SourceHTTP, metrics.OutcomeError, "")
		log.WithError(err).Error("calculation failed")
		writeError(w, r, http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage})
		return
	}

	metrics.ObserveCalculation(metrics.SourceHTTP, metrics.OutcomeOK, "")
	log.WithFields(logrus.Fields{"bmr": res.BMR, "tdee": res.TDEE}).Debug("calculated")
	writeJSON(w, r, http.StatusOK, calculateResponse{Success: true, CalculationResult: res})
}

func (h *Handler) ActivityLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string][]string{"activityLevels": models.ActivityLabels()})
}

func (h *Handler) GenderOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string][]string{"genderOptions": models.Genders()})
}

func (h *Handler) ExampleRequest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.ExampleMeasurement())
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "BMR & TDEE Calculator API is running",
		"version": h.version,
	})
}

type healthResponse struct {
	Status  string              `json:"status"`
	Service string              `json:"service"`
	Version string              `json:"version"`
	Uptime  string              `json:"uptime"`
	Batch   *models.BatchStatus `json:"batch,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "healthy",
		Service: "BMR TDEE Calculator",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}
	if h.batch != nil {
		st := h.batch.Status()
		resp.Batch = &st
	}
	writeJSON(w, r, http.StatusOK, resp)
}
