package internal

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CommissionHandler struct {
	calculator *Calculator
	repo       RunRepository
}

// NewCommissionHandler accepts a nil repo, in which case runs are not stored.
func NewCommissionHandler(calculator *Calculator, repo RunRepository) *CommissionHandler {
	return &CommissionHandler{
		calculator: calculator,
		repo:       repo,
	}
}

func (h *CommissionHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/commissions", h.Calculate)
	app.Get("/runs", h.Runs)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (h *CommissionHandler) Calculate(c *fiber.Ctx) error {
	details, err := h.calculator.CalculateDetailed(c.UserContext(), ReaderLines(bytes.NewReader(c.Body())))
	if err != nil {
		slog.Info("failed to calculate commissions", "err", err)
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	run := NewRun(details)
	if h.repo != nil {
		if err := h.repo.Add(c.UserContext(), run); err != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
	}

	return c.JSON(run)
}

func (h *CommissionHandler) Runs(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.SendStatus(http.StatusNotFound)
	}

	var from, to time.Time
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		var err error
		if from, err = time.Parse(time.RFC3339Nano, fromStr); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid from"})
		}
		if to, err = time.Parse(time.RFC3339Nano, toStr); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid to"})
		}
	}

	runs, err := h.repo.Find(c.UserContext(), from, to)
	if err != nil {
		return c.SendStatus(http.StatusInternalServerError)
	}

	var total float64
	for _, r := range runs {
		total += r.TotalFee
	}

	return c.JSON(RunsResponse{
		TotalRuns: len(runs),
		TotalFee:  RoundCents(total),
		Runs:      runs,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidTransaction), errors.Is(err, ErrUnsupportedCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrRatesUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrInputUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
