package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/forecast"
	"github.com/carson-networks/forecast-server/internal/invoice"
	"github.com/carson-networks/forecast-server/internal/series"
	"github.com/carson-networks/forecast-server/internal/service"
)

// ToHumaError maps pipeline errors onto HTTP statuses. Anything unknown is a
// 500 carrying msg.
func ToHumaError(err error, msg string) error {
	var (
		schemaErr       *invoice.SchemaError
		readErr         *invoice.ReadError
		insufficientErr *series.InsufficientDataError
		rangeErr        *service.DateOutOfRangeError
	)

	switch {
	case errors.As(err, &schemaErr):
		return huma.NewError(http.StatusBadRequest, "batch is missing required columns", err)
	case errors.As(err, &rangeErr):
		return huma.NewError(http.StatusBadRequest, rangeErr.Error())
	case errors.Is(err, series.ErrInvalidTestWindow), errors.Is(err, forecast.ErrInvalidSteps):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, invoice.ErrEmptyResult):
		return huma.NewError(http.StatusNotFound, "no invoice history", err)
	case errors.As(err, &insufficientErr), errors.Is(err, forecast.ErrTooShort):
		return huma.NewError(http.StatusConflict, "not enough history for this view", err)
	case errors.As(err, &readErr):
		return huma.NewError(http.StatusInternalServerError, "history store unreadable", err)
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
