package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"beerledger.io/BeerLedger/pkg/repository"
)

var ErrInvalidInput = errors.New("bad request")

const (
	defaultPage   = 1
	defaultLimit  = 12
	maxLimit      = 100
	defaultMinABV = 0
	defaultMaxABV = 100
)

// beerFilterFromQuery parses the listing parameters strictly: a
// malformed numeric is a validation error, never coerced to zero.
func beerFilterFromQuery(c *gin.Context) (repository.BeerFilter, error) {
	filter := repository.BeerFilter{Search: c.Query("search")}

	var err error

	if filter.Page, err = intQuery(c, "page", defaultPage); err != nil {
		return filter, err
	}

	if filter.Page < 1 {
		return filter, fmt.Errorf("%w: page must be at least 1", ErrInvalidInput)
	}

	if filter.Limit, err = intQuery(c, "limit", defaultLimit); err != nil {
		return filter, err
	}

	if filter.Limit < 1 || filter.Limit > maxLimit {
		return filter, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxLimit)
	}

	if filter.MinABV, err = floatQuery(c, "minAbv", defaultMinABV); err != nil {
		return filter, err
	}

	if filter.MaxABV, err = floatQuery(c, "maxAbv", defaultMaxABV); err != nil {
		return filter, err
	}

	if filter.MinABV > filter.MaxABV {
		return filter, fmt.Errorf("%w: minAbv must not exceed maxAbv", ErrInvalidInput)
	}

	if filter.StyleID, err = intPtrQuery(c, "style_id"); err != nil {
		return filter, err
	}

	if filter.AvailableID, err = intPtrQuery(c, "available_id"); err != nil {
		return filter, err
	}

	if filter.IsOrganic, err = boolPtrQuery(c, "is_organic"); err != nil {
		return filter, err
	}

	if filter.IsRetired, err = boolPtrQuery(c, "is_retired"); err != nil {
		return filter, err
	}

	return filter, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, name)
	}

	return value, nil
}

func floatQuery(c *gin.Context, name string, fallback float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, name)
	}

	return value, nil
}

func intPtrQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, name)
	}

	return &value, nil
}

func boolPtrQuery(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidInput, name)
	}

	return &value, nil
}
