package server

import (
	"errors"
	"strconv"
	"strings"

	analyticsdomain "github.com/smallbiznis/shopdesk/internal/analytics/domain"
)

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseOptionalDateRange returns nil when both bounds are blank. A single
// bound is rejected.
func parseOptionalDateRange(start, end string) (*analyticsdomain.DateRange, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, errors.New("invalid_date_range")
	}
	r, err := analyticsdomain.ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
