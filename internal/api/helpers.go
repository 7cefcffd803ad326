package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/pish-pish/bmc2json/pkg/bmc"
)

// headerConversionID carries the conversion identifier on binary
// responses, where no JSON body exists to hold it.
const headerConversionID = "X-Conversion-Id"

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeRateLimited(c *echo.Context) error {
	return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "conversion rate limit exceeded")
}

func writeServerError(c *echo.Context, err error) error {
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
		},
	})
}

// writeConvertError maps codec faults onto client errors; anything else
// is a server error.
func writeConvertError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, bmc.ErrSignature),
		errors.Is(err, bmc.ErrSectionCount),
		errors.Is(err, bmc.ErrTruncated),
		errors.Is(err, bmc.ErrColorSyntax),
		errors.Is(err, bmc.ErrDocumentShape),
		errors.Is(err, bmc.ErrTableTooLarge):
		return writeBadRequest(c, err.Error())
	}
	return writeServerError(c, err)
}

// readBody reads a conversion request body, rejecting empty and oversized
// payloads before they reach a codec.
func readBody(c *echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	if len(body) == 0 {
		return nil, errors.New("request body is empty")
	}
	return body, nil
}

// parseGroup reads the optional group query parameter. Anything that is
// not a positive integer means no grouping.
func parseGroup(v string) int {
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func newConversionID() string {
	return "conv_" + uuid.NewString()
}
