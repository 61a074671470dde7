package gsheets

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Cause classifies a failed write to a worksheet.
type Cause int

const (
	Failed Cause = iota
	Unauthorised
	RateLimited
	Unavailable
)

func (c Cause) String() string {
	switch c {
	case Unauthorised:
		return "unauthorised"
	case RateLimited:
		return "rate-limited"
	case Unavailable:
		return "unavailable"
	default:
		return "failed"
	}
}

type WriteError struct {
	Cause Cause
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%v (%v)", e.Cause, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func classify(err error) Cause {
	var apiError *googleapi.Error
	var retrieveError *oauth2.RetrieveError
	var netError net.Error

	switch {
	case errors.As(err, &apiError):
		switch {
		case apiError.Code == http.StatusUnauthorized || apiError.Code == http.StatusForbidden:
			return Unauthorised
		case apiError.Code == http.StatusTooManyRequests:
			return RateLimited
		case apiError.Code >= 500:
			return Unavailable
		}

	case errors.As(err, &retrieveError):
		return Unauthorised

	case errors.As(err, &netError):
		return Unavailable
	}

	return Failed
}
