package gsheets

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err      error
		expected Cause
	}{
		{&googleapi.Error{Code: 401}, Unauthorised},
		{&googleapi.Error{Code: 403}, Unauthorised},
		{&googleapi.Error{Code: 429}, RateLimited},
		{&googleapi.Error{Code: 503}, Unavailable},
		{&googleapi.Error{Code: 400}, Failed},
		{fmt.Errorf("append (%w)", &oauth2.RetrieveError{}), Unauthorised},
		{&net.OpError{Op: "dial", Err: errors.New("connection refused")}, Unavailable},
		{errors.New("qwerty"), Failed},
	}

	for _, test := range tests {
		if cause := classify(test.err); cause != test.expected {
			t.Errorf("Incorrect cause for '%v' - expected:%v, got:%v", test.err, test.expected, cause)
		}
	}
}

func TestWriteError(t *testing.T) {
	err := &WriteError{Cause: Unauthorised, Err: &googleapi.Error{Code: 401, Message: "Invalid Credentials"}}

	var apiError *googleapi.Error
	if !errors.As(err, &apiError) {
		t.Errorf("Expected WriteError to unwrap to googleapi.Error")
	}
}
