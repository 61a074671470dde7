package datalog

import (
	"fmt"
)

// LoginError is returned by Run when the spreadsheet cannot be opened. It is
// the only error that ends the sampling loop.
type LoginError struct {
	Spreadsheet string
	Err         error
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("unable to login and open spreadsheet '%v' (%v)", e.Spreadsheet, e.Err)
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Hint lists the usual causes of a login failure.
func (e *LoginError) Hint() string {
	return "Check the OAuth credentials, the spreadsheet name and make sure the spreadsheet is shared " +
		"with the client_email address in the credentials .json file"
}

// AppendError is a failed append through a sheet that was open. The sheet is
// discarded and logged in again on the next iteration.
type AppendError struct {
	Spreadsheet string
	Err         error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("error appending row to '%v' (%v)", e.Spreadsheet, e.Err)
}

func (e *AppendError) Unwrap() error {
	return e.Err
}
