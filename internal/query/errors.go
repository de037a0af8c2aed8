package query

import (
	"errors"
	"net/http"
)

type QueryError struct {
	msg    string
	status int
}

func NewQueryError(status int, msg string) *QueryError {
	return &QueryError{msg: msg, status: status}
}

func (e QueryError) Error() string { return e.msg }
func (e QueryError) Status() int   { return e.status }

// ErrorStatus returns the status carried by a *QueryError, or 400 for any other error.
func ErrorStatus(err error) int {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Status()
	}
	return http.StatusBadRequest
}
