// Package server provides the HTTP REST API for the job assessor.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-assessor/internal/advisor"
	"github.com/jonathan/job-assessor/internal/identity"
	"github.com/jonathan/job-assessor/internal/session"
	"github.com/jonathan/job-assessor/internal/store"
	"github.com/jonathan/job-assessor/internal/types"
)

// HTTPStatus maps the error taxonomy to response status codes. External
// service failures surface as 502: the request was fine, the model was not.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrJobNotFound),
		errors.Is(err, identity.ErrProfileNotFound),
		errors.Is(err, store.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, identity.ErrLastProfile),
		errors.Is(err, session.ErrConfirmRequired),
		errors.Is(err, session.ErrNoActiveProfile):
		return http.StatusBadRequest
	}

	var enumErr *types.InvalidEnumError
	var validationErrs validator.ValidationErrors
	if errors.As(err, &enumErr) || errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	var apiErr *advisor.APICallError
	var parseErr *advisor.ParseError
	if errors.As(err, &apiErr) || errors.As(err, &parseErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// userMessage converts an error to the string returned to the client.
// External-service details stay in the logs; the client gets the generic
// message the original app showed.
func userMessage(err error) string {
	var apiErr *advisor.APICallError
	var parseErr *advisor.ParseError
	if errors.As(err, &apiErr) || errors.As(err, &parseErr) {
		return "analysis service failed, please try again"
	}
	return err.Error()
}
