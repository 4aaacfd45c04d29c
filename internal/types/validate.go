package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate validates the SignupRequest.
func (r *SignupRequest) Validate() error { return validate.Struct(r) }

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error { return validate.Struct(r) }

// Validate validates the AnalyzeRequest.
func (r *AnalyzeRequest) Validate() error { return validate.Struct(r) }

// Validate validates the StatusUpdateRequest, including the status value
// itself (validator tags cannot express the enum).
func (r *StatusUpdateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.Status.Valid() {
		return &InvalidEnumError{Field: "status", Value: string(r.Status)}
	}
	return nil
}

// Validate validates the MessageRequest.
func (r *MessageRequest) Validate() error { return validate.Struct(r) }

// Validate validates the RegenerateRequest. An empty tone is allowed and
// means "use the account's preferred tone".
func (r *RegenerateRequest) Validate() error {
	if r.Tone != "" && !r.Tone.Valid() {
		return &InvalidEnumError{Field: "tone", Value: string(r.Tone)}
	}
	return nil
}

// Validate validates the BulkDeleteRequest.
func (r *BulkDeleteRequest) Validate() error { return validate.Struct(r) }

// InvalidEnumError reports a value outside a closed enum.
type InvalidEnumError struct {
	Field string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return "invalid " + e.Field + ": " + e.Value
}
