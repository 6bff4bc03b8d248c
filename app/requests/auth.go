// Package requests holds the typed request bodies and their validation
// rules. Rule strings follow pkg/validate; field-error maps produced here
// go straight into the response envelope's data key.
package requests

// RegisterRequest creates a new account. Email uniqueness is enforced by
// AuthService; the controller merges that failure into the same error map
// as the tag rules.
type RegisterRequest struct {
	Name                 string `json:"name"                  validate:"required,between=2,100"`
	Email                string `json:"email"                 validate:"required,email,max=100"`
	Password             string `json:"password"              validate:"required,min=6,confirmed"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest only checks shape; credentials are verified by AuthService.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
