package domain

// Credentials is the login payload forwarded verbatim to the external
// auth endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput is the registration payload. AdminKey is validated
// server-side only; the client merely checks it is non-empty when the
// admin role is requested.
type RegisterInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            string `json:"role"`
	AdminKey        string `json:"admin_key,omitempty"`
}

// AuthPayload is the success body of the login and register endpoints.
type AuthPayload struct {
	User    *User  `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
