package request

// SignUpRequest is the request body for creating an account
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// SignInRequest is the request body for signing in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TapRequest is the optional request body for tapping. Count defaults to 1.
type TapRequest struct {
	Count int `json:"count"`
}
