package entities

// IssueTokenInput is the identity payload exchanged for a bearer token.
type IssueTokenInput struct {
	Email string `json:"email" binding:"required,email"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
