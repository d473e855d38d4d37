package dto

// RegisterReq represents the request body for POST /api/users.
type RegisterReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
