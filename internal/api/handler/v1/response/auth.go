package response

type RegisterResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Roles   []string `json:"roles"`
}

type LoginResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Token    string   `json:"token,omitempty"`
	UserName string   `json:"userName,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}
