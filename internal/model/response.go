package model

type MessageResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	UserID  string `json:"userId"`
}

type BusResponse struct {
	Message string `json:"message"`
	Bus     Bus    `json:"bus"`
}
