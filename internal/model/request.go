package model

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BusRequest is the payload for both create and update. Seats is a
// pointer so a missing field can be told apart from zero.
type BusRequest struct {
	BusNumber        string `json:"busNumber"`
	Seats            *int   `json:"seats"`
	Route            string `json:"route"`
	DeparturePoint   string `json:"departurePoint"`
	DestinationPoint string `json:"destinationPoint"`
	DepartureTime    string `json:"departureTime"`
}
