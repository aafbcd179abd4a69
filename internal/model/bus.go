package model

import "time"

// Bus is a scheduled bus route. All six business fields are required
// before a record is considered valid.
type Bus struct {
	ID               string    `json:"id"`
	BusNumber        string    `json:"busNumber"`
	Seats            int       `json:"seats"`
	Route            string    `json:"route"`
	DeparturePoint   string    `json:"departurePoint"`
	DestinationPoint string    `json:"destinationPoint"`
	DepartureTime    string    `json:"departureTime"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
