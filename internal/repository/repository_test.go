package repository

import (
	"bus-booking-api/internal/service"
)

// The repositories expose exactly what the service layer consumes; a
// method drifting out of these interfaces fails the build here.
var (
	_ service.UserStore  = (*UserRepository)(nil)
	_ service.BusStore   = (*BusRepository)(nil)
	_ service.AuditStore = (*AuditRepository)(nil)
)
