package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Sender string

const (
	SenderClient Sender = "client"
	SenderAI     Sender = "ai"
	SenderHuman  Sender = "human"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// AppointmentStatuses lists every value accepted by the status update endpoint.
// Any transition between them is allowed; there is no state machine.
var AppointmentStatuses = []string{
	string(AppointmentStatusPending),
	string(AppointmentStatusConfirmed),
	string(AppointmentStatusCancelled),
	string(AppointmentStatusCompleted),
}

const DefaultChannel = "whatsapp"
