package model

// AppointmentSummary is the read-only projection shown in the appointment list.
type AppointmentSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ProfessionalName string `json:"professional_name"`
	Date             string `json:"date"`
}

// PageQuery is what list endpoints are asked for. Page starts at 1.
type PageQuery struct {
	Page   int    `json:"page"`
	Search string `json:"search"`
}
