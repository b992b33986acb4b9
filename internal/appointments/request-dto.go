package appointments

// CreateAppointmentRequest mirrors the website's appointment form.
type CreateAppointmentRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	EventType string `json:"event_type" validate:"required,oneof=wedding corporate birthday concert other"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Message   string `json:"message" validate:"omitempty,max=2000"`
}
