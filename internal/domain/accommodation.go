package domain

// Represents a hotel stay. Check-in date is never after check-out date.
type Accommodation struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	CheckIn            string `json:"check_in"`
	CheckInTime        string `json:"check_in_time"`
	CheckOut           string `json:"check_out"`
	CheckOutTime       string `json:"check_out_time"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
}
