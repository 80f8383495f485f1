package dto

type PinRequest struct {
	Day  int    `json:"day" validate:"required,min=1"`
	Time string `json:"time" validate:"required"`
	// Accept a time outside the place's opening hours.
	Force bool `json:"force"`
}

type PinResponse struct {
	TripID     string `json:"trip_id"`
	ActivityID string `json:"activity_id"`
	Day        int    `json:"day,omitempty"`
	Time       string `json:"time,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

type ReorderRequest struct {
	ActivityIDs []string `json:"activity_ids" validate:"required,min=1,dive,required"`
}
