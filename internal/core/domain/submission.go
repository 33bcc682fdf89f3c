package domain

import "time"

// SubmissionStatus is the moderation state of a directory submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Coordinate is a geocoded point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Submission is a candidate directory entry produced by the submission
// pipeline. Status transitions pending -> approved/rejected happen only
// through the review path.
type Submission struct {
	ID        string `json:"id"`
	OwnerKey  string `json:"owner_key"`
	PlaceName string `json:"place_name"`
	PlaceType string `json:"place_type,omitempty"`

	Address           string  `json:"address"`
	NormalizedAddress string  `json:"normalized_address"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`

	Status    SubmissionStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	// LifetimePlaceKey links the submission to the lifetime quota marker
	// it consumed, when submitted in gift mode.
	LifetimePlaceKey string `json:"lifetime_place_key,omitempty"`
}
