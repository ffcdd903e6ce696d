package http

import "time"

// ErrorResponse is the uniform error body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConfirmPaymentRequest is the payment gateway webhook body.
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// ConfirmPaymentResponse reports what the webhook invocation did.
// ShipmentID and the volume counters are only set for MATERIALIZED.
type ConfirmPaymentResponse struct {
	Outcome        string `json:"outcome"`
	ShipmentID     string `json:"shipment_id,omitempty"`
	VolumesCreated int    `json:"volumes_created,omitempty"`
	VolumesFailed  int    `json:"volumes_failed,omitempty"`
}

// ActorRequest carries the acting user for operations without a code gate.
type ActorRequest struct {
	ActorID string `json:"actor_id"`
}

// VerifiedActionRequest carries the acting user plus the typed parcel code
// digits for code-gated operations.
type VerifiedActionRequest struct {
	ActorID       string `json:"actor_id"`
	EnteredDigits string `json:"entered_digits"`
}

// RecordOccurrenceRequest reports a delivery occurrence on a volume.
type RecordOccurrenceRequest struct {
	ActorID     string `json:"actor_id"`
	Role        string `json:"role"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
	MediaURL    string `json:"media_url,omitempty"`
}

// AvailableVolumeResponse is one claimable volume in the code search result.
type AvailableVolumeResponse struct {
	VolumeID              string    `json:"volume_id"`
	ShipmentID            string    `json:"shipment_id"`
	ParcelCode            string    `json:"parcel_code"`
	WeightGrams           int       `json:"weight_grams"`
	RecipientName         string    `json:"recipient_name"`
	RecipientCity         string    `json:"recipient_city"`
	RecipientState        string    `json:"recipient_state"`
	RequestedDeliveryDate time.Time `json:"requested_delivery_date"`
}

// ShipmentResponse is the shipment read model with its volumes.
type ShipmentResponse struct {
	ID                    string                   `json:"id"`
	ClientID              string                   `json:"client_id"`
	TrackingCode          string                   `json:"tracking_code"`
	VolumeCount           int                      `json:"volume_count"`
	TotalWeightGrams      int                      `json:"total_weight_grams"`
	TotalPriceCents       int64                    `json:"total_price_cents"`
	PickupPointRef        string                   `json:"pickup_point_ref"`
	RequestedDeliveryDate time.Time                `json:"requested_delivery_date"`
	PaymentReference      string                   `json:"payment_reference"`
	CreatedAt             time.Time                `json:"created_at"`
	Volumes               []ShipmentVolumeResponse `json:"volumes"`
}

// ShipmentVolumeResponse is one volume within the shipment read model.
type ShipmentVolumeResponse struct {
	ID              string  `json:"id"`
	ParcelCode      string  `json:"parcel_code"`
	Sequence        int     `json:"sequence"`
	WeightGrams     int     `json:"weight_grams"`
	Status          string  `json:"status"`
	AssignedActorID *string `json:"assigned_actor_id,omitempty"`
	RecipientName   string  `json:"recipient_name"`
	RecipientCity   string  `json:"recipient_city"`
	RecipientState  string  `json:"recipient_state"`
}

// TimelineEntryResponse is one audit entry in the shipment timeline.
type TimelineEntryResponse struct {
	ID               string    `json:"id"`
	VolumeID         *string   `json:"volume_id,omitempty"`
	Status           string    `json:"status"`
	Description      string    `json:"description"`
	OccurrenceReason *string   `json:"occurrence_reason,omitempty"`
	MediaURL         *string   `json:"media_url,omitempty"`
	ActorID          *string   `json:"actor_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
