package domain

type DeliveryType string

const (
	DeliveryASAP      DeliveryType = "ASAP"
	DeliveryScheduled DeliveryType = "SCHEDULED"
)

// OrderDraft is everything needed to create one order server-side.
// ScheduledDate/ScheduledTime are set only for SCHEDULED delivery and are
// validated for presence, not range.
type OrderDraft struct {
	Lines          []CartLine
	AddressID      int64
	DeliveryType   DeliveryType
	ScheduledDate  string
	ScheduledTime  string
	Comment        string
	IdempotencyKey string
}
