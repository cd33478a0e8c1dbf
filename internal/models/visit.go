package models

import "strconv"

const (
	// DefaultCounterKey is the partition key of the portfolio visit record
	DefaultCounterKey = "total_visits"

	// VisitsAttribute is the numeric attribute holding the visit count
	VisitsAttribute = "visits"

	// PartitionKeyAttribute is the name of the table's partition key
	PartitionKeyAttribute = "PK"
)

// VisitCounter is the single stored record. Visits never decreases and is
// zero while the record does not exist.
type VisitCounter struct {
	Key    string `json:"key" dynamodbav:"PK"`
	Visits uint64 `json:"visits" dynamodbav:"visits"`
}

// CountResponse is the success body returned to the browser
type CountResponse struct {
	Count string `json:"count"`
}

// NewCountResponse formats a visit count the way the frontend expects it
func NewCountResponse(visits uint64) CountResponse {
	return CountResponse{Count: strconv.FormatUint(visits, 10)}
}

// ErrorResponse is the body returned when the counter store fails
type ErrorResponse struct {
	Error string `json:"error"`
}
