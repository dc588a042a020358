package ledger

import (
	"fmt"
	"strings"
	"time"
)

const recordDateLayout = "2006-01-02"

// Role selects which operator listing the client reads.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a role name. Empty input yields RoleCustomer.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(RoleCustomer):
		return RoleCustomer, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Status is the server-side record state.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// ParseStatus normalizes a status name. Empty input yields the empty Status,
// which list queries treat as "any".
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return "", nil
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusDone):
		return StatusDone, nil
	default:
		return "", fmt.Errorf("unknown status %q", value)
	}
}

// Toggled returns the status a toggle activation moves towards.
func (s Status) Toggled() Status {
	if s == StatusDone {
		return StatusPending
	}
	return StatusDone
}

// Channel is a payment method owned by an operator.
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Operator is a person or entity a completed record can be attributed to.
type Operator struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Channels []Channel `json:"channels"`
}

// Channel returns the operator's channel with the given id.
func (o Operator) Channel(id int64) (Channel, bool) {
	for _, ch := range o.Channels {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// OperatorListResponse mirrors the operators list endpoints.
type OperatorListResponse struct {
	Operators []Operator `json:"operators"`
}

// AddOperatorRequest is the body of /customer/operators/add.
type AddOperatorRequest struct {
	Name     string   `json:"name"`
	Channels []string `json:"channels,omitempty"`
}

// AddOperatorResponse mirrors /customer/operators/add.
type AddOperatorResponse struct {
	Success    bool   `json:"success"`
	OperatorID int64  `json:"operator_id"`
	Error      string `json:"error"`
}

// UpdateRecordRequest is the body of /update_record. Nil ids are sent as JSON
// null.
type UpdateRecordRequest struct {
	RecordID   int64  `json:"record_id"`
	Status     Status `json:"status"`
	OperatorID *int64 `json:"operator_id"`
	ChannelID  *int64 `json:"channel_id"`
}

// UpdateRecordResponse mirrors /update_record. Only the HTTP status decides
// success; the flag is kept for logging.
type UpdateRecordResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Stats mirrors /customer/stats.
type Stats struct {
	Completed      float64 `json:"completed"`
	Pending        float64 `json:"pending"`
	Progress       float64 `json:"progress"`
	CompletedCount int     `json:"completed_count"`
	PendingCount   int     `json:"pending_count"`
}

// Record is one ledger row as returned by the record listing.
type Record struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Status       Status  `json:"status"`
	OperatorID   *int64  `json:"operator_id"`
	OperatorName string  `json:"operator_name"`
	ChannelID    *int64  `json:"channel_id"`
	ChannelName  string  `json:"channel_name"`
}

// ParsedDate returns the record date, or the zero time when it is missing or
// malformed.
func (r Record) ParsedDate() time.Time {
	value := strings.TrimSpace(r.Date)
	if len(value) > len(recordDateLayout) {
		value = value[:len(recordDateLayout)]
	}
	t, err := time.ParseInLocation(recordDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RecordListResponse mirrors /customer/records/list.
type RecordListResponse struct {
	Records []Record `json:"records"`
}

// RecordQuery filters the record listing. Zero values are omitted.
type RecordQuery struct {
	StartDate string
	EndDate   string
	Status    Status
}
