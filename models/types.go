package models

import "time"

// Roles returned in token claims.
const (
	RoleRenter = "RENTER"
	RoleOwner  = "OWNER"
)

// Identity is decoded from the bearer token payload. It is a display
// convenience only; authorization happens server-side.
type Identity struct {
	ID   string
	Role string
	Name string
}

// IsOwner reports whether the decoded role is OWNER.
func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}

// Message is a single chat message between a renter and an owner,
// usually attached to a property listing.
type Message struct {
	ID          string `json:"id,omitempty"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	PropertyID  string `json:"propertyId,omitempty"`
	EnquiryID   string `json:"enquiryId,omitempty"`
	ThreadID    string `json:"threadId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Read        bool   `json:"read"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ResolvedTime returns the message time, preferring createdAt over
// timestamp. Unparseable or missing values resolve to the epoch so broken
// items sort first instead of erroring.
func (m *Message) ResolvedTime() time.Time {
	for _, raw := range []string{m.CreatedAt, m.Timestamp} {
		if raw == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	return time.Unix(0, 0).UTC()
}

// RawTime returns the authoritative raw time string, used in the
// fallback dedup key for items without a server id.
func (m *Message) RawTime() string {
	if m.CreatedAt != "" {
		return m.CreatedAt
	}
	return m.Timestamp
}

// IsMine reports whether the given user sent this message.
func (m *Message) IsMine(userID string) bool {
	return userID != "" && m.SenderID == userID
}

// Outgoing is the payload for POST /api/v1/messages. Correlation fields
// are inherited from the thread being replied to, not recomputed.
type Outgoing struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	PropertyID  string `json:"propertyId,omitempty"`
	EnquiryID   string `json:"enquiryId,omitempty"`
	ThreadID    string `json:"threadId,omitempty"`
}

// Location is the address block nested in a property listing.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Property is a rental listing.
type Property struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	City          string    `json:"city,omitempty"`
	Location      *Location `json:"location,omitempty"`
	PropertyType  string    `json:"propertyType,omitempty"`
	PricePerMonth float64   `json:"pricePerMonth"`
	Bedrooms      int       `json:"bedrooms,omitempty"`
	Bathrooms     int       `json:"bathrooms,omitempty"`
	Area          float64   `json:"area,omitempty"`
	Amenities     []string  `json:"amenities,omitempty"`
	ImageURLs     []string  `json:"imageUrls,omitempty"`
	Status        string    `json:"status,omitempty"`
}

// Place returns the best available location string for display.
func (p *Property) Place() string {
	if p.Location != nil && p.Location.Address != "" {
		return p.Location.Address
	}
	if p.City != "" {
		return p.City
	}
	return "—"
}

// Enquiry statuses accepted by PUT /api/v1/enquiries/{id}/status.
const (
	EnquiryPending  = "PENDING"
	EnquiryAccepted = "ACCEPTED"
	EnquiryDeclined = "DECLINED"
)

// Enquiry is a rental enquiry raised against a listing.
type Enquiry struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId,omitempty"`
	SenderID   string `json:"senderId,omitempty"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}
