package api

// Money is an amount in rupees with its display form, e.g. {360, "₹360.00"}.
// Value is unrounded; Display is rounded to two decimals.
type Money struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type Notification struct {
	Level   string `json:"level"` // success, info, error
	Message string `json:"message"`
}

type MenuItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         Money  `json:"price"`
	ImageRef      string `json:"imageRef"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
}

type CartLine struct {
	LineID    string `json:"lineId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal Money  `json:"lineTotal"`
}

type CartView struct {
	Lines     []CartLine `json:"lines"`
	Subtotal  Money      `json:"subtotal"`
	ItemCount int        `json:"itemCount"`
}

type Participant struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// SplitLine is a cart line on the split screen with the participants it is
// currently assigned to.
type SplitLine struct {
	CartLine
	AssignedTo []int `json:"assignedTo"`
}

type PersonShare struct {
	Participant Participant `json:"participant"`
	LineIDs     []string    `json:"lineIds"`
	ItemCount   int         `json:"itemCount"`
	Total       Money       `json:"total"`
}

type CategoryGroup struct {
	Category  string        `json:"category"`
	Members   []Participant `json:"members"`
	Total     Money         `json:"total"`
	PerPerson Money         `json:"perPerson"`
}

type SplitView struct {
	Participants    []Participant `json:"participants"`
	MaxParticipants int           `json:"maxParticipants"`
	Lines           []SplitLine   `json:"lines"`

	Subtotal    Money `json:"subtotal"`
	ItemCount   int   `json:"itemCount"`
	VegTotal    Money `json:"vegTotal"`
	NonVegTotal Money `json:"nonVegTotal"`

	EqualPerPerson Money         `json:"equalPerPerson"`
	ByItem         []PersonShare `json:"byItem"`
	ByItemTotal    Money         `json:"byItemTotal"`
	Unassigned     []string      `json:"unassigned"`
	Veg            CategoryGroup `json:"veg"`
	NonVeg         CategoryGroup `json:"nonVeg"`
}

// OrderResponse is the session view every OrderService and SplitService
// call returns. Split is set only on the bill-split screen.
type OrderResponse struct {
	Screen        string         `json:"screen"`
	Cart          CartView       `json:"cart"`
	Split         *SplitView     `json:"split,omitempty"`
	Notifications []Notification `json:"notifications"`
}

type EmptyRequest struct{}

type ListMenuRequest struct {
	// Category filters to "veg" or "nonveg"; empty lists every entry.
	Category string `json:"category,omitempty"`
}

type ListMenuResponse struct {
	Items []MenuItem `json:"items"`
}

type StartSessionResponse struct {
	Token     string        `json:"token"`
	SessionID string        `json:"sessionId"`
	ExpiresAt int64         `json:"expiresAt"`
	Order     OrderResponse `json:"order"`
}

type AddItemRequest struct {
	MenuItemID string `json:"menuItemId"`
}

type SetQuantityRequest struct {
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// LineRequest addresses one cart line for Increment, Decrement and RemoveItem.
type LineRequest struct {
	LineID string `json:"lineId"`
}

type SetParticipantCountRequest struct {
	Count int `json:"count"`
}

type RenameParticipantRequest struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type ToggleAssignmentRequest struct {
	LineID string `json:"lineId"`
	Index  int    `json:"index"`
}

type ProceedToPaymentRequest struct {
	Strategy string `json:"strategy"` // equal, items, category
}
