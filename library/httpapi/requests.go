package httpapi

type itemRequest struct {
	ItemID string `json:"itemId" validate:"required,uuid"`
}

type itemsRequest struct {
	ItemIDs []string `json:"itemIds" validate:"required,min=1,max=50,dive,uuid"`
}

type cartEntryRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Category string `json:"category" validate:"omitempty,oneof=InCart OnHold"`
}

type catalogItemRequest struct {
	ItemID   string `json:"itemId" validate:"omitempty,uuid"`
	Title    string `json:"title" validate:"required,max=300"`
	TypeName string `json:"typeName" validate:"required,oneof=Book Media Device"`
}

type memberRequest struct {
	MemberID string `json:"memberId" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,max=200"`
	GroupID  string `json:"groupId" validate:"max=50"`
}

type payFineRequest struct {
	PaymentID   string `json:"paymentId" validate:"omitempty,uuid"`
	AmountCents int64  `json:"amountCents" validate:"required,gt=0"`
}

// commandResponse is the body of a single command that did not fail.
type commandResponse struct {
	Outcome string   `json:"outcome"`
	Events  []string `json:"events"`
	HoldID  string   `json:"holdId,omitempty"`
	ItemID  string   `json:"itemId,omitempty"`
}
