package purchase

type OpenSessionRequest struct {
	EventID string `json:"event_id" binding:"required"`
}

type SelectTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// ChangeQuantityRequest carries a signed step, typically +1 or -1.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required,min=-9,max=9"`
}

// SetEmailRequest accepts any text; only CanPay reflects validity.
type SetEmailRequest struct {
	Email string `json:"email"`
}
