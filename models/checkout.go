package models

// CheckoutDraft is the single in-progress purchase selection for a
// session. Total is always recomputed from Price and Quantity; it is
// never cached across mutations.
type CheckoutDraft struct {
	DraftID  string `json:"draft_id"`
	Item     Item   `json:"item"`
	Quantity int32  `json:"quantity"`
	Total    int64  `json:"total"`
}

type CreateDraftRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

type SubmitDraftResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int32  `json:"quantity"`
	Total    int64  `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
