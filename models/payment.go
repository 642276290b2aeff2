package models

// PaymentIntent mirrors the backend's intent record: an
// authorized-but-unconfirmed amount identified by an opaque client
// secret.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	ItemID       string `json:"item_id"`
	UserID       string `json:"user_id"`
}

// CardDetails is the collected card input. Complete is the card
// widget's overall validity flag; submission is blocked until it is
// set.
type CardDetails struct {
	Number   string `json:"number" binding:"required"`
	ExpMonth int    `json:"exp_month" binding:"required"`
	ExpYear  int    `json:"exp_year" binding:"required"`
	CVC      string `json:"cvc" binding:"required"`
	Complete bool   `json:"complete"`
}

type ConfirmPaymentRequest struct {
	ClientSecret string      `json:"client_secret" binding:"required"`
	Card         CardDetails `json:"card" binding:"required"`
}

// Receipt is the terminal success payload of the purchase pipeline.
type Receipt struct {
	OrderID  string `json:"order_id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int32  `json:"quantity"`
	Amount   int64  `json:"amount"`
}

// OrderConfirmed is the event published to the warehouse queue after a
// successful gateway confirmation.
type OrderConfirmed struct {
	OrderID  string `json:"order_id"`
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int32  `json:"quantity"`
	Amount   int64  `json:"amount"`
}
