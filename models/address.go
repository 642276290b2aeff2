package models

// AddressProfile is the user's shipping profile. One profile per
// identity; saves overwrite the whole profile, there is no field-level
// diffing.
type AddressProfile struct {
	Phone      string `json:"phone"`
	Line1      string `json:"address_line1"`
	Line2      string `json:"address_line2,omitempty"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

type SaveAddressRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Line1      string `json:"address_line1" binding:"required"`
	Line2      string `json:"address_line2"`
	PostalCode string `json:"postal_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}
