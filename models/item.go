package models

// Item is the normalized catalog record. Prices are integers in the
// smallest currency unit. The authoritative copy lives on the backend;
// the gateway never mutates items.
type Item struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	Color        string `json:"color,omitempty"`
	Image        string `json:"image,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Features     string `json:"features,omitempty"` // comma-delimited feature text
	Available    int32  `json:"available_qty"`
	ShopID       string `json:"shop_id,omitempty"`
	ShopName     string `json:"shop_name,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// AllCategory is the synthetic category representing the union of every
// fetched category.
const AllCategory = "All"

// CategorizedItems is the flattened catalog view: the ordered category
// names (always led by AllCategory) and the normalized item sequence.
type CategorizedItems struct {
	ShopID     string   `json:"shop_id,omitempty"`
	Categories []string `json:"categories"`
	Items      []Item   `json:"items"`
}

type Shop struct {
	ShopID string `json:"shop_id"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}
