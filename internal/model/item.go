// Package model defines data structures used throughout the application.
package model

// Item represents a stored resource. Identity is an integer assigned by the
// store and is not part of the Item itself. Optional fields are pointers and
// render as explicit JSON null when unset.
type Item struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Tax         *float64 `json:"tax"`
}

// ItemUpdate is a sparse overlay for partial modification of an Item. A nil
// field means "not supplied"; a JSON null and an omitted field both decode to
// nil, so the two are treated identically on the wire.
type ItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Tax         *float64 `json:"tax"`
}

// IsZero reports whether the update supplies no fields at all.
func (u ItemUpdate) IsZero() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Tax == nil
}

// Merge applies a sparse update onto a stored Item. For each field, the
// result takes the update's value when supplied and retains the stored value
// otherwise. Merge is total and never fails; bad input belongs to the
// validation stage that produced the update.
func Merge(stored Item, u ItemUpdate) Item {
	merged := stored

	if u.Name != nil {
		merged.Name = *u.Name
	}
	if u.Description != nil {
		merged.Description = u.Description
	}
	if u.Price != nil {
		merged.Price = *u.Price
	}
	if u.Tax != nil {
		merged.Tax = u.Tax
	}

	return merged
}

// ItemResponse is the flattened wire shape for POST/PUT/PATCH responses: the
// assigned identifier alongside the item's own fields.
type ItemResponse struct {
	ItemID      int      `json:"item_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Tax         *float64 `json:"tax"`
}

// NewItemResponse flattens an Item with its identifier.
func NewItemResponse(id int, item Item) ItemResponse {
	return ItemResponse{
		ItemID:      id,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Tax:         item.Tax,
	}
}

// ReadItemResponse is the wire shape for GET /items/{item_id}. Item is null
// when the identifier has no entry; the request still succeeds.
type ReadItemResponse struct {
	ItemID int     `json:"item_id"`
	Item   *Item   `json:"item"`
	Q      *string `json:"q"`
}

// LoginResponse is the wire shape for a successful POST /login/.
type LoginResponse struct {
	Status string `json:"status"`
}

// UploadResponse is the wire shape for POST /uploadfile/.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

// FieldError is a single field-level validation complaint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}
