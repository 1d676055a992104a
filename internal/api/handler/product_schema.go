package handler

// createProductRequest carries a new listing. The owner is always taken from
// the session, never from the body.
type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"   validate:"required,url"`
	Status      string  `json:"status"      validate:"omitempty,oneof=active draft soldout"`
}

// updateProductRequest is a partial listing update.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active draft soldout"`
}

type deleteProductResponse struct {
	Message string `json:"message"`
}
