package cut

import "recortes/internal/domain"

// CreateCutRequest binds the multipart text fields of POST /cuts. The
// image file itself travels outside the DTO. displayOrder arrives as
// form text and is coerced to a positive integer by the service.
type CreateCutRequest struct {
	SKU           string `form:"sku" validate:"required"`
	ModelName     string `form:"modelName" validate:"required"`
	CutType       string `form:"cutType" validate:"required"`
	Position      string `form:"position" validate:"required"`
	ProductType   string `form:"productType" validate:"required"`
	Material      string `form:"material" validate:"required"`
	MaterialColor string `form:"materialColor" validate:"required"`
	DisplayOrder  string `form:"displayOrder" validate:"required"`
	Status        string `form:"status" validate:"omitempty,oneof=ACTIVE EXPIRED PENDING"`
}

// UpdateCutRequest binds the partial multipart fields of PUT /cuts/:id.
// Pointer fields make the patch presence-based: a form key that is
// absent leaves the stored value untouched, a key that is present (even
// with an empty value) is applied.
type UpdateCutRequest struct {
	SKU           *string `form:"sku"`
	ModelName     *string `form:"modelName"`
	CutType       *string `form:"cutType"`
	Position      *string `form:"position"`
	ProductType   *string `form:"productType"`
	Material      *string `form:"material"`
	MaterialColor *string `form:"materialColor"`
	DisplayOrder  *string `form:"displayOrder"`
	Status        *string `form:"status" validate:"omitempty,oneof=ACTIVE EXPIRED PENDING"`
}

// ListCutsQuery carries the parsed query parameters of GET /cuts.
type ListCutsQuery struct {
	Page    int
	PerPage int
	SKU     string
	CutType string
	Status  string
	SortBy  string
}

// ListMeta is the pagination block returned alongside list data.
type ListMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListCutsResponse is the GET /cuts payload.
type ListCutsResponse struct {
	Data []domain.Cut `json:"data"`
	Meta ListMeta     `json:"meta"`
}
