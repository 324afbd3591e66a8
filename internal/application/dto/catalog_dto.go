package dto

// CreateArticleRequest alta de artículo vía POST /api/articles.
type CreateArticleRequest struct {
	ProductID int    `json:"productId"`
	Barcode   string `json:"barcode"`
	Multiple  string `json:"multiple"`
	Factor    int    `json:"factor"`
	Warehouse int    `json:"warehouse"`
}

// UpdateArticleRequest edición parcial vía PATCH /api/articles.
type UpdateArticleRequest struct {
	ID        int     `json:"id"`
	Barcode   *string `json:"barcode,omitempty"`
	Multiple  *string `json:"multiple,omitempty"`
	Factor    *int    `json:"factor,omitempty"`
	Warehouse *int    `json:"warehouse,omitempty"`
}

// CreateWarehouseRequest alta de almacén.
type CreateWarehouseRequest struct {
	Name string `json:"name"`
}

// UpdateWarehouseRequest edición de almacén.
type UpdateWarehouseRequest struct {
	Name string `json:"name"`
}
