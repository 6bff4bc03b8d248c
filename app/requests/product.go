package requests

// StoreProductRequest creates a product. category_id existence is checked
// by the controller against the category repository (the "exists" rule).
type StoreProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable"`
	Price       float64 `json:"price"       validate:"required,numeric,min=0.01"`
	CategoryID  uint    `json:"category_id" validate:"required,integer"`
}

// UpdateProductRequest is a partial update: nil pointers mean "leave the
// field unchanged"; supplied fields are re-validated with the same rules
// as on create.
type UpdateProductRequest struct {
	Name        *string  `json:"name"        validate:"sometimes,required,max=255"`
	Description *string  `json:"description" validate:"sometimes,nullable"`
	Price       *float64 `json:"price"       validate:"sometimes,required,numeric,min=0.01"`
	CategoryID  *uint    `json:"category_id" validate:"sometimes,required,integer"`
}

// Empty reports whether the payload carries no fields at all.
func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil && r.CategoryID == nil
}

const categoryNotFoundMessage = "A categoria selecionada não existe."

// ProductMessages carries the custom wording for product validation rules.
func ProductMessages() map[string]string {
	return map[string]string{
		"name.required":        "O nome do produto é obrigatório.",
		"price.required":       "O preço do produto é obrigatório.",
		"price.numeric":        "O preço deve ser um valor numérico.",
		"price.min":            "O preço deve ser maior que zero.",
		"category_id.required": "A categoria é obrigatória.",
		"category_id.integer":  "O ID da categoria deve ser um número inteiro.",
	}
}

// CategoryNotFoundMessage is the "exists" rule wording, appended by the
// controller when the supplied category_id has no row.
func CategoryNotFoundMessage() string { return categoryNotFoundMessage }
