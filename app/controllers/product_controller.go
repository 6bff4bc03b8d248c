package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/product-catalog/api/app/repositories"
	"github.com/product-catalog/api/app/requests"
	"github.com/product-catalog/api/app/services"
	"github.com/product-catalog/api/pkg/logger"
	"github.com/product-catalog/api/pkg/response"
	"github.com/product-catalog/api/pkg/router"
	"github.com/product-catalog/api/pkg/validate"
)

type ProductController struct {
	products   *services.ProductService
	categories *repositories.CategoryRepository
}

func NewProductController(products *services.ProductService, categories *repositories.CategoryRepository) *ProductController {
	return &ProductController{products: products, categories: categories}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("product list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Erro ao buscar produtos.")
		return
	}
	response.Success(w, products)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var req requests.StoreProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	errs := validate.StructWithMessages(req, requests.ProductMessages())
	if len(errs["category_id"]) == 0 && req.CategoryID != 0 {
		ok, err := c.categories.Exists(req.CategoryID)
		if err != nil {
			logger.WithCtx(r.Context()).Error("category lookup failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Erro ao criar produto.")
			return
		}
		if !ok {
			errs["category_id"] = append(errs["category_id"], requests.CategoryNotFoundMessage())
		}
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, http.StatusUnprocessableEntity, errs)
		return
	}

	product, err := c.products.Create(req)
	switch {
	case errors.Is(err, services.ErrInvalidPrice):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		logger.WithCtx(r.Context()).Error("product create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Erro ao criar produto.")
	default:
		response.Created(w, "Produto criado com sucesso.", product)
	}
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Error(w, http.StatusNotFound, "Produto não encontrado.")
		return
	}

	product, err := c.products.GetByID(id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product lookup failed", "error", err, "product_id", id)
		response.Error(w, http.StatusInternalServerError, "Erro ao buscar produto.")
		return
	}
	if product == nil {
		response.Error(w, http.StatusNotFound, "Produto não encontrado.")
		return
	}
	response.Success(w, product)
}

// Search handles GET /api/products/search?name=...
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		response.Error(w, http.StatusBadRequest, "Parâmetro 'name' é obrigatório.")
		return
	}

	product, err := c.products.GetByName(name)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product search failed", "error", err, "name", name)
		response.Error(w, http.StatusInternalServerError, "Erro ao buscar produto pelo nome.")
		return
	}
	if product == nil {
		response.Error(w, http.StatusNotFound, "Produto não encontrado.")
		return
	}
	response.Success(w, product)
}

// Update handles PUT/PATCH /api/products/{id}. Only the supplied fields
// change; absent fields keep their stored values.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Error(w, http.StatusNotFound, "Produto não encontrado para atualização.")
		return
	}

	var req requests.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Empty() {
		response.Error(w, http.StatusBadRequest, "Nenhum dado fornecido para atualização.")
		return
	}

	errs := validate.StructWithMessages(req, requests.ProductMessages())
	if req.CategoryID != nil && len(errs["category_id"]) == 0 {
		ok, err := c.categories.Exists(*req.CategoryID)
		if err != nil {
			logger.WithCtx(r.Context()).Error("category lookup failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "Erro ao atualizar produto.")
			return
		}
		if !ok {
			errs["category_id"] = append(errs["category_id"], requests.CategoryNotFoundMessage())
		}
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, http.StatusUnprocessableEntity, errs)
		return
	}

	product, err := c.products.Update(id, req)
	switch {
	case errors.Is(err, services.ErrInvalidPrice):
		response.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		logger.WithCtx(r.Context()).Error("product update failed", "error", err, "product_id", id)
		response.Error(w, http.StatusInternalServerError, "Erro ao atualizar produto.")
	case product == nil:
		response.Error(w, http.StatusNotFound, "Produto não encontrado para atualização.")
	default:
		response.SuccessMessage(w, "Produto atualizado com sucesso.", product)
	}
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.Error(w, http.StatusNotFound, "Produto não encontrado ou não pôde ser excluído.")
		return
	}

	deleted, err := c.products.Delete(id)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product delete failed", "error", err, "product_id", id)
		response.Error(w, http.StatusInternalServerError, "Erro ao excluir produto.")
		return
	}
	if !deleted {
		response.Error(w, http.StatusNotFound, "Produto não encontrado ou não pôde ser excluído.")
		return
	}
	response.SuccessMessage(w, "Produto excluído com sucesso.", nil)
}

func parseID(r *http.Request) (uint, bool) {
	raw := router.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
