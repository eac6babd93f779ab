package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/services"
)

// CategoryHandler, kategori endpoint'lerini yönetir.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler, constructor.
func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// POST /api/v1/categories
// Body: { "name": "..." }
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, category, "category created")
}

// List godoc
// GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, categories, "categories")
}

// GetBySlug godoc
// GET /api/v1/categories/{slug}
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.categoryService.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, category, "category")
}
