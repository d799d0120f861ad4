package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

type CategoryHandler struct {
	service services.CategoryService
}

func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// @Summary      Criar categoria
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        category  body      models.Category  true  "Dados da categoria"
// @Success      201       {object}  models.Category
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	uid := getUserID(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Color       string `json:"color"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[category][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		UserID:      uid,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}
	created, err := h.service.Create(c.Request.Context(), category)
	if err != nil {
		log.Printf("[category][create][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[category][create][ok] id=%d name=%q", created.ID, created.Name)
	c.JSON(http.StatusCreated, created)
}

// @Summary      Listar categorias
// @Tags         Categories
// @Produce      json
// @Success      200  {array}  models.Category
// @Router       /categories [get]
func (h *CategoryHandler) GetAll(c *gin.Context) {
	uid := getUserID(c)
	categories, err := h.service.GetAll(c.Request.Context(), models.CategoryFilter{UserID: &uid})
	if err != nil {
		log.Printf("[category][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary      Buscar categoria
// @Tags         Categories
// @Produce      json
// @Param        id   path      int  true  "ID da categoria"
// @Success      200  {object}  models.Category
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	category, err := h.service.GetByID(c.Request.Context(), id, getUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		log.Printf("[category][getByID][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary      Atualizar categoria
// @Tags         Categories
// @Accept       json
// @Produce      json
// @Param        id        path      int              true  "ID da categoria"
// @Param        category  body      models.Category  true  "Campos a alterar"
// @Success      200       {object}  models.Category
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req models.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[category][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, getUserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		log.Printf("[category][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Excluir categoria
// @Tags         Categories
// @Produce      json
// @Param        id   path  int  true  "ID da categoria"
// @Success      204
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, getUserID(c)); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		log.Printf("[category][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
