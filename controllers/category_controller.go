package controllers

import (
	"errors"
	"strconv"

	"backend/entity"
	"backend/pkg/resp"
	"backend/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct{ Repo *repository.MenuRepository }

func NewCategoryController(repo *repository.MenuRepository) *CategoryController {
	return &CategoryController{Repo: repo}
}

type CategoryIn struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// GET /categories
func (h *CategoryController) List(c *gin.Context) {
	items, err := h.Repo.ListCategories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// POST /categories
func (h *CategoryController) Create(c *gin.Context) {
	var req CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cat := entity.Category{Slug: req.Slug, Title: req.Title}
	if err := h.Repo.CreateCategory(&cat); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, cat)
}

// GET /categories/:id
func (h *CategoryController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	cat, err := h.Repo.GetCategory(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "category not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat)
}

// PUT/PATCH /categories/:id
func (h *CategoryController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	cat, err := h.Repo.GetCategory(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "category not found")
			return
		}
		resp.ServerError(c, err)
		return
	}

	var req CategoryIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cat.Slug = req.Slug
	cat.Title = req.Title
	if err := h.Repo.SaveCategory(cat); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat)
}

// DELETE /categories/:id
func (h *CategoryController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	affected, err := h.Repo.DeleteCategory(uint(id))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if affected == 0 {
		resp.NotFound(c, "category not found")
		return
	}
	resp.NoContent(c)
}
