package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// GET /orders — role-scoped listing
func (h *OrderController) List(c *gin.Context) {
	actor := utils.CurrentActor(c)

	orders, err := h.Svc.ListVisible(actor)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

// POST /orders — convert the caller's cart into an order
func (h *OrderController) Create(c *gin.Context) {
	actor := utils.CurrentActor(c)

	order, err := h.Svc.ConvertCart(actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCartConflict):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, order)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	actor := utils.CurrentActor(c)
	id, _ := strconv.Atoi(c.Param("id"))

	detail, err := h.Svc.Detail(actor, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, detail)
}

// PUT/PATCH /orders/:id — fields outside the caller's role mask are
// dropped silently; the response carries what actually landed
func (h *OrderController) Update(c *gin.Context) {
	actor := utils.CurrentActor(c)
	id, _ := strconv.Atoi(c.Param("id"))

	var patch services.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := h.Svc.Update(actor, uint(id), &patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			resp.NotFound(c, "order not found")
		case errors.Is(err, services.ErrNotDeliveryCrew):
			resp.BadRequest(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.OK(c, order)
}

// DELETE /orders/:id — manager only, cascades to the order items
func (h *OrderController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.Svc.Delete(uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "order not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.NoContent(c)
}
