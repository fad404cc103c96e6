package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/resp"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// GroupController serves one roster; routes mount it once per group.
type GroupController struct {
	Svc       *services.GroupService
	GroupName string
}

func NewGroupController(s *services.GroupService, groupName string) *GroupController {
	return &GroupController{Svc: s, GroupName: groupName}
}

// GET /groups/<group>/users
func (h *GroupController) List(c *gin.Context) {
	members, err := h.Svc.ListMembers(h.GroupName)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": members})
}

type AddMemberIn struct {
	ID uint `json:"id" binding:"required"`
}

// POST /groups/<group>/users
func (h *GroupController) Add(c *gin.Context) {
	var req AddMemberIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.AddMember(h.GroupName, req.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			resp.NotFound(c, "user not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"id": req.ID})
}

// DELETE /groups/<group>/users/:id
// Responds 200, not 204 — removal of a non-member is a successful no-op.
func (h *GroupController) Remove(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := h.Svc.RemoveMember(h.GroupName, uint(id)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id})
}
