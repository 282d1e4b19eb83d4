package backend

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tartampluch/go-gymtrack/internal/config"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the account routes publicly and everything else
// behind RequireAuth.
func RegisterRoutes(r gin.IRouter, svc *Service, secret []byte) {
	h := &Handler{svc: svc}

	r.POST(config.RouteSignUp, h.SignUp)
	r.POST(config.RouteSignIn, h.SignIn)

	auth := r.Group("", RequireAuth(secret))
	auth.GET(config.RouteUserVisits, h.ListVisits)
	auth.POST(config.RouteUserVisits, h.AddVisit)
	auth.DELETE(config.RouteUserVisits, h.RemoveVisit)
	auth.GET(config.RouteUserSquads, h.UserSquads)
	auth.GET(config.RouteVisits, h.MemberVisits)

	auth.POST(config.RouteGroups, h.CreateSquad)
	auth.POST(config.RouteGroupMember, h.JoinSquad)
	auth.GET(config.RouteGroupMember, h.Members)
	auth.GET(config.RouteGroupVisits, h.SquadVisits)
}

func fail(c *gin.Context, err error) {
	c.JSON(ToHTTPStatus(err), errorFromErr(err))
}

func badJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, errorBody(config.CodeInvalidArgument, config.ErrInvalidJSON))
}

// ---------- accounts ----------

// POST /users/create
func (h *Handler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	res, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /users/signIn
func (h *Handler) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	res, err := h.svc.SignIn(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- visits ----------

// GET /users/:id/visits
func (h *Handler) ListVisits(c *gin.Context) {
	id, ok := requireSelf(c)
	if !ok {
		return
	}
	res, err := h.svc.ListVisits(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /visits?ids=&start=&end=
func (h *Handler) MemberVisits(c *gin.Context) {
	res, err := h.svc.MemberVisits(c.Request.Context(), callerID(c),
		c.Query(config.QueryIDs), c.Query(config.QueryStart), c.Query(config.QueryEnd))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /users/:id/visits
func (h *Handler) AddVisit(c *gin.Context) {
	id, ok := requireSelf(c)
	if !ok {
		return
	}
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	v, created, err := h.svc.AddVisit(c.Request.Context(), id, req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, v)
}

// DELETE /users/:id/visits
func (h *Handler) RemoveVisit(c *gin.Context) {
	id, ok := requireSelf(c)
	if !ok {
		return
	}
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	if err := h.svc.RemoveVisit(c.Request.Context(), id, req.Date); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /users/:id/squads
func (h *Handler) UserSquads(c *gin.Context) {
	id, ok := requireSelf(c)
	if !ok {
		return
	}
	res, err := h.svc.UserSquads(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- squads ----------

// POST /groups
func (h *Handler) CreateSquad(c *gin.Context) {
	var req SquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	res, err := h.svc.CreateSquad(c.Request.Context(), callerID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /groups/:id/members
func (h *Handler) JoinSquad(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	// Members only enrol themselves.
	if req.UserID != callerID(c) {
		fail(c, ErrForbidden(config.ErrForbiddenUser))
		return
	}
	if err := h.svc.JoinSquad(c.Request.Context(), c.Param(config.ParamID), req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /groups/:id/members
func (h *Handler) Members(c *gin.Context) {
	res, err := h.svc.Members(c.Request.Context(), c.Param(config.ParamID))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /groups/:id/visits?start=&end=
func (h *Handler) SquadVisits(c *gin.Context) {
	res, err := h.svc.SquadVisits(c.Request.Context(), c.Param(config.ParamID),
		c.Query(config.QueryStart), c.Query(config.QueryEnd))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
