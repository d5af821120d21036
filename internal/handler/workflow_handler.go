package handler

import (
	"errors"
	"net/http"

	"solicitudes-api/internal/middleware"
	"solicitudes-api/internal/model"
	"solicitudes-api/internal/service"
	"solicitudes-api/internal/workflow"
	"solicitudes-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler exposes the lifecycle transitions of a solicitud. Route-level
// role checks here are a first gate; the engine re-validates against the
// current user record.
type WorkflowHandler struct {
	workflowService  service.WorkflowService
	solicitudHandler *SolicitudHandler
}

func NewWorkflowHandler(workflowService service.WorkflowService, solicitudHandler *SolicitudHandler) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService, solicitudHandler: solicitudHandler}
}

func (h *WorkflowHandler) RegisterRoutes(router *gin.RouterGroup) {
	requesters := middleware.RequireRole(model.RoleAdmin, model.RoleSolicitante)
	approvers := middleware.RequireRole(model.RoleAdmin, model.RoleAprobador)
	payers := middleware.RequireRole(model.RoleAdmin, model.RolePagador)

	solicitudes := router.Group("/api/solicitudes/:id")
	{
		solicitudes.POST("/enviar", requesters, h.Submit)
		solicitudes.POST("/revision", approvers, h.StartReview)
		solicitudes.POST("/aprobar", approvers, h.Approve)
		solicitudes.POST("/rechazar", approvers, h.Reject)
		solicitudes.POST("/pagar", payers, h.MarkPaid)
		solicitudes.POST("/comprobantes", payers, h.UploadComprobantes)
	}
}

type decisionRequest struct {
	Comentarios string `json:"comentarios"`
}

type pagoRequest struct {
	ReferenciaPago string `json:"referencia_pago"`
	Comentarios    string `json:"comentarios"`
}

// Submit moves a borrador (or rechazada, on resubmission) to enviada
// @Summary      Submit solicitud
// @Tags         workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Solicitud ID"
// @Success      200  {object}  response.Response{data=service.SolicitudResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/solicitudes/{id}/enviar [post]
func (h *WorkflowHandler) Submit(c *gin.Context) {
	result, err := h.workflowService.Submit(c.Request.Context(), c.Param("id"), actorID(c))
	h.respond(c, result, err)
}

// StartReview claims an enviada solicitud for review
// @Summary      Start review
// @Tags         workflow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Solicitud ID"
// @Success      200  {object}  response.Response{data=service.SolicitudResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/solicitudes/{id}/revision [post]
func (h *WorkflowHandler) StartReview(c *gin.Context) {
	result, err := h.workflowService.StartReview(c.Request.Context(), c.Param("id"), actorID(c))
	h.respond(c, result, err)
}

// Approve approves a solicitud pending review
// @Summary      Approve solicitud
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string           true   "Solicitud ID"
// @Param        payload  body      decisionRequest  false  "Optional comments"
// @Success      200      {object}  response.Response{data=service.SolicitudResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/solicitudes/{id}/aprobar [post]
func (h *WorkflowHandler) Approve(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	result, err := h.workflowService.Approve(c.Request.Context(), c.Param("id"), actorID(c), req.Comentarios)
	h.respond(c, result, err)
}

// Reject rejects a solicitud; comments are mandatory so the requester knows
// what to fix before resubmitting
// @Summary      Reject solicitud
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string           true  "Solicitud ID"
// @Param        payload  body      decisionRequest  true  "Rejection reason (min 10 chars)"
// @Success      200      {object}  response.Response{data=service.SolicitudResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/solicitudes/{id}/rechazar [post]
func (h *WorkflowHandler) Reject(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	result, err := h.workflowService.Reject(c.Request.Context(), c.Param("id"), actorID(c), req.Comentarios)
	h.respond(c, result, err)
}

// MarkPaid records the payment of an approved solicitud and starts the
// proof-of-payment clock
// @Summary      Mark solicitud paid
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true   "Solicitud ID"
// @Param        payload  body      pagoRequest  false  "Payment reference and comments"
// @Success      200      {object}  response.Response{data=service.SolicitudResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/solicitudes/{id}/pagar [post]
func (h *WorkflowHandler) MarkPaid(c *gin.Context) {
	var req pagoRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	result, err := h.workflowService.MarkPaid(c.Request.Context(), c.Param("id"), actorID(c), req.ReferenciaPago, req.Comentarios)
	h.respond(c, result, err)
}

// UploadComprobantes attaches proof-of-payment files to a paid solicitud
// @Summary      Upload payment proofs
// @Tags         workflow
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Solicitud ID"
// @Param        archivos  formData  file    true  "Proof files"
// @Success      201       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /api/solicitudes/{id}/comprobantes [post]
func (h *WorkflowHandler) UploadComprobantes(c *gin.Context) {
	metas, cleanup, err := h.solicitudHandler.storeUploadedFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	count, err := h.workflowService.AddPaymentProofs(c.Request.Context(), c.Param("id"), actorID(c), metas)
	if err != nil {
		cleanup()
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"total_comprobantes": count}))
}

func (h *WorkflowHandler) respond(c *gin.Context, result *service.SolicitudResponse, err error) {
	if err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// httpStatusFor maps the workflow sentinel errors onto HTTP status codes.
// Order matters: a stale-state race wraps both ErrInvalidTransition and
// ErrStaleState and must land on 409.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, workflow.ErrValidationFailed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
