package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"solicitudes-api/internal/middleware"
	"solicitudes-api/internal/model"
	"solicitudes-api/internal/service"
	"solicitudes-api/pkg/pagination"
	"solicitudes-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SolicitudHandler struct {
	solicitudService service.SolicitudService
	uploadDir        string
}

func NewSolicitudHandler(solicitudService service.SolicitudService, uploadDir string) *SolicitudHandler {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &SolicitudHandler{solicitudService: solicitudService, uploadDir: uploadDir}
}

func (h *SolicitudHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleSolicitante, model.RoleAprobador, model.RolePagador)
	ownerRoles := middleware.RequireRole(model.RoleAdmin, model.RoleSolicitante)

	solicitudes := router.Group("/api/solicitudes")
	{
		solicitudes.POST("", ownerRoles, h.Create)
		solicitudes.GET("", anyRole, h.List)
		solicitudes.GET("/:id", anyRole, h.GetByID)
		solicitudes.PUT("/:id", ownerRoles, h.Update)
		solicitudes.DELETE("/:id", ownerRoles, h.Delete)
		solicitudes.POST("/:id/archivos", ownerRoles, h.UploadAdjuntos)
	}
}

// Create registers a new solicitud de pago
// @Summary      Create solicitud
// @Description  Creates a payment request as borrador, or directly enviada when "enviar" is true
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSolicitudRequest  true  "Solicitud payload"
// @Success      201      {object}  response.Response{data=service.SolicitudResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/solicitudes [post]
func (h *SolicitudHandler) Create(c *gin.Context) {
	var req service.CreateSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.solicitudService.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// List returns solicitudes visible to the caller, optionally filtered
// @Summary      List solicitudes
// @Tags         solicitudes
// @Produce      json
// @Security     BearerAuth
// @Param        estado        query  string  false  "Filter by estado"
// @Param        departamento  query  string  false  "Filter by departamento"
// @Param        tipo_pago     query  string  false  "Filter by tipo de pago"
// @Param        page          query  int     false  "Page number"
// @Param        limit         query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /api/solicitudes [get]
func (h *SolicitudHandler) List(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.ListSolicitudesFilter{
		Estado:       c.Query("estado"),
		Departamento: c.Query("departamento"),
		TipoPago:     c.Query("tipo_pago"),
		Page:         params.Page,
		Limit:        params.Limit,
	}

	solicitudes, total, err := h.solicitudService.List(c.Request.Context(), actorID(c), filter)
	if err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, solicitudes, total, params.Page, params.Limit))
}

// GetByID returns one solicitud with its attachments
// @Summary      Get solicitud
// @Tags         solicitudes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Solicitud ID"
// @Success      200  {object}  response.Response{data=service.SolicitudResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/solicitudes/{id} [get]
func (h *SolicitudHandler) GetByID(c *gin.Context) {
	result, err := h.solicitudService.GetByID(c.Request.Context(), actorID(c), c.Param("id"))
	if err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Update edits a solicitud while it is still borrador or enviada
// @Summary      Update solicitud
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Solicitud ID"
// @Param        payload  body      service.UpdateSolicitudRequest  true  "Fields to update"
// @Success      200      {object}  response.Response{data=service.SolicitudResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/solicitudes/{id} [put]
func (h *SolicitudHandler) Update(c *gin.Context) {
	var req service.UpdateSolicitudRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.solicitudService.Update(c.Request.Context(), actorID(c), c.Param("id"), req)
	if err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Delete removes a solicitud that never left borrador
// @Summary      Delete solicitud
// @Tags         solicitudes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Solicitud ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/solicitudes/{id} [delete]
func (h *SolicitudHandler) Delete(c *gin.Context) {
	if err := h.solicitudService.Delete(c.Request.Context(), actorID(c), c.Param("id")); err != nil {
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// UploadAdjuntos attaches request documents via multipart form
// @Summary      Upload request documents
// @Tags         solicitudes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Solicitud ID"
// @Param        archivos  formData  file    true  "Files to attach"
// @Success      201       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /api/solicitudes/{id}/archivos [post]
func (h *SolicitudHandler) UploadAdjuntos(c *gin.Context) {
	metas, cleanup, err := h.storeUploadedFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	count, err := h.solicitudService.AddAdjuntos(c.Request.Context(), actorID(c), c.Param("id"), metas)
	if err != nil {
		cleanup()
		code := httpStatusFor(err)
		c.JSON(code, response.Error(code, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"total_archivos": count}))
}

// storeUploadedFiles saves every multipart file under uploadDir/<solicitud_id>
// and returns the metadata rows plus a cleanup func for when the service
// rejects the upload.
func (h *SolicitudHandler) storeUploadedFiles(c *gin.Context) ([]service.ArchivoMeta, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	files := form.File["archivos"]
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no files provided under field 'archivos'")
	}

	dir := filepath.Join(h.uploadDir, c.Param("id"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	metas := make([]service.ArchivoMeta, 0, len(files))
	stored := make([]string, 0, len(files))
	for _, f := range files {
		dst := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(f.Filename))
		if err := c.SaveUploadedFile(f, dst); err != nil {
			return nil, nil, fmt.Errorf("failed to store file %s: %w", f.Filename, err)
		}
		stored = append(stored, dst)
		metas = append(metas, service.ArchivoMeta{
			NombreArchivo: filepath.Base(f.Filename),
			TipoContenido: f.Header.Get("Content-Type"),
			Tamano:        f.Size,
			RutaArchivo:   dst,
		})
	}

	cleanup := func() {
		for _, path := range stored {
			_ = os.Remove(path)
		}
	}
	return metas, cleanup, nil
}

// actorID returns the authenticated user id set by the auth middleware.
func actorID(c *gin.Context) string {
	id, _ := c.Get("userID")
	idStr, _ := id.(string)
	return idStr
}
