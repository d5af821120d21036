package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"solicitudes-api/internal/model"
	"solicitudes-api/internal/repository"
	"solicitudes-api/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateSolicitudRequest struct {
	Departamento        string          `json:"departamento" binding:"required"`
	Monto               decimal.Decimal `json:"monto"`
	TipoMoneda          string          `json:"tipo_moneda" binding:"required"`
	BancoDestino        string          `json:"banco_destino" binding:"required"`
	CuentaDestino       string          `json:"cuenta_destino" binding:"required,min=10,max=18"`
	EsClabe             *bool           `json:"es_clabe"`
	NombreBeneficiario  string          `json:"nombre_beneficiario" binding:"required,min=2,max=100"`
	NombreEmpresa       string          `json:"nombre_empresa" binding:"required,min=2,max=150"`
	SegundoBeneficiario *string         `json:"segundo_beneficiario" binding:"omitempty,max=100"`
	TipoPago            string          `json:"tipo_pago" binding:"required"`
	ConceptoPago        string          `json:"concepto_pago" binding:"required"`
	ConceptoOtros       *string         `json:"concepto_otros"`
	FechaLimitePago     time.Time       `json:"fecha_limite_pago" binding:"required"`
	DescripcionTipoPago string          `json:"descripcion_tipo_pago" binding:"required,min=10,max=500"`
	ComentariosSolicitante string       `json:"comentarios_solicitante"`
	Enviar              bool            `json:"enviar"` // create directly as enviada instead of borrador
}

type UpdateSolicitudRequest struct {
	Departamento        *string          `json:"departamento"`
	Monto               *decimal.Decimal `json:"monto"`
	TipoMoneda          *string          `json:"tipo_moneda"`
	BancoDestino        *string          `json:"banco_destino"`
	CuentaDestino       *string          `json:"cuenta_destino" binding:"omitempty,min=10,max=18"`
	EsClabe             *bool            `json:"es_clabe"`
	NombreBeneficiario  *string          `json:"nombre_beneficiario" binding:"omitempty,min=2,max=100"`
	NombreEmpresa       *string          `json:"nombre_empresa" binding:"omitempty,min=2,max=150"`
	SegundoBeneficiario *string          `json:"segundo_beneficiario" binding:"omitempty,max=100"`
	TipoPago            *string          `json:"tipo_pago"`
	ConceptoPago        *string          `json:"concepto_pago"`
	ConceptoOtros       *string          `json:"concepto_otros"`
	FechaLimitePago     *time.Time       `json:"fecha_limite_pago"`
	DescripcionTipoPago *string          `json:"descripcion_tipo_pago" binding:"omitempty,min=10,max=500"`
	ComentariosSolicitante *string       `json:"comentarios_solicitante"`
}

type ListSolicitudesFilter struct {
	Estado       string
	Departamento string
	TipoPago     string
	Page         int
	Limit        int
}

type ArchivoResponse struct {
	ID            string `json:"id"`
	NombreArchivo string `json:"nombre_archivo"`
	TipoContenido string `json:"tipo_contenido"`
	Tamano        int64  `json:"tamano"`
	RutaArchivo   string `json:"ruta_archivo"`
	SubidoPor     string `json:"subido_por"`
	FechaSubida   string `json:"fecha_subida"`
}

type SolicitudResponse struct {
	ID                     string            `json:"id"`
	Folio                  string            `json:"folio"`
	Departamento           string            `json:"departamento"`
	Monto                  decimal.Decimal   `json:"monto"`
	TipoMoneda             string            `json:"tipo_moneda"`
	BancoDestino           string            `json:"banco_destino"`
	CuentaDestino          string            `json:"cuenta_destino"`
	EsClabe                bool              `json:"es_clabe"`
	NombreBeneficiario     string            `json:"nombre_beneficiario"`
	NombreEmpresa          string            `json:"nombre_empresa"`
	SegundoBeneficiario    *string           `json:"segundo_beneficiario"`
	TipoPago               string            `json:"tipo_pago"`
	ConceptoPago           string            `json:"concepto_pago"`
	ConceptoOtros          *string           `json:"concepto_otros"`
	FechaLimitePago        string            `json:"fecha_limite_pago"`
	DescripcionTipoPago    string            `json:"descripcion_tipo_pago"`
	Estado                 string            `json:"estado"`
	SolicitanteEmail       string            `json:"solicitante_email"`
	ComentariosSolicitante string            `json:"comentarios_solicitante"`
	FechaEnvio             *string           `json:"fecha_envio"`
	AprobadorEmail         string            `json:"aprobador_email"`
	ComentariosAprobador   string            `json:"comentarios_aprobador"`
	FechaAprobacion        *string           `json:"fecha_aprobacion"`
	FechaRechazo           *string           `json:"fecha_rechazo"`
	PagadorEmail           string            `json:"pagador_email"`
	ReferenciaPago         string            `json:"referencia_pago"`
	ComentariosPagador     string            `json:"comentarios_pagador"`
	FechaPago              *string           `json:"fecha_pago"`
	FechaLimiteComprobante *string           `json:"fecha_limite_comprobante"`
	DiasRestantesComprobante *int            `json:"dias_restantes_comprobante"`
	ArchivosAdjuntos       []ArchivoResponse `json:"archivos_adjuntos"`
	ComprobantesPago       []ArchivoResponse `json:"comprobantes_pago"`
	FechaCreacion          string            `json:"fecha_creacion"`
	FechaActualizacion     string            `json:"fecha_actualizacion"`
}

// --- Interface ---

// SolicitudService covers intake CRUD: everything a solicitud does before and
// around the lifecycle transitions owned by WorkflowService.
type SolicitudService interface {
	Create(ctx context.Context, actorID string, req CreateSolicitudRequest) (*SolicitudResponse, error)
	GetByID(ctx context.Context, actorID, solicitudID string) (*SolicitudResponse, error)
	List(ctx context.Context, actorID string, filter ListSolicitudesFilter) ([]SolicitudResponse, int64, error)
	Update(ctx context.Context, actorID, solicitudID string, req UpdateSolicitudRequest) (*SolicitudResponse, error)
	Delete(ctx context.Context, actorID, solicitudID string) error
	AddAdjuntos(ctx context.Context, actorID, solicitudID string, archivos []ArchivoMeta) (int, error)
}

type solicitudService struct {
	solicitudRepo repository.SolicitudRepository
	userRepo      repository.UserRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewSolicitudService(
	solicitudRepo repository.SolicitudRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) SolicitudService {
	return &solicitudService{
		solicitudRepo: solicitudRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *solicitudService) Create(ctx context.Context, actorID string, req CreateSolicitudRequest) (*SolicitudResponse, error) {
	if err := validateIntake(req); err != nil {
		return nil, err
	}

	var created model.Solicitud
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveUser(txCtx, actorID)
		if err != nil {
			return err
		}
		if actor.Role != model.RoleSolicitante && actor.Role != model.RoleAdmin {
			return fmt.Errorf("%w: only solicitantes may create payment requests", workflow.ErrUnauthorized)
		}

		now := time.Now()
		folio, err := s.solicitudRepo.NextFolio(txCtx, now)
		if err != nil {
			return fmt.Errorf("failed to assign folio: %w", err)
		}

		esClabe := true
		if req.EsClabe != nil {
			esClabe = *req.EsClabe
		}

		created = model.Solicitud{
			Folio:                  folio,
			Departamento:           req.Departamento,
			Monto:                  req.Monto,
			TipoMoneda:             req.TipoMoneda,
			BancoDestino:           req.BancoDestino,
			CuentaDestino:          req.CuentaDestino,
			EsClabe:                esClabe,
			NombreBeneficiario:     req.NombreBeneficiario,
			NombreEmpresa:          req.NombreEmpresa,
			SegundoBeneficiario:    req.SegundoBeneficiario,
			TipoPago:               req.TipoPago,
			ConceptoPago:           req.ConceptoPago,
			ConceptoOtros:          req.ConceptoOtros,
			FechaLimitePago:        req.FechaLimitePago,
			DescripcionTipoPago:    req.DescripcionTipoPago,
			Estado:                 model.EstadoBorrador,
			SolicitanteEmail:       actor.Email,
			ComentariosSolicitante: req.ComentariosSolicitante,
		}
		if req.Enviar {
			created.Estado = model.EstadoEnviada
			created.FechaEnvio = &now
		}

		if err := s.solicitudRepo.Create(txCtx, &created); err != nil {
			return fmt.Errorf("failed to create solicitud: %w", err)
		}

		return s.auditUser(txCtx, actor, model.ActionCrearSolicitud, &created, map[string]interface{}{
			"estado": created.Estado,
			"monto":  created.Monto.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toSolicitudResponse(created)
	return &resp, nil
}

func (s *solicitudService) GetByID(ctx context.Context, actorID, solicitudID string) (*SolicitudResponse, error) {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}

	actor, err := s.resolveUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	sol, err := s.solicitudRepo.FindByIDWithArchivos(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load solicitud: %w", err)
	}

	// Solicitantes only see their own records; reviewer roles see everything.
	if actor.Role == model.RoleSolicitante && !strings.EqualFold(sol.SolicitanteEmail, actor.Email) {
		return nil, fmt.Errorf("%w: not the owner of this solicitud", workflow.ErrUnauthorized)
	}

	resp := toSolicitudResponse(*sol)
	return &resp, nil
}

func (s *solicitudService) List(ctx context.Context, actorID string, filter ListSolicitudesFilter) ([]SolicitudResponse, int64, error) {
	actor, err := s.resolveUser(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	repoFilter := repository.SolicitudFilter{
		Departamento: filter.Departamento,
		TipoPago:     filter.TipoPago,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}
	if filter.Estado != "" {
		if !model.EstadoValido(filter.Estado) {
			return nil, 0, fmt.Errorf("%w: unknown estado %q", workflow.ErrValidationFailed, filter.Estado)
		}
		repoFilter.Estados = []string{filter.Estado}
	}
	if actor.Role == model.RoleSolicitante {
		repoFilter.SolicitanteEmail = actor.Email
	}

	solicitudes, total, err := s.solicitudRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list solicitudes: %w", err)
	}

	result := make([]SolicitudResponse, 0, len(solicitudes))
	for _, sol := range solicitudes {
		result = append(result, toSolicitudResponse(sol))
	}
	return result, total, nil
}

func (s *solicitudService) Update(ctx context.Context, actorID, solicitudID string, req UpdateSolicitudRequest) (*SolicitudResponse, error) {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}

	var updated model.Solicitud
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveUser(txCtx, actorID)
		if err != nil {
			return err
		}

		sol, err := s.solicitudRepo.FindByID(txCtx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return workflow.ErrNotFound
			}
			return fmt.Errorf("failed to load solicitud: %w", err)
		}

		if err := requireOwnerOrAdmin(actor, sol); err != nil {
			return err
		}
		if sol.Estado != model.EstadoBorrador && sol.Estado != model.EstadoEnviada {
			return fmt.Errorf("%w: solicitud can only be edited while borrador or enviada, current status is %q", workflow.ErrInvalidTransition, sol.Estado)
		}

		if err := applyUpdate(sol, req); err != nil {
			return err
		}

		if err := s.solicitudRepo.Update(txCtx, sol); err != nil {
			return fmt.Errorf("failed to update solicitud: %w", err)
		}
		updated = *sol

		return s.auditUser(txCtx, actor, model.ActionActualizarSolicitud, sol, map[string]interface{}{
			"estado": sol.Estado,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toSolicitudResponse(updated)
	return &resp, nil
}

func (s *solicitudService) Delete(ctx context.Context, actorID, solicitudID string) error {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveUser(txCtx, actorID)
		if err != nil {
			return err
		}

		sol, err := s.solicitudRepo.FindByID(txCtx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return workflow.ErrNotFound
			}
			return fmt.Errorf("failed to load solicitud: %w", err)
		}

		if err := requireOwnerOrAdmin(actor, sol); err != nil {
			return err
		}
		// Anything past borrador persists for audit history.
		if sol.Estado != model.EstadoBorrador {
			return fmt.Errorf("%w: only borradores can be deleted, current status is %q", workflow.ErrInvalidTransition, sol.Estado)
		}

		if err := s.solicitudRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete solicitud: %w", err)
		}

		return s.auditUser(txCtx, actor, model.ActionEliminarSolicitud, sol, nil)
	})
}

func (s *solicitudService) AddAdjuntos(ctx context.Context, actorID, solicitudID string, archivos []ArchivoMeta) (int, error) {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}
	if len(archivos) == 0 {
		return 0, fmt.Errorf("%w: no files provided", workflow.ErrValidationFailed)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveUser(txCtx, actorID)
		if err != nil {
			return err
		}

		sol, err := s.solicitudRepo.FindByID(txCtx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return workflow.ErrNotFound
			}
			return fmt.Errorf("failed to load solicitud: %w", err)
		}

		if err := requireOwnerOrAdmin(actor, sol); err != nil {
			return err
		}
		if sol.Estado != model.EstadoBorrador && sol.Estado != model.EstadoEnviada {
			return fmt.Errorf("%w: documents can only be attached while borrador or enviada", workflow.ErrInvalidTransition)
		}

		rows := make([]model.Archivo, 0, len(archivos))
		for _, a := range archivos {
			rows = append(rows, model.Archivo{
				SolicitudID:   id,
				Tipo:          model.ArchivoAdjunto,
				NombreArchivo: a.NombreArchivo,
				TipoContenido: a.TipoContenido,
				Tamano:        a.Tamano,
				RutaArchivo:   a.RutaArchivo,
				SubidoPor:     actor.Email,
			})
		}
		if err := s.solicitudRepo.AppendArchivos(txCtx, rows); err != nil {
			return fmt.Errorf("failed to append adjuntos: %w", err)
		}

		return s.auditUser(txCtx, actor, model.ActionSubirAdjuntos, sol, map[string]interface{}{
			"total_archivos": len(rows),
		})
	})
	if err != nil {
		return 0, err
	}

	return len(archivos), nil
}

// --- Helpers ---

func (s *solicitudService) resolveUser(ctx context.Context, actorID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: unknown actor", workflow.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to resolve actor: %w", err)
	}
	return user, nil
}

func (s *solicitudService) auditUser(ctx context.Context, actor *model.User, action string, sol *model.Solicitud, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	entry := model.AuditLog{
		UserID:     &actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		EntityID:   sol.ID.String(),
		EntityName: sol.Folio,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func requireOwnerOrAdmin(actor *model.User, sol *model.Solicitud) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if !strings.EqualFold(actor.Email, sol.SolicitanteEmail) {
		return fmt.Errorf("%w: only the owning solicitante may modify this request", workflow.ErrUnauthorized)
	}
	return nil
}

func validateIntake(req CreateSolicitudRequest) error {
	if !req.Monto.IsPositive() {
		return fmt.Errorf("%w: monto must be greater than zero", workflow.ErrValidationFailed)
	}
	if !slices.Contains(model.Departamentos, req.Departamento) {
		return fmt.Errorf("%w: unknown departamento %q", workflow.ErrValidationFailed, req.Departamento)
	}
	if !slices.Contains(model.TiposMoneda, req.TipoMoneda) {
		return fmt.Errorf("%w: unknown tipo_moneda %q", workflow.ErrValidationFailed, req.TipoMoneda)
	}
	if !slices.Contains(model.BancosDestino, req.BancoDestino) {
		return fmt.Errorf("%w: unknown banco_destino %q", workflow.ErrValidationFailed, req.BancoDestino)
	}
	if !slices.Contains(model.TiposPago, req.TipoPago) {
		return fmt.Errorf("%w: unknown tipo_pago %q", workflow.ErrValidationFailed, req.TipoPago)
	}
	if !slices.Contains(model.ConceptosPago, req.ConceptoPago) {
		return fmt.Errorf("%w: unknown concepto_pago %q", workflow.ErrValidationFailed, req.ConceptoPago)
	}
	if req.ConceptoPago == model.ConceptoOtros && (req.ConceptoOtros == nil || strings.TrimSpace(*req.ConceptoOtros) == "") {
		return fmt.Errorf("%w: concepto_otros is required when concepto_pago is %q", workflow.ErrValidationFailed, model.ConceptoOtros)
	}
	return nil
}

func applyUpdate(sol *model.Solicitud, req UpdateSolicitudRequest) error {
	if req.Monto != nil {
		if !req.Monto.IsPositive() {
			return fmt.Errorf("%w: monto must be greater than zero", workflow.ErrValidationFailed)
		}
		sol.Monto = *req.Monto
	}
	if req.Departamento != nil {
		if !slices.Contains(model.Departamentos, *req.Departamento) {
			return fmt.Errorf("%w: unknown departamento %q", workflow.ErrValidationFailed, *req.Departamento)
		}
		sol.Departamento = *req.Departamento
	}
	if req.TipoMoneda != nil {
		if !slices.Contains(model.TiposMoneda, *req.TipoMoneda) {
			return fmt.Errorf("%w: unknown tipo_moneda %q", workflow.ErrValidationFailed, *req.TipoMoneda)
		}
		sol.TipoMoneda = *req.TipoMoneda
	}
	if req.BancoDestino != nil {
		if !slices.Contains(model.BancosDestino, *req.BancoDestino) {
			return fmt.Errorf("%w: unknown banco_destino %q", workflow.ErrValidationFailed, *req.BancoDestino)
		}
		sol.BancoDestino = *req.BancoDestino
	}
	if req.TipoPago != nil {
		if !slices.Contains(model.TiposPago, *req.TipoPago) {
			return fmt.Errorf("%w: unknown tipo_pago %q", workflow.ErrValidationFailed, *req.TipoPago)
		}
		sol.TipoPago = *req.TipoPago
	}
	if req.ConceptoPago != nil {
		if !slices.Contains(model.ConceptosPago, *req.ConceptoPago) {
			return fmt.Errorf("%w: unknown concepto_pago %q", workflow.ErrValidationFailed, *req.ConceptoPago)
		}
		sol.ConceptoPago = *req.ConceptoPago
	}
	if req.CuentaDestino != nil {
		sol.CuentaDestino = *req.CuentaDestino
	}
	if req.EsClabe != nil {
		sol.EsClabe = *req.EsClabe
	}
	if req.NombreBeneficiario != nil {
		sol.NombreBeneficiario = *req.NombreBeneficiario
	}
	if req.NombreEmpresa != nil {
		sol.NombreEmpresa = *req.NombreEmpresa
	}
	if req.SegundoBeneficiario != nil {
		sol.SegundoBeneficiario = req.SegundoBeneficiario
	}
	if req.ConceptoOtros != nil {
		sol.ConceptoOtros = req.ConceptoOtros
	}
	if req.FechaLimitePago != nil {
		sol.FechaLimitePago = *req.FechaLimitePago
	}
	if req.DescripcionTipoPago != nil {
		sol.DescripcionTipoPago = *req.DescripcionTipoPago
	}
	if req.ComentariosSolicitante != nil {
		sol.ComentariosSolicitante = *req.ComentariosSolicitante
	}
	if sol.ConceptoPago == model.ConceptoOtros && (sol.ConceptoOtros == nil || strings.TrimSpace(*sol.ConceptoOtros) == "") {
		return fmt.Errorf("%w: concepto_otros is required when concepto_pago is %q", workflow.ErrValidationFailed, model.ConceptoOtros)
	}
	return nil
}

func toSolicitudResponse(sol model.Solicitud) SolicitudResponse {
	resp := SolicitudResponse{
		ID:                     sol.ID.String(),
		Folio:                  sol.Folio,
		Departamento:           sol.Departamento,
		Monto:                  sol.Monto,
		TipoMoneda:             sol.TipoMoneda,
		BancoDestino:           sol.BancoDestino,
		CuentaDestino:          sol.CuentaDestino,
		EsClabe:                sol.EsClabe,
		NombreBeneficiario:     sol.NombreBeneficiario,
		NombreEmpresa:          sol.NombreEmpresa,
		SegundoBeneficiario:    sol.SegundoBeneficiario,
		TipoPago:               sol.TipoPago,
		ConceptoPago:           sol.ConceptoPago,
		ConceptoOtros:          sol.ConceptoOtros,
		FechaLimitePago:        sol.FechaLimitePago.Format(time.RFC3339),
		DescripcionTipoPago:    sol.DescripcionTipoPago,
		Estado:                 sol.Estado,
		SolicitanteEmail:       sol.SolicitanteEmail,
		ComentariosSolicitante: sol.ComentariosSolicitante,
		FechaEnvio:             formatTimePtr(sol.FechaEnvio),
		AprobadorEmail:         sol.AprobadorEmail,
		ComentariosAprobador:   sol.ComentariosAprobador,
		FechaAprobacion:        formatTimePtr(sol.FechaAprobacion),
		FechaRechazo:           formatTimePtr(sol.FechaRechazo),
		PagadorEmail:           sol.PagadorEmail,
		ReferenciaPago:         sol.ReferenciaPago,
		ComentariosPagador:     sol.ComentariosPagador,
		FechaPago:              formatTimePtr(sol.FechaPago),
		FechaLimiteComprobante: formatTimePtr(sol.FechaLimiteComprobante),
		ArchivosAdjuntos:       []ArchivoResponse{},
		ComprobantesPago:       []ArchivoResponse{},
		FechaCreacion:          sol.FechaCreacion.Format(time.RFC3339),
		FechaActualizacion:     sol.FechaActualizacion.Format(time.RFC3339),
	}

	if sol.Estado == model.EstadoPagada && sol.FechaLimiteComprobante != nil {
		dias := int(time.Until(*sol.FechaLimiteComprobante).Hours() / 24)
		resp.DiasRestantesComprobante = &dias
	}

	for _, a := range sol.Archivos {
		ar := ArchivoResponse{
			ID:            a.ID.String(),
			NombreArchivo: a.NombreArchivo,
			TipoContenido: a.TipoContenido,
			Tamano:        a.Tamano,
			RutaArchivo:   a.RutaArchivo,
			SubidoPor:     a.SubidoPor,
			FechaSubida:   a.FechaSubida.Format(time.RFC3339),
		}
		if a.Tipo == model.ArchivoComprobante {
			resp.ComprobantesPago = append(resp.ComprobantesPago, ar)
		} else {
			resp.ArchivosAdjuntos = append(resp.ArchivosAdjuntos, ar)
		}
	}

	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
