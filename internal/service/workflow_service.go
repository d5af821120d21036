package service

import (
	"context"
	"encoding/json"
	"fmt"

	"solicitudes-api/internal/model"
	"solicitudes-api/internal/repository"
	"solicitudes-api/internal/workflow"

	"github.com/google/uuid"
)

// TransitionNotifier receives serialized workflow events for realtime fan-out.
// The websocket hub satisfies it; tests plug in a recorder.
type TransitionNotifier interface {
	Publish(message []byte)
}

// TransitionEvent is the payload broadcast after every successful transition.
type TransitionEvent struct {
	Event       string `json:"event"`
	SolicitudID string `json:"solicitud_id"`
	Folio       string `json:"folio"`
	Estado      string `json:"estado"`
	Actor       string `json:"actor"`
}

// ArchivoMeta describes one uploaded file as recorded by the upload handler.
type ArchivoMeta struct {
	NombreArchivo string `json:"nombre_archivo" binding:"required"`
	TipoContenido string `json:"tipo_contenido"`
	Tamano        int64  `json:"tamano"`
	RutaArchivo   string `json:"ruta_archivo" binding:"required"`
}

// WorkflowService drives the solicitud lifecycle. Every method resolves the
// actor's role from the current user record, asks the engine for a field-set,
// and persists it with a conditional (compare-and-swap) update plus an audit
// entry in one transaction.
type WorkflowService interface {
	Submit(ctx context.Context, solicitudID, actorID string) (*SolicitudResponse, error)
	StartReview(ctx context.Context, solicitudID, actorID string) (*SolicitudResponse, error)
	Approve(ctx context.Context, solicitudID, actorID, comentarios string) (*SolicitudResponse, error)
	Reject(ctx context.Context, solicitudID, actorID, comentarios string) (*SolicitudResponse, error)
	MarkPaid(ctx context.Context, solicitudID, actorID, referencia, comentarios string) (*SolicitudResponse, error)
	AddPaymentProofs(ctx context.Context, solicitudID, actorID string, archivos []ArchivoMeta) (int, error)
}

type workflowService struct {
	solicitudRepo repository.SolicitudRepository
	userRepo      repository.UserRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
	notifier      TransitionNotifier
}

func NewWorkflowService(
	solicitudRepo repository.SolicitudRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier TransitionNotifier,
) WorkflowService {
	return &workflowService{
		solicitudRepo: solicitudRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
		notifier:      notifier,
	}
}

func (s *workflowService) Submit(ctx context.Context, solicitudID, actorID string) (*SolicitudResponse, error) {
	return s.transition(ctx, solicitudID, actorID, model.EstadoEnviada, workflow.Payload{}, model.ActionEnviarSolicitud)
}

func (s *workflowService) StartReview(ctx context.Context, solicitudID, actorID string) (*SolicitudResponse, error) {
	return s.transition(ctx, solicitudID, actorID, model.EstadoEnRevision, workflow.Payload{}, model.ActionIniciarRevision)
}

func (s *workflowService) Approve(ctx context.Context, solicitudID, actorID, comentarios string) (*SolicitudResponse, error) {
	p := workflow.Payload{Comentarios: comentarios}
	return s.transition(ctx, solicitudID, actorID, model.EstadoAprobada, p, model.ActionAprobarSolicitud)
}

func (s *workflowService) Reject(ctx context.Context, solicitudID, actorID, comentarios string) (*SolicitudResponse, error) {
	p := workflow.Payload{Comentarios: comentarios}
	return s.transition(ctx, solicitudID, actorID, model.EstadoRechazada, p, model.ActionRechazarSolicitud)
}

func (s *workflowService) MarkPaid(ctx context.Context, solicitudID, actorID, referencia, comentarios string) (*SolicitudResponse, error) {
	p := workflow.Payload{ReferenciaPago: referencia, Comentarios: comentarios}
	return s.transition(ctx, solicitudID, actorID, model.EstadoPagada, p, model.ActionMarcarPagada)
}

func (s *workflowService) AddPaymentProofs(ctx context.Context, solicitudID, actorID string, archivos []ArchivoMeta) (int, error) {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}
	if len(archivos) == 0 {
		return 0, fmt.Errorf("%w: no proof files provided", workflow.ErrValidationFailed)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveActor(txCtx, actorID)
		if err != nil {
			return err
		}

		sol, err := s.loadSolicitud(txCtx, id)
		if err != nil {
			return err
		}

		if err := workflow.CanAttachComprobantes(sol, actor); err != nil {
			return err
		}

		rows := make([]model.Archivo, 0, len(archivos))
		for _, a := range archivos {
			rows = append(rows, model.Archivo{
				SolicitudID:   id,
				Tipo:          model.ArchivoComprobante,
				NombreArchivo: a.NombreArchivo,
				TipoContenido: a.TipoContenido,
				Tamano:        a.Tamano,
				RutaArchivo:   a.RutaArchivo,
				SubidoPor:     actor.Email,
			})
		}
		if err := s.solicitudRepo.AppendArchivos(txCtx, rows); err != nil {
			return fmt.Errorf("failed to append payment proofs: %w", err)
		}

		return s.audit(txCtx, actor, model.ActionSubirComprobantes, sol, map[string]interface{}{
			"total_archivos": len(rows),
		})
	})
	if err != nil {
		return 0, err
	}

	return len(archivos), nil
}

// transition is the shared engine-then-persist path for every status change.
func (s *workflowService) transition(ctx context.Context, solicitudID, actorID, target string, p workflow.Payload, action string) (*SolicitudResponse, error) {
	id, err := uuid.Parse(solicitudID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid solicitud id", workflow.ErrNotFound)
	}

	var actorEmail string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		actor, err := s.resolveActor(txCtx, actorID)
		if err != nil {
			return err
		}
		actorEmail = actor.Email

		sol, err := s.loadSolicitud(txCtx, id)
		if err != nil {
			return err
		}

		fields, err := workflow.AttemptTransition(sol, target, actor, p)
		if err != nil {
			return err
		}

		applied, err := s.solicitudRepo.ApplyTransition(txCtx, id, sol.Estado, map[string]interface{}(fields))
		if err != nil {
			return fmt.Errorf("failed to persist transition: %w", err)
		}
		if !applied {
			// Someone else moved the solicitud between our read and write.
			return fmt.Errorf("%w: %w", workflow.ErrInvalidTransition, workflow.ErrStaleState)
		}

		return s.audit(txCtx, actor, action, sol, map[string]interface{}{
			"de": sol.Estado,
			"a":  target,
		})
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.solicitudRepo.FindByIDWithArchivos(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload solicitud: %w", err)
	}

	s.notify(TransitionEvent{
		Event:       action,
		SolicitudID: updated.ID.String(),
		Folio:       updated.Folio,
		Estado:      updated.Estado,
		Actor:       actorEmail,
	})

	resp := toSolicitudResponse(*updated)
	return &resp, nil
}

// resolveActor loads the actor's *current* user record so a role revoked after
// token issuance cannot still drive transitions.
func (s *workflowService) resolveActor(ctx context.Context, actorID string) (workflow.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return workflow.Actor{}, fmt.Errorf("%w: unknown actor", workflow.ErrUnauthorized)
		}
		return workflow.Actor{}, fmt.Errorf("failed to resolve actor: %w", err)
	}
	return workflow.Actor{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *workflowService) loadSolicitud(ctx context.Context, id uuid.UUID) (*model.Solicitud, error) {
	sol, err := s.solicitudRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load solicitud: %w", err)
	}
	return sol, nil
}

func (s *workflowService) audit(ctx context.Context, actor workflow.Actor, action string, sol *model.Solicitud, details map[string]interface{}) error {
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

func (s *workflowService) notify(event TransitionEvent) {
	if s.notifier == nil {
		return
	}
	if msg, err := json.Marshal(event); err == nil {
		s.notifier.Publish(msg)
	}
}
