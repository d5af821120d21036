package workflow

import (
	"fmt"
	"strings"
	"time"

	"solicitudes-api/internal/model"

	"github.com/google/uuid"
)

// Actor is the acting user as resolved from the current user record at call
// time. Role must never come from a cached token claim: a revoked aprobador
// keeps a valid JWT until expiry, but must not keep the capability.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// Payload carries transition-specific inputs. Now lets callers pin the clock;
// the zero value means time.Now().
type Payload struct {
	Comentarios    string
	ReferenciaPago string
	Now            time.Time
}

// FieldSet is the exact set of columns a transition writes. The engine computes
// it; persistence applies it atomically (or not at all).
type FieldSet map[string]interface{}

// MinComentariosRechazo is the minimum trimmed length of rejection comments.
const MinComentariosRechazo = 10

// DiasHabilesComprobante is how many business days a pagador has to upload
// proof of payment after marking a solicitud as pagada.
const DiasHabilesComprobante = 3

// roleGate describes who may move a solicitud *into* a given target status.
// Admin passes every gate; ownerOnly additionally requires the actor to be the
// solicitante that owns the record (admins exempt).
type roleGate struct {
	role      string
	ownerOnly bool
}

var targetGates = map[string]roleGate{
	model.EstadoEnviada:    {role: model.RoleSolicitante, ownerOnly: true},
	model.EstadoEnRevision: {role: model.RoleAprobador},
	model.EstadoAprobada:   {role: model.RoleAprobador},
	model.EstadoRechazada:  {role: model.RoleAprobador},
	model.EstadoPagada:     {role: model.RolePagador},
	// borrador and cancelada are never transition targets
}

type rule struct {
	validate func(p Payload) error
	effects  func(actor Actor, p Payload, now time.Time) FieldSet
}

// transitions is the single authoritative table of legal status moves.
var transitions = map[[2]string]rule{
	{model.EstadoBorrador, model.EstadoEnviada}:     {effects: submitEffects},
	{model.EstadoRechazada, model.EstadoEnviada}:    {effects: submitEffects}, // resubmission after rejection
	{model.EstadoEnviada, model.EstadoEnRevision}:   {effects: reviewEffects},
	{model.EstadoEnviada, model.EstadoAprobada}:     {effects: approveEffects},
	{model.EstadoEnRevision, model.EstadoAprobada}:  {effects: approveEffects},
	{model.EstadoEnviada, model.EstadoRechazada}:    {validate: validateRechazo, effects: rejectEffects},
	{model.EstadoEnRevision, model.EstadoRechazada}: {validate: validateRechazo, effects: rejectEffects},
	{model.EstadoAprobada, model.EstadoPagada}:      {effects: payEffects},
}

// AttemptTransition decides whether actor may move s to target and, if so,
// returns the full field-set to persist. It performs no I/O and mutates
// nothing. Preconditions are checked in order: role gate, transition table,
// payload validation.
func AttemptTransition(s *model.Solicitud, target string, actor Actor, p Payload) (FieldSet, error) {
	if !model.EstadoValido(target) {
		return nil, fmt.Errorf("%w: unknown target status %q", ErrValidationFailed, target)
	}

	gate, reachable := targetGates[target]
	if !reachable {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Estado, target)
	}
	if err := gate.check(s, actor); err != nil {
		return nil, err
	}

	r, ok := transitions[[2]string{s.Estado, target}]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Estado, target)
	}

	if r.validate != nil {
		if err := r.validate(p); err != nil {
			return nil, err
		}
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	fields := r.effects(actor, p, now)
	fields["estado"] = target
	fields["fecha_actualizacion"] = now
	return fields, nil
}

// CanAttachComprobantes guards the proof-of-payment upload: pagador or admin,
// and only while the solicitud is pagada.
func CanAttachComprobantes(s *model.Solicitud, actor Actor) error {
	if actor.Role != model.RolePagador && actor.Role != model.RoleAdmin {
		return fmt.Errorf("%w: role %q cannot upload payment proofs", ErrUnauthorized, actor.Role)
	}
	if s.Estado != model.EstadoPagada {
		return fmt.Errorf("%w: proofs can only be attached while pagada, current status is %q", ErrInvalidTransition, s.Estado)
	}
	return nil
}

func (g roleGate) check(s *model.Solicitud, actor Actor) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	if actor.Role != g.role {
		return fmt.Errorf("%w: role %q cannot perform this transition", ErrUnauthorized, actor.Role)
	}
	if g.ownerOnly && !strings.EqualFold(actor.Email, s.SolicitanteEmail) {
		return fmt.Errorf("%w: only the owning solicitante may move this request", ErrUnauthorized)
	}
	return nil
}

func validateRechazo(p Payload) error {
	if len(strings.TrimSpace(p.Comentarios)) < MinComentariosRechazo {
		return fmt.Errorf("%w: rejection requires comments of at least %d characters", ErrValidationFailed, MinComentariosRechazo)
	}
	return nil
}

func submitEffects(_ Actor, _ Payload, now time.Time) FieldSet {
	return FieldSet{"fecha_envio": now}
}

func reviewEffects(actor Actor, _ Payload, _ time.Time) FieldSet {
	return FieldSet{"aprobador_email": actor.Email}
}

func approveEffects(actor Actor, p Payload, now time.Time) FieldSet {
	return FieldSet{
		"aprobador_email":       actor.Email,
		"comentarios_aprobador": strings.TrimSpace(p.Comentarios),
		"fecha_aprobacion":      now,
	}
}

func rejectEffects(actor Actor, p Payload, now time.Time) FieldSet {
	return FieldSet{
		"aprobador_email":       actor.Email,
		"comentarios_aprobador": strings.TrimSpace(p.Comentarios),
		"fecha_rechazo":         now,
	}
}

func payEffects(actor Actor, p Payload, now time.Time) FieldSet {
	return FieldSet{
		"pagador_email":            actor.Email,
		"referencia_pago":          strings.TrimSpace(p.ReferenciaPago),
		"comentarios_pagador":      strings.TrimSpace(p.Comentarios),
		"fecha_pago":               now,
		"fecha_limite_comprobante": ProofDeadline(now, DiasHabilesComprobante),
	}
}
