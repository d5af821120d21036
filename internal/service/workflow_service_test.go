package service

import (
	"context"
	"encoding/json"
	"testing"

	"solicitudes-api/internal/model"
	"solicitudes-api/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMovesBorradorToEnviada(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoBorrador)

	resp, err := f.workflow.Submit(context.Background(), sol.ID.String(), f.solicitante.ID.String())
	require.NoError(t, err)

	assert.Equal(t, model.EstadoEnviada, resp.Estado)
	assert.NotNil(t, f.solicitudRepo.lastFields["fecha_envio"])

	// audit entry and realtime event both recorded
	require.Len(t, f.auditRepo.entries, 1)
	assert.Equal(t, model.ActionEnviarSolicitud, f.auditRepo.entries[0].Action)

	require.Len(t, f.notifier.messages, 1)
	var event TransitionEvent
	require.NoError(t, json.Unmarshal(f.notifier.messages[0], &event))
	assert.Equal(t, sol.Folio, event.Folio)
	assert.Equal(t, model.EstadoEnviada, event.Estado)
	assert.Equal(t, f.solicitante.Email, event.Actor)
}

func TestSubmitByNonOwnerFails(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoBorrador)
	intruso := f.userRepo.add("otro@empresa.mx", model.RoleSolicitante)

	_, err := f.workflow.Submit(context.Background(), sol.ID.String(), intruso.ID.String())
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)

	stored, _ := f.solicitudRepo.FindByID(context.Background(), sol.ID)
	assert.Equal(t, model.EstadoBorrador, stored.Estado)
	assert.Empty(t, f.notifier.messages)
}

func TestApproveRequiresAprobadorRole(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoEnviada)

	_, err := f.workflow.Approve(context.Background(), sol.ID.String(), f.solicitante.ID.String(), "procede")
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)

	resp, err := f.workflow.Approve(context.Background(), sol.ID.String(), f.aprobador.ID.String(), "procede")
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAprobada, resp.Estado)
	assert.Equal(t, f.aprobador.Email, resp.AprobadorEmail)
}

func TestRevokedRoleCannotTransition(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoEnviada)

	// The aprobador's role is revoked after token issuance; authorization reads
	// the current record, so the transition must fail.
	f.aprobador.Role = model.RoleSolicitante
	f.userRepo.users[f.aprobador.ID.String()] = f.aprobador

	_, err := f.workflow.Approve(context.Background(), sol.ID.String(), f.aprobador.ID.String(), "procede")
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)
}

func TestRejectShortCommentsFail(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoEnRevision)

	_, err := f.workflow.Reject(context.Background(), sol.ID.String(), f.aprobador.ID.String(), "corto")
	assert.ErrorIs(t, err, workflow.ErrValidationFailed)

	stored, _ := f.solicitudRepo.FindByID(context.Background(), sol.ID)
	assert.Equal(t, model.EstadoEnRevision, stored.Estado)
}

func TestRejectThenResubmit(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoEnRevision)

	resp, err := f.workflow.Reject(context.Background(), sol.ID.String(), f.aprobador.ID.String(), "falta factura del proveedor")
	require.NoError(t, err)
	assert.Equal(t, model.EstadoRechazada, resp.Estado)

	resp, err = f.workflow.Submit(context.Background(), sol.ID.String(), f.solicitante.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.EstadoEnviada, resp.Estado)
}

func TestMarkPaidIsIdempotentAgainstDoubleSubmit(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoAprobada)

	resp, err := f.workflow.MarkPaid(context.Background(), sol.ID.String(), f.pagador.ID.String(), "TRX-001", "")
	require.NoError(t, err)
	assert.Equal(t, model.EstadoPagada, resp.Estado)
	assert.NotNil(t, resp.FechaLimiteComprobante)

	// Second click: the record is no longer aprobada, so the conditional
	// update matches nothing.
	_, err = f.workflow.MarkPaid(context.Background(), sol.ID.String(), f.pagador.ID.String(), "TRX-001", "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestLostRaceSurfacesAsConflict(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoEnviada)
	f.solicitudRepo.forceStale = true

	_, err := f.workflow.Approve(context.Background(), sol.ID.String(), f.aprobador.ID.String(), "procede")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	assert.ErrorIs(t, err, workflow.ErrStaleState)
	assert.Empty(t, f.notifier.messages)
}

func TestAddPaymentProofs(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoPagada)

	metas := []ArchivoMeta{
		{NombreArchivo: "comprobante.pdf", TipoContenido: "application/pdf", Tamano: 2048, RutaArchivo: "uploads/x/comprobante.pdf"},
	}

	count, err := f.workflow.AddPaymentProofs(context.Background(), sol.ID.String(), f.pagador.ID.String(), metas)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, _ := f.solicitudRepo.FindByIDWithArchivos(context.Background(), sol.ID)
	require.Len(t, stored.Archivos, 1)
	assert.Equal(t, model.ArchivoComprobante, stored.Archivos[0].Tipo)
	assert.Equal(t, f.pagador.Email, stored.Archivos[0].SubidoPor)
}

func TestAddPaymentProofsOnlyWhilePagada(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoAprobada)

	metas := []ArchivoMeta{{NombreArchivo: "c.pdf", RutaArchivo: "uploads/x/c.pdf"}}
	_, err := f.workflow.AddPaymentProofs(context.Background(), sol.ID.String(), f.pagador.ID.String(), metas)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestAddPaymentProofsRequiresPagador(t *testing.T) {
	f := newFixture()
	sol := f.seedSolicitud(model.EstadoPagada)

	metas := []ArchivoMeta{{NombreArchivo: "c.pdf", RutaArchivo: "uploads/x/c.pdf"}}
	_, err := f.workflow.AddPaymentProofs(context.Background(), sol.ID.String(), f.solicitante.ID.String(), metas)
	assert.ErrorIs(t, err, workflow.ErrUnauthorized)
}

func TestUnknownSolicitudID(t *testing.T) {
	f := newFixture()
	_, err := f.workflow.Submit(context.Background(), "not-a-uuid", f.solicitante.ID.String())
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	_, err = f.workflow.Submit(context.Background(), "6f1c24a0-0000-4000-8000-000000000000", f.solicitante.ID.String())
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
