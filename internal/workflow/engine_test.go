package workflow

import (
	"testing"
	"time"

	"solicitudes-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	solicitante = Actor{ID: uuid.New(), Email: "ana@empresa.mx", Role: model.RoleSolicitante}
	aprobador   = Actor{ID: uuid.New(), Email: "luis@empresa.mx", Role: model.RoleAprobador}
	pagador     = Actor{ID: uuid.New(), Email: "tesoreria@empresa.mx", Role: model.RolePagador}
	admin       = Actor{ID: uuid.New(), Email: "admin@empresa.mx", Role: model.RoleAdmin}
)

func solicitudEn(estado string) *model.Solicitud {
	return &model.Solicitud{
		ID:               uuid.New(),
		Folio:            "SOL-20260105-00001",
		Estado:           estado,
		SolicitanteEmail: solicitante.Email,
	}
}

func TestSubmitByOwner(t *testing.T) {
	now := date(2026, time.January, 5)
	fields, err := AttemptTransition(solicitudEn(model.EstadoBorrador), model.EstadoEnviada, solicitante, Payload{Now: now})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoEnviada, fields["estado"])
	assert.Equal(t, now, fields["fecha_envio"])
	assert.Equal(t, now, fields["fecha_actualizacion"])
}

func TestSubmitByNonOwnerRejected(t *testing.T) {
	otro := Actor{ID: uuid.New(), Email: "otro@empresa.mx", Role: model.RoleSolicitante}
	_, err := AttemptTransition(solicitudEn(model.EstadoBorrador), model.EstadoEnviada, otro, Payload{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubmitByWrongRoleRejected(t *testing.T) {
	_, err := AttemptTransition(solicitudEn(model.EstadoBorrador), model.EstadoEnviada, aprobador, Payload{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdminPassesEveryGate(t *testing.T) {
	_, err := AttemptTransition(solicitudEn(model.EstadoBorrador), model.EstadoEnviada, admin, Payload{})
	require.NoError(t, err)

	_, err = AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoAprobada, admin, Payload{})
	require.NoError(t, err)

	_, err = AttemptTransition(solicitudEn(model.EstadoAprobada), model.EstadoPagada, admin, Payload{})
	require.NoError(t, err)
}

func TestDraftOnlyReachesEnviada(t *testing.T) {
	// Even an admin cannot skip ahead from borrador
	for _, target := range []string{model.EstadoEnRevision, model.EstadoAprobada, model.EstadoRechazada, model.EstadoPagada} {
		_, err := AttemptTransition(solicitudEn(model.EstadoBorrador), target, admin, Payload{})
		assert.ErrorIs(t, err, ErrInvalidTransition, "borrador -> %s must be illegal", target)
	}
}

func TestBorradorAndCanceladaAreNotTargets(t *testing.T) {
	_, err := AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoBorrador, admin, Payload{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoCancelada, admin, Payload{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUnknownTargetStatus(t *testing.T) {
	_, err := AttemptTransition(solicitudEn(model.EstadoEnviada), "pendiente", admin, Payload{})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestStartReviewRecordsAprobador(t *testing.T) {
	fields, err := AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoEnRevision, aprobador, Payload{})
	require.NoError(t, err)
	assert.Equal(t, aprobador.Email, fields["aprobador_email"])
}

func TestApproveFromEnviadaAndEnRevision(t *testing.T) {
	now := date(2026, time.February, 10)
	for _, from := range []string{model.EstadoEnviada, model.EstadoEnRevision} {
		fields, err := AttemptTransition(solicitudEn(from), model.EstadoAprobada, aprobador, Payload{Comentarios: "  procede  ", Now: now})
		require.NoError(t, err, "approve from %s", from)

		assert.Equal(t, model.EstadoAprobada, fields["estado"])
		assert.Equal(t, aprobador.Email, fields["aprobador_email"])
		assert.Equal(t, "procede", fields["comentarios_aprobador"])
		assert.Equal(t, now, fields["fecha_aprobacion"])
	}
}

func TestRejectRequiresComments(t *testing.T) {
	// Too short, even for admin
	for _, actor := range []Actor{aprobador, admin} {
		_, err := AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoRechazada, actor, Payload{Comentarios: "corto"})
		assert.ErrorIs(t, err, ErrValidationFailed)
	}

	// Whitespace padding does not count toward the minimum
	_, err := AttemptTransition(solicitudEn(model.EstadoEnviada), model.EstadoRechazada, aprobador, Payload{Comentarios: "   ab    \t\n   "})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRejectRecordsDecision(t *testing.T) {
	now := date(2026, time.February, 11)
	fields, err := AttemptTransition(solicitudEn(model.EstadoEnRevision), model.EstadoRechazada, aprobador, Payload{Comentarios: "falta factura del proveedor", Now: now})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoRechazada, fields["estado"])
	assert.Equal(t, aprobador.Email, fields["aprobador_email"])
	assert.Equal(t, "falta factura del proveedor", fields["comentarios_aprobador"])
	assert.Equal(t, now, fields["fecha_rechazo"])
}

func TestResubmissionAfterRejection(t *testing.T) {
	fields, err := AttemptTransition(solicitudEn(model.EstadoRechazada), model.EstadoEnviada, solicitante, Payload{})
	require.NoError(t, err)
	assert.Equal(t, model.EstadoEnviada, fields["estado"])
	assert.NotNil(t, fields["fecha_envio"])
}

func TestMarkPaidSetsProofDeadline(t *testing.T) {
	friday := date(2026, time.January, 2)
	fields, err := AttemptTransition(solicitudEn(model.EstadoAprobada), model.EstadoPagada, pagador, Payload{
		ReferenciaPago: " TRX-9912 ",
		Comentarios:    "transferencia SPEI",
		Now:            friday,
	})
	require.NoError(t, err)

	assert.Equal(t, pagador.Email, fields["pagador_email"])
	assert.Equal(t, "TRX-9912", fields["referencia_pago"])
	assert.Equal(t, friday, fields["fecha_pago"])
	assert.Equal(t, ProofDeadline(friday, DiasHabilesComprobante), fields["fecha_limite_comprobante"])
}

func TestPagadaIsTerminalForTransitions(t *testing.T) {
	for _, target := range []string{model.EstadoEnviada, model.EstadoAprobada, model.EstadoRechazada, model.EstadoPagada} {
		_, err := AttemptTransition(solicitudEn(model.EstadoPagada), target, admin, Payload{Comentarios: "comentario suficiente"})
		assert.ErrorIs(t, err, ErrInvalidTransition, "pagada -> %s must be illegal", target)
	}
}

func TestCanAttachComprobantes(t *testing.T) {
	require.NoError(t, CanAttachComprobantes(solicitudEn(model.EstadoPagada), pagador))
	require.NoError(t, CanAttachComprobantes(solicitudEn(model.EstadoPagada), admin))

	err := CanAttachComprobantes(solicitudEn(model.EstadoPagada), solicitante)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = CanAttachComprobantes(solicitudEn(model.EstadoAprobada), pagador)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
