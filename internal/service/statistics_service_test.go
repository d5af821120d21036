package service

import (
	"context"
	"testing"
	"time"

	"solicitudes-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAggregatesCounters(t *testing.T) {
	f := newFixture()
	svc := NewStatisticsService(f.solicitudRepo)

	f.seedSolicitud(model.EstadoBorrador)
	f.seedSolicitud(model.EstadoEnviada)
	f.seedSolicitud(model.EstadoEnRevision)
	f.seedSolicitud(model.EstadoAprobada)

	now := time.Now()
	pagada := f.seedSolicitud(model.EstadoPagada)
	pagada.Monto = decimal.NewFromInt(2500)
	pagada.FechaPago = &now
	require.NoError(t, f.solicitudRepo.Update(context.Background(), pagada))

	resp, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 5, resp.Total)
	assert.EqualValues(t, 2, resp.Pendientes) // enviada + en_revision
	assert.EqualValues(t, 1, resp.Aprobadas)
	assert.EqualValues(t, 1, resp.Pagadas)
	assert.EqualValues(t, 1, resp.Borradores)
	assert.EqualValues(t, 1, resp.PorEstado[model.EstadoEnviada])
	assert.Equal(t, "2500.00", resp.MontoPagadoMes)
	assert.NotEmpty(t, resp.PorDepartamento)
}
