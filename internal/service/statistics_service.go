package service

import (
	"context"
	"fmt"
	"time"

	"solicitudes-api/internal/model"
	"solicitudes-api/internal/repository"
)

// DashboardResponse aggregates the counters the role dashboards display.
type DashboardResponse struct {
	PorEstado        map[string]int64               `json:"por_estado"`
	Pendientes       int64                          `json:"pendientes"` // enviada + en_revision
	Aprobadas        int64                          `json:"aprobadas"`
	Rechazadas       int64                          `json:"rechazadas"`
	Pagadas          int64                          `json:"pagadas"`
	Borradores       int64                          `json:"borradores"`
	Total            int64                          `json:"total"`
	MontoPagadoMes   string                         `json:"monto_pagado_mes"`
	PorDepartamento  []repository.DepartamentoCount `json:"por_departamento"`
	GeneradoEn       string                         `json:"generado_en"`
}

type StatisticsService interface {
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type statisticsService struct {
	solicitudRepo repository.SolicitudRepository
}

func NewStatisticsService(solicitudRepo repository.SolicitudRepository) StatisticsService {
	return &statisticsService{solicitudRepo: solicitudRepo}
}

// GetDashboard computes per-status counters, per-department volume, and the
// amount paid month-to-date.
func (s *statisticsService) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	now := time.Now()
	resp := DashboardResponse{
		PorEstado:  map[string]int64{},
		GeneradoEn: now.Format(time.RFC3339),
	}

	counts, err := s.solicitudRepo.CountByEstado(ctx)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to aggregate estados: %w", err)
	}
	for _, c := range counts {
		resp.PorEstado[c.Estado] = c.Total
		resp.Total += c.Total
		switch c.Estado {
		case model.EstadoEnviada, model.EstadoEnRevision:
			resp.Pendientes += c.Total
		case model.EstadoAprobada:
			resp.Aprobadas += c.Total
		case model.EstadoRechazada:
			resp.Rechazadas += c.Total
		case model.EstadoPagada:
			resp.Pagadas += c.Total
		case model.EstadoBorrador:
			resp.Borradores += c.Total
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	pagadoMes, err := s.solicitudRepo.SumMontoPagado(ctx, monthStart)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to sum paid amounts: %w", err)
	}
	resp.MontoPagadoMes = pagadoMes.StringFixed(2)

	porDepto, err := s.solicitudRepo.CountByDepartamento(ctx, nil)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to aggregate departamentos: %w", err)
	}
	resp.PorDepartamento = porDepto

	return resp, nil
}
