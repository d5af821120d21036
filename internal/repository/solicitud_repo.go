package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"solicitudes-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SolicitudFilter narrows List queries. Zero values mean "no filter".
type SolicitudFilter struct {
	Estados          []string
	Departamento     string
	TipoPago         string
	SolicitanteEmail string
	Page             int
	Limit            int
}

// EstadoCount is one row of the per-status aggregate.
type EstadoCount struct {
	Estado string `json:"estado"`
	Total  int64  `json:"total"`
}

// DepartamentoCount is one row of the per-department aggregate.
type DepartamentoCount struct {
	Departamento string `json:"departamento"`
	Total        int64  `json:"total"`
}

// SolicitudRepository is the persistence contract the workflow engine's
// callers rely on. ApplyTransition is the single write path for status
// changes and is conditional on the status the caller read.
type SolicitudRepository interface {
	Create(ctx context.Context, s *model.Solicitud) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Solicitud, error)
	FindByIDWithArchivos(ctx context.Context, id uuid.UUID) (*model.Solicitud, error)
	List(ctx context.Context, filter SolicitudFilter) ([]model.Solicitud, int64, error)
	Update(ctx context.Context, s *model.Solicitud) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyTransition writes fields to the solicitud only if its stored estado
	// still equals fromEstado. Returns false (and no error) when the
	// conditional update matched nothing — the caller lost a race.
	ApplyTransition(ctx context.Context, id uuid.UUID, fromEstado string, fields map[string]interface{}) (bool, error)

	// AppendArchivos inserts attachment rows. Each insert is an atomic append;
	// concurrent uploads to the same solicitud never overwrite each other.
	AppendArchivos(ctx context.Context, archivos []model.Archivo) error

	CountByEstado(ctx context.Context) ([]EstadoCount, error)
	CountByDepartamento(ctx context.Context, estados []string) ([]DepartamentoCount, error)
	SumMontoPagado(ctx context.Context, since time.Time) (decimal.Decimal, error)
	NextFolio(ctx context.Context, day time.Time) (string, error)
}

type solicitudRepository struct {
	db *gorm.DB
}

func NewSolicitudRepository(db *gorm.DB) SolicitudRepository {
	return &solicitudRepository{db: db}
}

func (r *solicitudRepository) Create(ctx context.Context, s *model.Solicitud) error {
	return GetDB(ctx, r.db).Create(s).Error
}

func (r *solicitudRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Solicitud, error) {
	var s model.Solicitud
	if err := GetDB(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *solicitudRepository) FindByIDWithArchivos(ctx context.Context, id uuid.UUID) (*model.Solicitud, error) {
	var s model.Solicitud
	err := GetDB(ctx, r.db).
		Preload("Archivos", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_subida ASC")
		}).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *solicitudRepository) List(ctx context.Context, filter SolicitudFilter) ([]model.Solicitud, int64, error) {
	db := GetDB(ctx, r.db)

	apply := func(q *gorm.DB) *gorm.DB {
		if len(filter.Estados) > 0 {
			q = q.Where("estado IN ?", filter.Estados)
		}
		if filter.Departamento != "" {
			q = q.Where("departamento = ?", filter.Departamento)
		}
		if filter.TipoPago != "" {
			q = q.Where("tipo_pago = ?", filter.TipoPago)
		}
		if filter.SolicitanteEmail != "" {
			q = q.Where("solicitante_email = ?", filter.SolicitanteEmail)
		}
		return q
	}

	var total int64
	if err := apply(db.Model(&model.Solicitud{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	var solicitudes []model.Solicitud
	err := apply(db.Preload("Archivos")).
		Order("fecha_creacion DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&solicitudes).Error
	if err != nil {
		return nil, 0, err
	}

	return solicitudes, total, nil
}

func (r *solicitudRepository) Update(ctx context.Context, s *model.Solicitud) error {
	return GetDB(ctx, r.db).Omit("Archivos").Save(s).Error
}

func (r *solicitudRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Solicitud{}).Error
}

func (r *solicitudRepository) ApplyTransition(ctx context.Context, id uuid.UUID, fromEstado string, fields map[string]interface{}) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Solicitud{}).
		Where("id = ? AND estado = ?", id, fromEstado).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *solicitudRepository) AppendArchivos(ctx context.Context, archivos []model.Archivo) error {
	if len(archivos) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&archivos).Error
}

func (r *solicitudRepository) CountByEstado(ctx context.Context) ([]EstadoCount, error) {
	var counts []EstadoCount
	err := GetDB(ctx, r.db).Model(&model.Solicitud{}).
		Select("estado, COUNT(*) as total").
		Group("estado").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count solicitudes by estado: %w", err)
	}
	return counts, nil
}

func (r *solicitudRepository) CountByDepartamento(ctx context.Context, estados []string) ([]DepartamentoCount, error) {
	q := GetDB(ctx, r.db).Model(&model.Solicitud{}).
		Select("departamento, COUNT(*) as total")
	if len(estados) > 0 {
		q = q.Where("estado IN ?", estados)
	}
	var counts []DepartamentoCount
	if err := q.Group("departamento").Order("total DESC").Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count solicitudes by departamento: %w", err)
	}
	return counts, nil
}

func (r *solicitudRepository) SumMontoPagado(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&model.Solicitud{}).
		Select("COALESCE(SUM(monto), 0) as total").
		Where("estado = ? AND fecha_pago >= ?", model.EstadoPagada, since).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid amounts: %w", err)
	}
	return result.Total, nil
}

// NextFolio issues the next SOL-YYYYMMDD-NNNNN sequence number for the day.
// An advisory lock on the prefix keeps concurrent creations from drawing the
// same number.
func (r *solicitudRepository) NextFolio(ctx context.Context, day time.Time) (string, error) {
	db := GetDB(ctx, r.db)
	prefix := "SOL-" + day.Format("20060102") + "-"

	db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix)

	var count int64
	if err := db.Model(&model.Solicitud{}).
		Where("folio LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

// IsNotFound reports whether err is the store's record-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
