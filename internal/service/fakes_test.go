package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solicitudes-api/internal/model"
	"solicitudes-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes for the repository layer. They honor the same contracts the
// GORM implementations do, including the conditional-update semantics of
// ApplyTransition, so service tests exercise real concurrency behavior.

type fakeSolicitudRepo struct {
	solicitudes map[uuid.UUID]*model.Solicitud
	archivos    []model.Archivo
	forceStale  bool // make ApplyTransition report a lost race
	lastFields  map[string]interface{}
}

func newFakeSolicitudRepo() *fakeSolicitudRepo {
	return &fakeSolicitudRepo{solicitudes: map[uuid.UUID]*model.Solicitud{}}
}

func (f *fakeSolicitudRepo) Create(_ context.Context, s *model.Solicitud) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.FechaCreacion = time.Now()
	s.FechaActualizacion = s.FechaCreacion
	copia := *s
	f.solicitudes[s.ID] = &copia
	return nil
}

func (f *fakeSolicitudRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Solicitud, error) {
	s, ok := f.solicitudes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *s
	return &copia, nil
}

func (f *fakeSolicitudRepo) FindByIDWithArchivos(ctx context.Context, id uuid.UUID) (*model.Solicitud, error) {
	s, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, a := range f.archivos {
		if a.SolicitudID == id {
			s.Archivos = append(s.Archivos, a)
		}
	}
	return s, nil
}

func (f *fakeSolicitudRepo) List(_ context.Context, filter repository.SolicitudFilter) ([]model.Solicitud, int64, error) {
	var out []model.Solicitud
	for _, s := range f.solicitudes {
		if filter.SolicitanteEmail != "" && !strings.EqualFold(s.SolicitanteEmail, filter.SolicitanteEmail) {
			continue
		}
		if len(filter.Estados) > 0 {
			match := false
			for _, e := range filter.Estados {
				if s.Estado == e {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.Departamento != "" && s.Departamento != filter.Departamento {
			continue
		}
		if filter.TipoPago != "" && s.TipoPago != filter.TipoPago {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSolicitudRepo) Update(_ context.Context, s *model.Solicitud) error {
	if _, ok := f.solicitudes[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copia := *s
	f.solicitudes[s.ID] = &copia
	return nil
}

func (f *fakeSolicitudRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.solicitudes, id)
	return nil
}

func (f *fakeSolicitudRepo) ApplyTransition(_ context.Context, id uuid.UUID, fromEstado string, fields map[string]interface{}) (bool, error) {
	if f.forceStale {
		return false, nil
	}
	s, ok := f.solicitudes[id]
	if !ok || s.Estado != fromEstado {
		return false, nil
	}
	f.lastFields = fields
	if estado, ok := fields["estado"].(string); ok {
		s.Estado = estado
	}
	if email, ok := fields["aprobador_email"].(string); ok {
		s.AprobadorEmail = email
	}
	if email, ok := fields["pagador_email"].(string); ok {
		s.PagadorEmail = email
	}
	if ref, ok := fields["referencia_pago"].(string); ok {
		s.ReferenciaPago = ref
	}
	if t, ok := fields["fecha_limite_comprobante"].(time.Time); ok {
		s.FechaLimiteComprobante = &t
	}
	return true, nil
}

func (f *fakeSolicitudRepo) AppendArchivos(_ context.Context, archivos []model.Archivo) error {
	for i := range archivos {
		if archivos[i].ID == uuid.Nil {
			archivos[i].ID = uuid.New()
		}
		archivos[i].FechaSubida = time.Now()
	}
	f.archivos = append(f.archivos, archivos...)
	return nil
}

func (f *fakeSolicitudRepo) CountByEstado(_ context.Context) ([]repository.EstadoCount, error) {
	byEstado := map[string]int64{}
	for _, s := range f.solicitudes {
		byEstado[s.Estado]++
	}
	var counts []repository.EstadoCount
	for estado, total := range byEstado {
		counts = append(counts, repository.EstadoCount{Estado: estado, Total: total})
	}
	return counts, nil
}

func (f *fakeSolicitudRepo) CountByDepartamento(_ context.Context, estados []string) ([]repository.DepartamentoCount, error) {
	byDepto := map[string]int64{}
	for _, s := range f.solicitudes {
		if len(estados) > 0 {
			match := false
			for _, e := range estados {
				if s.Estado == e {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		byDepto[s.Departamento]++
	}
	var counts []repository.DepartamentoCount
	for depto, total := range byDepto {
		counts = append(counts, repository.DepartamentoCount{Departamento: depto, Total: total})
	}
	return counts, nil
}

func (f *fakeSolicitudRepo) SumMontoPagado(_ context.Context, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range f.solicitudes {
		if s.Estado == model.EstadoPagada && s.FechaPago != nil && !s.FechaPago.Before(since) {
			total = total.Add(s.Monto)
		}
	}
	return total, nil
}

func (f *fakeSolicitudRepo) NextFolio(_ context.Context, day time.Time) (string, error) {
	prefix := "SOL-" + day.Format("20060102") + "-"
	var count int64
	for _, s := range f.solicitudes {
		if strings.HasPrefix(s.Folio, prefix) {
			count++
		}
	}
	return fmt.Sprintf("%s%05d", prefix, count+1), nil
}

type fakeUserRepo struct {
	users map[string]*model.User // keyed by ID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) add(email, role string) *model.User {
	u := &model.User{ID: uuid.New(), Email: email, Nombre: email, Role: role}
	f.users[u.ID.String()] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copia := *u
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context, role string, _, _ int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(_ context.Context, entityID string, _, _ int) ([]model.AuditLog, int64, error) {
	var out []model.AuditLog
	for _, e := range f.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAuditRepo) List(_ context.Context, _, _ int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	messages [][]byte
}

func (f *fakeNotifier) Publish(message []byte) {
	f.messages = append(f.messages, message)
}

// fixture wires the fakes into real services with a seeded user per role.
type fixture struct {
	solicitudRepo *fakeSolicitudRepo
	userRepo      *fakeUserRepo
	auditRepo     *fakeAuditRepo
	notifier      *fakeNotifier

	solicitudes SolicitudService
	workflow    WorkflowService

	solicitante *model.User
	aprobador   *model.User
	pagador     *model.User
	admin       *model.User
}

func newFixture() *fixture {
	f := &fixture{
		solicitudRepo: newFakeSolicitudRepo(),
		userRepo:      newFakeUserRepo(),
		auditRepo:     &fakeAuditRepo{},
		notifier:      &fakeNotifier{},
	}
	f.solicitante = f.userRepo.add("ana@empresa.mx", model.RoleSolicitante)
	f.aprobador = f.userRepo.add("luis@empresa.mx", model.RoleAprobador)
	f.pagador = f.userRepo.add("tesoreria@empresa.mx", model.RolePagador)
	f.admin = f.userRepo.add("admin@empresa.mx", model.RoleAdmin)

	tx := fakeTxManager{}
	f.solicitudes = NewSolicitudService(f.solicitudRepo, f.userRepo, f.auditRepo, tx)
	f.workflow = NewWorkflowService(f.solicitudRepo, f.userRepo, f.auditRepo, tx, f.notifier)
	return f
}

// seedSolicitud inserts a solicitud directly in the given status, owned by the
// fixture's solicitante.
func (f *fixture) seedSolicitud(estado string) *model.Solicitud {
	s := &model.Solicitud{
		Folio:               fmt.Sprintf("SOL-20260105-%05d", len(f.solicitudRepo.solicitudes)+1),
		Departamento:        "Finanzas",
		Monto:               decimal.NewFromInt(1500),
		TipoMoneda:          "Peso Mexicano (MXN)",
		BancoDestino:        "Banorte",
		CuentaDestino:       "002010077777777771",
		EsClabe:             true,
		NombreBeneficiario:  "Proveedor SA",
		NombreEmpresa:       "Proveedor SA de CV",
		TipoPago:            "Proveedores",
		ConceptoPago:        "Pagos a Terceros",
		FechaLimitePago:     time.Now().AddDate(0, 0, 15),
		DescripcionTipoPago: "Pago de factura mensual de insumos",
		Estado:              estado,
		SolicitanteEmail:    f.solicitante.Email,
	}
	_ = f.solicitudRepo.Create(context.Background(), s)
	return s
}
