package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado enum constants — canonical lifecycle vocabulary for a solicitud de pago.
const (
	EstadoBorrador   = "borrador"
	EstadoEnviada    = "enviada"
	EstadoEnRevision = "en_revision"
	EstadoAprobada   = "aprobada"
	EstadoRechazada  = "rechazada"
	EstadoPagada     = "pagada"
	EstadoCancelada  = "cancelada"
)

// EstadoValido reports whether e is a known lifecycle status.
func EstadoValido(e string) bool {
	switch e {
	case EstadoBorrador, EstadoEnviada, EstadoEnRevision, EstadoAprobada,
		EstadoRechazada, EstadoPagada, EstadoCancelada:
		return true
	}
	return false
}

// EstadoTerminal reports whether e admits no further transitions.
func EstadoTerminal(e string) bool {
	return e == EstadoPagada || e == EstadoCancelada
}

// Catalog values accepted on intake forms. Stored as plain strings; the service
// validates membership on create/update.
var (
	Departamentos = []string{
		"Rectoría", "Dirección Académica", "Dirección Administrativa", "Finanzas",
		"Recursos Humanos", "Sistemas y TI", "Mantenimiento", "Biblioteca",
		"Servicios Escolares", "Vinculación",
	}
	TiposMoneda = []string{
		"Peso Mexicano (MXN)", "Peso Argentino (ARS)", "Peso Colombiano (COP)",
		"Euro (EUR)", "Dólar Estadounidense (USD)", "Dólar Canadiense (CAD)",
	}
	BancosDestino = []string{
		"BBVA México", "Citibanamex", "Santander México", "Banorte", "HSBC México",
		"Scotiabank", "Banco Inbursa", "Banco Azteca", "Banco del Bajío", "Banco Afirme",
	}
	TiposPago = []string{
		"Proveedores", "Póliza - Seguro", "Donativos", "Operativos", "Fiscales y Legales",
	}
	ConceptosPago = []string{"Pagos a Terceros", "Donativos", "Otros"}
)

// ConceptoOtros is the catalog value that requires free-form concept text.
const ConceptoOtros = "Otros"

// Solicitud is the central payment-request entity. Columns keep the Spanish
// vocabulary of the persisted record so historical data stays readable.
type Solicitud struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Folio string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"folio"`

	// Intake fields
	Departamento        string          `gorm:"type:varchar(100);not null;index" json:"departamento"`
	Monto               decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"monto"`
	TipoMoneda          string          `gorm:"type:varchar(50);not null" json:"tipo_moneda"`
	BancoDestino        string          `gorm:"type:varchar(100);not null" json:"banco_destino"`
	CuentaDestino       string          `gorm:"type:varchar(18);not null" json:"cuenta_destino"`
	EsClabe             bool            `gorm:"default:true" json:"es_clabe"`
	NombreBeneficiario  string          `gorm:"type:varchar(100);not null" json:"nombre_beneficiario"`
	NombreEmpresa       string          `gorm:"type:varchar(150);not null" json:"nombre_empresa"`
	SegundoBeneficiario *string         `gorm:"type:varchar(100)" json:"segundo_beneficiario"`
	TipoPago            string          `gorm:"type:varchar(50);not null;index" json:"tipo_pago"`
	ConceptoPago        string          `gorm:"type:varchar(50);not null" json:"concepto_pago"`
	ConceptoOtros       *string         `gorm:"type:text" json:"concepto_otros"`
	FechaLimitePago     time.Time       `gorm:"not null" json:"fecha_limite_pago"`
	DescripcionTipoPago string          `gorm:"type:text;not null" json:"descripcion_tipo_pago"`

	// Lifecycle
	Estado                 string     `gorm:"type:varchar(20);not null;default:'borrador';index" json:"estado"`
	SolicitanteEmail       string     `gorm:"type:varchar(255);not null;index" json:"solicitante_email"`
	ComentariosSolicitante string     `gorm:"type:text" json:"comentarios_solicitante"`
	FechaEnvio             *time.Time `json:"fecha_envio"`

	// Approval (set only once the request leaves enviada/en_revision)
	AprobadorEmail       string     `gorm:"type:varchar(255)" json:"aprobador_email"`
	ComentariosAprobador string     `gorm:"type:text" json:"comentarios_aprobador"`
	FechaAprobacion      *time.Time `json:"fecha_aprobacion"`
	FechaRechazo         *time.Time `json:"fecha_rechazo"`

	// Payment (set only once pagada)
	PagadorEmail           string     `gorm:"type:varchar(255)" json:"pagador_email"`
	ReferenciaPago         string     `gorm:"type:varchar(100)" json:"referencia_pago"`
	ComentariosPagador     string     `gorm:"type:text" json:"comentarios_pagador"`
	FechaPago              *time.Time `json:"fecha_pago"`
	FechaLimiteComprobante *time.Time `json:"fecha_limite_comprobante"`

	Archivos []Archivo `gorm:"foreignKey:SolicitudID;constraint:OnDelete:CASCADE" json:"archivos,omitempty"`

	FechaCreacion      time.Time `gorm:"autoCreateTime" json:"fecha_creacion"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fecha_actualizacion"`
}

// Archivo kinds: request documents vs proof-of-payment documents.
const (
	ArchivoAdjunto     = "adjunto"
	ArchivoComprobante = "comprobante"
)

// Archivo is one uploaded file attached to a solicitud. Rows are append-only,
// so concurrent uploads to the same solicitud never clobber each other.
type Archivo struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SolicitudID   uuid.UUID `gorm:"type:uuid;not null;index" json:"solicitud_id"`
	Tipo          string    `gorm:"type:varchar(20);not null;index" json:"tipo"` // adjunto, comprobante
	NombreArchivo string    `gorm:"type:varchar(255);not null" json:"nombre_archivo"`
	TipoContenido string    `gorm:"type:varchar(100)" json:"tipo_contenido"`
	Tamano        int64     `gorm:"not null" json:"tamano"`
	RutaArchivo   string    `gorm:"type:text;not null" json:"ruta_archivo"`
	SubidoPor     string    `gorm:"type:varchar(255)" json:"subido_por"`
	FechaSubida   time.Time `gorm:"autoCreateTime" json:"fecha_subida"`
}
