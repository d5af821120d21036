package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCrearSolicitud      = "CREAR_SOLICITUD"
	ActionActualizarSolicitud = "ACTUALIZAR_SOLICITUD"
	ActionEliminarSolicitud   = "ELIMINAR_SOLICITUD"
	ActionEnviarSolicitud     = "ENVIAR_SOLICITUD"
	ActionIniciarRevision     = "INICIAR_REVISION"
	ActionAprobarSolicitud    = "APROBAR_SOLICITUD"
	ActionRechazarSolicitud   = "RECHAZAR_SOLICITUD"
	ActionMarcarPagada        = "MARCAR_PAGADA"
	ActionSubirAdjuntos       = "SUBIR_ADJUNTOS"
	ActionSubirComprobantes   = "SUBIR_COMPROBANTES"
	ActionCrearUsuario        = "CREAR_USUARIO"
	ActionActualizarUsuario   = "ACTUALIZAR_USUARIO"
	ActionEliminarUsuario     = "ELIMINAR_USUARIO"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	ActorEmail string     `gorm:"type:varchar(255);index" json:"actor_email"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/folio)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
