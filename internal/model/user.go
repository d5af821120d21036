package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflow roles. Admin implicitly satisfies every role gate.
const (
	RoleAdmin       = "admin"
	RoleSolicitante = "solicitante"
	RoleAprobador   = "aprobador"
	RolePagador     = "pagador"
)

// RolValido reports whether role is one of the four workflow roles.
func RolValido(role string) bool {
	switch role {
	case RoleAdmin, RoleSolicitante, RoleAprobador, RolePagador:
		return true
	}
	return false
}

// User represents the central user entity for logic and database structure
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nombre       string         `gorm:"type:varchar(100);not null" json:"nombre"`
	Apellidos    string         `gorm:"type:varchar(100)" json:"apellidos"`
	Departamento string         `gorm:"type:varchar(100)" json:"departamento"`
	Password     string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role         string         `gorm:"type:varchar(50);not null;index" json:"role"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}
