package model

import "time"

// Role is the tag that says which extension, if any, a Usuario owns.
type Role string

const (
	RoleUsuario Role = "usuario"
	RoleCliente Role = "cliente"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUsuario, RoleCliente, RoleAdmin:
		return true
	}
	return false
}

// Usuario is the root identity. Rol is kept in sync with the extension rows:
// RoleCliente owns exactly a Cliente, RoleAdmin exactly an Administrador, RoleUsuario neither.
type Usuario struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Correo    string    `json:"correo" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:128;not null"` // bcrypt hash, never serialized
	Rol       Role      `json:"rol" gorm:"type:varchar(20);not null;default:'usuario';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Cliente       *Cliente       `json:"cliente,omitempty" gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE"`
	Administrador *Administrador `json:"administrador,omitempty" gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (Usuario) TableName() string {
	return "usuarios"
}

// Cliente extends a Usuario with customer profile data. Its primary key is the Usuario id.
type Cliente struct {
	ID              uint    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Nombres         string  `json:"nombres" gorm:"size:100;not null"`
	ApellidoPaterno string  `json:"apellidoPaterno" gorm:"column:apellido_paterno;size:100;not null"`
	ApellidoMaterno string  `json:"apellidoMaterno" gorm:"column:apellido_materno;size:100;not null"`
	CI              string  `json:"ci" gorm:"column:ci;size:20;not null"`
	Telefono        *string `json:"telefono" gorm:"size:20"`
}

// TableName overrides the default table name.
func (Cliente) TableName() string {
	return "clientes"
}

// Administrador extends a Usuario with a display name. Its primary key is the Usuario id.
type Administrador struct {
	ID     uint   `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Nombre string `json:"nombre" gorm:"size:100"`
}

// TableName overrides the default table name.
func (Administrador) TableName() string {
	return "administradores"
}
