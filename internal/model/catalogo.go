package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria groups products.
type Categoria struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Nombre      string    `json:"nombre" gorm:"size:100;not null"`
	Descripcion *string   `json:"descripcion" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Categoria) TableName() string {
	return "categorias"
}

// Marca is a product brand.
type Marca struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Nombre    string    `json:"nombre" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Marca) TableName() string {
	return "marcas"
}

// Garantia is a brand warranty; Cobertura is expressed in months.
type Garantia struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Cobertura int       `json:"cobertura" gorm:"not null"`
	MarcaID   uint      `json:"marca_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Marca *Marca `json:"marca,omitempty" gorm:"foreignKey:MarcaID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (Garantia) TableName() string {
	return "garantias"
}

// Producto is a catalog item. Precio serializes as a decimal string.
type Producto struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Nombre      string          `json:"nombre" gorm:"size:200;not null;index"`
	Descripcion string          `json:"descripcion" gorm:"type:text;not null"`
	Precio      decimal.Decimal `json:"precio" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	ImageURL    *string         `json:"image_url" gorm:"column:image_url;size:500"`
	CategoriaID uint            `json:"categoria_id" gorm:"not null;index"`
	MarcaID     uint            `json:"marca_id" gorm:"not null;index"`
	GarantiaID  *uint           `json:"garantia_id" gorm:"index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Categoria *Categoria `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
	Marca     *Marca     `json:"marca,omitempty" gorm:"foreignKey:MarcaID;constraint:OnDelete:CASCADE"`
	Garantia  *Garantia  `json:"garantia,omitempty" gorm:"foreignKey:GarantiaID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (Producto) TableName() string {
	return "productos"
}
