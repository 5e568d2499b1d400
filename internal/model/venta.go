package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetodoPago is a payment method a sale can be settled with.
type MetodoPago struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Nombre      string    `json:"nombre" gorm:"size:100;not null"`
	Descripcion *string   `json:"descripcion" gorm:"type:text"`
	Estado      bool      `json:"estado" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (MetodoPago) TableName() string {
	return "metodos_pago"
}

// NotaVenta is a sale receipt. Estado false means the sale was annulled.
type NotaVenta struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Estado       bool            `json:"estado" gorm:"not null;index"`
	MetodoPagoID uint            `json:"metodo_pago_id" gorm:"not null;index"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	UsuarioID    uint            `json:"usuario_id" gorm:"not null;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	MetodoPago *MetodoPago    `json:"metodo_pago,omitempty" gorm:"foreignKey:MetodoPagoID"`
	Usuario    *Usuario       `json:"-" gorm:"foreignKey:UsuarioID"`
	Detalles   []DetalleVenta `json:"detalles" gorm:"foreignKey:NotaVentaID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the default table name.
func (NotaVenta) TableName() string {
	return "notas_venta"
}

// DetalleVenta is one line of a NotaVenta. PrecioUnitario is the product price at sale time.
type DetalleVenta struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	NotaVentaID    uint            `json:"nota_venta_id" gorm:"not null;index"`
	ProductoID     uint            `json:"producto_id" gorm:"not null;index"`
	Cantidad       uint            `json:"cantidad" gorm:"not null"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" gorm:"type:decimal(10,2);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Producto *Producto `json:"producto,omitempty" gorm:"foreignKey:ProductoID"`
}

// TableName overrides the default table name.
func (DetalleVenta) TableName() string {
	return "detalles_venta"
}

// Subtotal is Cantidad × PrecioUnitario.
func (d DetalleVenta) Subtotal() decimal.Decimal {
	return d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&Usuario{},
		&Cliente{},
		&Administrador{},
		&Categoria{},
		&Marca{},
		&Garantia{},
		&Producto{},
		&MetodoPago{},
		&NotaVenta{},
		&DetalleVenta{},
	}
}
