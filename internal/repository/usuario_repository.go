package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "tienda/internal/errors"
	"tienda/internal/model"
)

// UsuarioRepository persists usuarios together with their role extension.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByEmail(ctx context.Context, correo string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	ListByRole(ctx context.Context, rol model.Role) ([]model.Usuario, error)
	Update(ctx context.Context, usuario *model.Usuario) error
	Delete(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UsuarioRepository) error) error
}

type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository builds a GORM-backed repository.
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

func usuarioNotFound(id any) func() error {
	return func() error { return apperrors.NewNotFound("Usuario", id) }
}

// Create inserts the usuario and, when set, its Cliente or Administrador row
// in one transaction. The extension takes the usuario id as its primary key.
func (r *usuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(usuario).Error; err != nil {
			return err
		}
		if usuario.Cliente != nil {
			usuario.Cliente.ID = usuario.ID
			if err := tx.Create(usuario.Cliente).Error; err != nil {
				return err
			}
		}
		if usuario.Administrador != nil {
			usuario.Administrador.ID = usuario.ID
			if err := tx.Create(usuario.Administrador).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, nil)
}

// FindByID loads a usuario with its role extension.
func (r *usuarioRepository) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	return findByID[model.Usuario](ctx, r.db, id, usuarioNotFound(id), "Cliente", "Administrador")
}

// FindByEmail loads a usuario by exact correo.
func (r *usuarioRepository) FindByEmail(ctx context.Context, correo string) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Administrador").
		Where("correo = ?", correo).
		First(&usuario).Error
	if err != nil {
		return nil, translate(err, usuarioNotFound(correo))
	}
	return &usuario, nil
}

func (r *usuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	return listAll[model.Usuario](ctx, r.db, "Cliente", "Administrador")
}

func (r *usuarioRepository) ListByRole(ctx context.Context, rol model.Role) ([]model.Usuario, error) {
	usuarios := make([]model.Usuario, 0)
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Administrador").
		Where("rol = ?", rol).
		Order("id").
		Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	return usuarios, nil
}

// Update saves the usuario columns and its loaded extension.
func (r *usuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(usuario).
			Select("correo", "password", "rol", "updated_at").
			Updates(usuario)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usuarioNotFound(usuario.ID)()
		}
		if usuario.Cliente != nil {
			usuario.Cliente.ID = usuario.ID
			if err := tx.Save(usuario.Cliente).Error; err != nil {
				return err
			}
		}
		if usuario.Administrador != nil {
			usuario.Administrador.ID = usuario.ID
			if err := tx.Save(usuario.Administrador).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err, nil)
}

// Delete removes the usuario and both possible extension rows.
func (r *usuarioRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Cliente{}, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Administrador{}, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Usuario{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usuarioNotFound(id)()
		}
		return nil
	})
	return translate(err, nil)
}

// WithTransaction executes a function within a database transaction.
func (r *usuarioRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UsuarioRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &usuarioRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
