package repository

import (
	"context"

	"gestorcn/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByNombre(ctx context.Context, nombre string) (*model.Usuario, error)
	FindByID(ctx context.Context, id int) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error

	// Used inside transactions — callers must pass the tx instance.
	// CountAdminsTx counts admins other than excludeID so the last-admin
	// guard can run atomically with the delete/demotion.
	CountAdminsTx(tx *gorm.DB, excludeID int) (int64, error)
	DeleteTx(tx *gorm.DB, id int) error
	UpdateTx(tx *gorm.DB, u *model.Usuario) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return classify(r.db.WithContext(ctx).Create(u).Error)
}

func (r *usuarioRepo) FindByNombre(ctx context.Context, nombre string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("NombreUsuario = ?", nombre).First(&u).Error
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id int) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("NombreUsuario ASC").Find(&users).Error
	return users, classify(err)
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return classify(r.db.WithContext(ctx).Save(u).Error)
}

func (r *usuarioRepo) CountAdminsTx(tx *gorm.DB, excludeID int) (int64, error) {
	var n int64
	err := tx.Model(&model.Usuario{}).
		Where("RolAdmin = ? AND CodigoUsuario <> ?", true, excludeID).
		Count(&n).Error
	return n, classify(err)
}

func (r *usuarioRepo) DeleteTx(tx *gorm.DB, id int) error {
	return classify(tx.Delete(&model.Usuario{}, id).Error)
}

func (r *usuarioRepo) UpdateTx(tx *gorm.DB, u *model.Usuario) error {
	return classify(tx.Save(u).Error)
}

func (r *usuarioRepo) DB() *gorm.DB { return r.db }
