package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gestorcn/internal/config"
	"gestorcn/internal/dto"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id int, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	EliminarUsuario(ctx context.Context, id int) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByNombre(ctx, req.NombreUsuario)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

// Refresh validates a refresh token and issues a fresh token pair for the
// user it names. The user must still exist: deleted accounts cannot renew.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("refresh token invalido o expirado")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("refresh token invalido o expirado")
	}

	user, err := s.repo.FindByID(ctx, int(userID))
	if err != nil {
		return nil, errors.New("refresh token invalido o expirado")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *usuarioToResponse(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		NombreUsuario: req.NombreUsuario,
		PasswordHash:  string(hash),
		RolAdmin:      req.RolAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("registrar usuario: %w", err)
	}
	return usuarioToResponse(user), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, 0, len(users))
	for i := range users {
		resp = append(resp, *usuarioToResponse(&users[i]))
	}
	return resp, nil
}

// ActualizarUsuario changes the password and/or the admin flag. Demoting a
// user runs under the same last-admin guard as deletion: the system must
// never be left with zero administrators.
func (s *authService) ActualizarUsuario(ctx context.Context, id int, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("actualizar usuario %d: %w", id, err)
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if req.RolAdmin != nil {
			if user.RolAdmin && !*req.RolAdmin {
				otros, err := s.repo.CountAdminsTx(tx, id)
				if err != nil {
					return err
				}
				if otros == 0 {
					return ErrUltimoAdmin
				}
			}
			user.RolAdmin = *req.RolAdmin
		}
		return s.repo.UpdateTx(tx, user)
	})
	if txErr != nil {
		return nil, fmt.Errorf("actualizar usuario %d: %w", id, txErr)
	}
	return usuarioToResponse(user), nil
}

func (s *authService) EliminarUsuario(ctx context.Context, id int) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("eliminar usuario %d: %w", id, err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if user.RolAdmin {
			otros, err := s.repo.CountAdminsTx(tx, id)
			if err != nil {
				return err
			}
			if otros == 0 {
				return ErrUltimoAdmin
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return fmt.Errorf("eliminar usuario %d: %w", id, txErr)
	}
	return nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        user.CodigoUsuario,
		"nombre_usuario": user.NombreUsuario,
		"rol_admin":      user.RolAdmin,
		"exp":            time.Now().Add(duration).Unix(),
		"iat":            time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		CodigoUsuario: u.CodigoUsuario,
		NombreUsuario: u.NombreUsuario,
		RolAdmin:      u.RolAdmin,
	}
}
