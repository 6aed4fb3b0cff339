package service

import (
	"context"
	"errors"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims is the JWT payload. Type distinguishes access from refresh tokens
// so a refresh token can never authenticate a request directly.
type Claims struct {
	Rol  string `json:"rol"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	// ValidateAccessToken parses and verifies an access token.
	ValidateAccessToken(tokenStr string) (*Claims, error)
}

type authService struct {
	usuarios   repository.UsuarioRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(usuarios repository.UsuarioRepository, secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{
		usuarios:   usuarios,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.usuarios.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("usuario o contraseña incorrectos")
		}
		return nil, err
	}
	if !u.Activo {
		return nil, apierror.Unauthorized("el usuario está inactivo")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierror.Unauthorized("usuario o contraseña incorrectos")
	}
	return s.emitirTokens(u)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := s.parse(req.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, apierror.Unauthorized("refresh token inválido o expirado")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierror.Unauthorized("refresh token inválido o expirado")
	}
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Unauthorized("refresh token inválido o expirado")
		}
		return nil, err
	}
	if !u.Activo {
		return nil, apierror.Unauthorized("el usuario está inactivo")
	}
	return s.emitirTokens(u)
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.usuarios.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("el nombre de usuario ya está en uso")
		}
		return nil, err
	}
	resp := toUsuarioResponse(u)
	return &resp, nil
}

func (s *authService) ValidateAccessToken(tokenStr string) (*Claims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil || claims.Type != "access" {
		return nil, apierror.Unauthorized("token inválido o expirado")
	}
	return claims, nil
}

func (s *authService) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apierror.Unauthorized("token inválido o expirado")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apierror.Unauthorized("token inválido o expirado")
	}
	return claims, nil
}

func (s *authService) emitirTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	ahora := s.now()
	access, err := s.firmar(u, "access", ahora, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.firmar(u, "refresh", ahora, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User:         toUsuarioResponse(u),
	}, nil
}

func (s *authService) firmar(u *model.Usuario, tipo string, ahora time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Rol:  u.Rol,
		Type: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(ahora),
			ExpiresAt: jwt.NewNumericDate(ahora.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toUsuarioResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Nombre:   u.Nombre,
		Email:    u.Email,
		Rol:      u.Rol,
		Activo:   u.Activo,
	}
}
