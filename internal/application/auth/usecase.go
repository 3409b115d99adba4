package auth

import (
	"crypto/subtle"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/application/validation"
	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials operador autorizado a escribir en el inventario (hash bcrypt).
type Credentials struct {
	Username     string
	PasswordHash string
}

// AuthUseCase emite tokens Bearer para las rutas de escritura.
// Sin Secret la autenticación queda deshabilitada.
type AuthUseCase struct {
	jwtCfg   JWTConfig
	creds    Credentials
	validate *validator.Validate
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig, creds Credentials) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg, creds: creds, validate: validation.New()}
}

// Enabled indica si las rutas de escritura exigen token.
func (uc *AuthUseCase) Enabled() bool { return uc.jwtCfg.Secret != "" }

// Secret devuelve la clave de firma para el middleware.
func (uc *AuthUseCase) Secret() string { return uc.jwtCfg.Secret }

// IssueToken verifica usuario/password y genera el JWT.
func (uc *AuthUseCase) IssueToken(in dto.TokenRequest) (*dto.TokenResponse, error) {
	if err := validation.Struct(uc.validate, in); err != nil {
		return nil, err
	}
	if !uc.Enabled() || uc.creds.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.creds.Username)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.creds.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
