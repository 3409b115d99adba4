package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-tracker/internal/application/auth"
	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain"
	pkgjwt "github.com/jhoicas/stock-tracker/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newUseCase(t *testing.T, secret string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3creta"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "stock-tracker-test"},
		auth.Credentials{Username: "admin", PasswordHash: string(hash)},
	)
}

func TestIssueToken_CredencialesValidas(t *testing.T) {
	uc := newUseCase(t, testSecret)
	require.True(t, uc.Enabled())

	out, err := uc.IssueToken(dto.TokenRequest{Username: "admin", Password: "s3creta"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, 1800, out.ExpiresIn)

	subject, err := pkgjwt.Parse(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestIssueToken_Rechazos(t *testing.T) {
	uc := newUseCase(t, testSecret)

	_, err := uc.IssueToken(dto.TokenRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.IssueToken(dto.TokenRequest{Username: "root", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.IssueToken(dto.TokenRequest{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssueToken_AuthDeshabilitada(t *testing.T) {
	uc := newUseCase(t, "")
	assert.False(t, uc.Enabled())
	_, err := uc.IssueToken(dto.TokenRequest{Username: "admin", Password: "s3creta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
