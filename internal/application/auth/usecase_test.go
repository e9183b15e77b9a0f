package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueredo/invoicepay/internal/application/auth"
	"github.com/mfigueredo/invoicepay/internal/application/dto"
	"github.com/mfigueredo/invoicepay/internal/domain"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	pkgjwt "github.com/mfigueredo/invoicepay/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// memUserRepo repo de usuarios en memoria, indexado por email.
type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func newAuthUC(repo *memUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "invoicepay-test",
	})
}

func TestRegisterYLogin_RoundTrip(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)

	user, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "a@x.com", Password: "super-secreta", Name: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Empty(t, user.OrganizationID)

	out, err := uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "super-secreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	// El token lleva la identidad que resuelve el scope
	userID, orgID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Empty(t, orgID)
}

func TestLogin_TokenConOrganizacion(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "b@x.com", Password: "super-secreta", Name: "Bob", OrganizationID: "org-1",
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "b@x.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, orgID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "org-1", orgID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@x.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "a@x.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newMemUserRepo()
	uc := newAuthUC(repo)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@x.com", Password: "super-secreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@x.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_NombreVacioUsaEmail(t *testing.T) {
	uc := newAuthUC(newMemUserRepo())
	user, err := uc.RegisterUser(dto.RegisterRequest{Email: "c@x.com", Password: "super-secreta"})
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", user.Name)
}
