package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth() (*auth.AuthUseCase, *memory.UserRepo) {
	repo := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}), repo
}

func TestRegisterUser_NivelPorDefectoYHash(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: " Ana ", Email: "Ana@Estoque.dev", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "ana@estoque.dev", out.Email)
	assert.Equal(t, int(domain.LevelReadOnly), out.Level)

	stored, err := repo.GetByEmail(ctx, "ana@estoque.dev")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "segredo", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_Duplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	in := dto.RegisterRequest{Name: "Ana", Email: "ana@estoque.dev", Password: "segredo"}

	_, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)

	in.Email = "ANA@estoque.dev"
	_, err = uc.RegisterUser(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterUser_EntradaInvalida(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	for _, in := range []dto.RegisterRequest{
		{Name: "", Email: "a@x.dev", Password: "p"},
		{Name: "A", Email: "", Password: "p"},
		{Name: "A", Email: "a@x.dev", Password: ""},
		{Name: "A", Email: "no-es-email", Password: "p"},
	} {
		_, err := uc.RegisterUser(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestCreateUser_NivelInvalido(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.CreateUser(context.Background(), dto.RegisterRequest{Name: "A", Email: "a@x.dev", Password: "p"}, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_OKDevuelveTokenConIdentidad(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@estoque.dev", Password: "segredo"}, domain.LevelElevated)
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@estoque.dev", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, "Login bem-sucedido!", out.Message)
	assert.Equal(t, dto.LoginUser{Name: "Ana", Email: "ana@estoque.dev"}, out.User)

	id, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@estoque.dev", id.Email)
	assert.Equal(t, 3, id.Level)
}

func TestLogin_CredencialesInvalidasIndistinguibles(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@estoque.dev", Password: "segredo"})
	require.NoError(t, err)

	_, errWrong := uc.Login(ctx, dto.LoginRequest{Email: "ana@estoque.dev", Password: "errada"})
	_, errMissing := uc.Login(ctx, dto.LoginRequest{Email: "nadie@estoque.dev", Password: "segredo"})

	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errMissing, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errMissing.Error())
}
