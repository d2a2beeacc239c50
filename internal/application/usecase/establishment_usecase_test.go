package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/application/usecase"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type memEstRepo struct {
	ests map[string]*entity.Establishment
}

func newMemEstRepo() *memEstRepo {
	return &memEstRepo{ests: make(map[string]*entity.Establishment)}
}

func (r *memEstRepo) Create(est *entity.Establishment) error {
	cp := *est
	r.ests[est.ID] = &cp
	return nil
}

func (r *memEstRepo) GetByID(id string) (*entity.Establishment, error) {
	e, ok := r.ests[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memEstRepo) GetByCNPJ(cnpj string) (*entity.Establishment, error) {
	for _, e := range r.ests {
		if e.CNPJ == cnpj {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memEstRepo) AddAdmin(establishmentID, uid string) error {
	e, ok := r.ests[establishmentID]
	if !ok {
		return nil
	}
	if !e.IsAdmin(uid) {
		e.Admins = append(e.Admins, uid)
	}
	return nil
}

func (r *memEstRepo) ListByAdmin(uid string) ([]*entity.Establishment, error) {
	var list []*entity.Establishment
	for _, e := range r.ests {
		if e.IsAdmin(uid) {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) GetByCPF(cpf string) (*entity.User, error)     { return nil, nil }
func (r *memUserRepo) Update(user *entity.User) error                { return nil }

func (r *memUserRepo) AddEstablishment(userID, establishmentID string) error {
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	if !u.BelongsTo(establishmentID) {
		u.Establishments = append(u.Establishments, establishmentID)
	}
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(userID, hash string) error { return nil }

func (r *memUserRepo) ListByEstablishment(establishmentID string) ([]*entity.User, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Register — CNPJ único
// ──────────────────────────────────────────────────────────────────────────────

func newEstFixture(userIDs ...string) (*usecase.EstablishmentUseCase, *memEstRepo, *memUserRepo) {
	ests := newMemEstRepo()
	users := newMemUserRepo()
	now := time.Now()
	for _, id := range userIDs {
		users.users[id] = &entity.User{ID: id, Name: "User " + id, Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	}
	return usecase.NewEstablishmentUseCase(ests, users), ests, users
}

// CNPJ inédito cria o estabelecimento com o chamador como admin.
func TestRegister_CNPJNovo_CriaEstabelecimento(t *testing.T) {
	uc, ests, users := newEstFixture("dono-1")

	out, err := uc.Register(context.Background(), "dono-1", dto.RegisterEstablishmentRequest{
		Name: "Cantina da Nona", CNPJ: "11222333000144",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.EstablishmentOutcomeNew, out.Tipo)
	require.NotEmpty(t, out.EstablishmentID)

	est := ests.ests[out.EstablishmentID]
	require.NotNil(t, est)
	assert.Equal(t, []string{"dono-1"}, est.Admins)
	assert.True(t, users.users["dono-1"].BelongsTo(out.EstablishmentID),
		"o estabelecimento deve entrar no set do usuário")
}

// Segundo usuário com o mesmo CNPJ não cria outro estabelecimento: vira admin
// adicional do existente e o resultado é "existente".
func TestRegister_CNPJExistente_AssociaComoAdmin(t *testing.T) {
	uc, ests, users := newEstFixture("dono-1", "socio-2")
	ctx := context.Background()

	first, err := uc.Register(ctx, "dono-1", dto.RegisterEstablishmentRequest{
		Name: "Cantina da Nona", CNPJ: "11222333000144",
	})
	require.NoError(t, err)

	second, err := uc.Register(ctx, "socio-2", dto.RegisterEstablishmentRequest{
		Name: "Cantina da Nona Filial", CNPJ: "11222333000144",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.EstablishmentOutcomeExisting, second.Tipo)
	assert.Equal(t, first.EstablishmentID, second.EstablishmentID, "um CNPJ mapeia para um único estabelecimento")
	assert.Len(t, ests.ests, 1)

	est := ests.ests[first.EstablishmentID]
	assert.ElementsMatch(t, []string{"dono-1", "socio-2"}, est.Admins)
	assert.True(t, users.users["socio-2"].BelongsTo(first.EstablishmentID))
}

// Repetir o cadastro com o mesmo usuário não duplica admin nem vínculo.
func TestRegister_RepetirMesmoUsuario_Idempotente(t *testing.T) {
	uc, ests, users := newEstFixture("dono-1")
	ctx := context.Background()

	in := dto.RegisterEstablishmentRequest{Name: "Bistrô Central", CNPJ: "99888777000155"}
	first, err := uc.Register(ctx, "dono-1", in)
	require.NoError(t, err)
	second, err := uc.Register(ctx, "dono-1", in)
	require.NoError(t, err)

	assert.Equal(t, dto.EstablishmentOutcomeExisting, second.Tipo)
	assert.Equal(t, []string{"dono-1"}, ests.ests[first.EstablishmentID].Admins)
	assert.Equal(t, []string{first.EstablishmentID}, users.users["dono-1"].Establishments)
}

func TestRegister_EntradaInvalida(t *testing.T) {
	uc, _, _ := newEstFixture("dono-1")
	ctx := context.Background()

	_, err := uc.Register(ctx, "dono-1", dto.RegisterEstablishmentRequest{CNPJ: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome é obrigatório")

	_, err = uc.Register(ctx, "dono-1", dto.RegisterEstablishmentRequest{Name: "Sem CNPJ"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cnpj é obrigatório")

	_, err = uc.Register(ctx, "", dto.RegisterEstablishmentRequest{Name: "X", CNPJ: "1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMine / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestListMine_SoOsAdministradosPeloChamador(t *testing.T) {
	uc, _, _ := newEstFixture("dono-1", "dono-2")
	ctx := context.Background()

	_, err := uc.Register(ctx, "dono-1", dto.RegisterEstablishmentRequest{Name: "A", CNPJ: "111"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, "dono-2", dto.RegisterEstablishmentRequest{Name: "B", CNPJ: "222"})
	require.NoError(t, err)

	out, err := uc.ListMine(ctx, "dono-1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "A", out.Items[0].Name)
}

func TestGetByID_NaoAdmin_Forbidden(t *testing.T) {
	uc, _, _ := newEstFixture("dono-1", "intruso-1")
	ctx := context.Background()

	created, err := uc.Register(ctx, "dono-1", dto.RegisterEstablishmentRequest{Name: "A", CNPJ: "111"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, "intruso-1", created.EstablishmentID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID(ctx, "dono-1", "est-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
