package collaborator_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquezen/estoque-api/internal/application/collaborator"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users  map[string]*entity.User
	writes int // mutações aplicadas (Create/Update/AddEstablishment/senha)
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(user *entity.User) error {
	r.writes++
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

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByCPF(cpf string) (*entity.User, error) {
	if cpf == "" {
		return nil, nil
	}
	for _, u := range r.users {
		if u.CPF == cpf {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	r.writes++
	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	cp.Establishments = existing.Establishments
	cp.PasswordHash = existing.PasswordHash
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) AddEstablishment(userID, establishmentID string) error {
	r.writes++
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	if !u.BelongsTo(establishmentID) {
		u.Establishments = append(u.Establishments, establishmentID)
	}
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(userID, hash string) error {
	r.writes++
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memUserRepo) ListByEstablishment(establishmentID string) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		if u.BelongsTo(establishmentID) {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memEstRepo struct {
	ests map[string]*entity.Establishment
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

type memLinkRepo struct {
	links []*entity.NutritionistLink
}

func (r *memLinkRepo) Get(nutritionistID, establishmentID string) (*entity.NutritionistLink, error) {
	for _, l := range r.links {
		if l.NutritionistID == nutritionistID && l.EstablishmentID == establishmentID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLinkRepo) Create(link *entity.NutritionistLink) error {
	if existing, _ := r.Get(link.NutritionistID, link.EstablishmentID); existing != nil {
		return nil
	}
	cp := *link
	cp.ID = uuid.New().String()
	cp.CreatedAt = time.Now()
	r.links = append(r.links, &cp)
	return nil
}

func (r *memLinkRepo) ListByNutritionist(nutritionistID string) ([]*entity.NutritionistLink, error) {
	var list []*entity.NutritionistLink
	for _, l := range r.links {
		if l.NutritionistID == nutritionistID {
			cp := *l
			list = append(list, &cp)
		}
	}
	return list, nil
}

// fakeIdentity registra as senhas atribuídas para inspeção nos testes.
type fakeIdentity struct {
	userRepo  *memUserRepo
	passwords map[string]string
}

func (f *fakeIdentity) FindUIDByEmail(email string) (string, error) {
	u, _ := f.userRepo.GetByEmail(email)
	if u == nil {
		return "", nil
	}
	return u.ID, nil
}

func (f *fakeIdentity) CreateIdentity(email, password, displayName string) (string, error) {
	if existing, _ := f.userRepo.GetByEmail(email); existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}
	uid := uuid.New().String()
	now := time.Now()
	if err := f.userRepo.Create(&entity.User{
		ID: uid, Name: displayName, Email: email, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		return "", err
	}
	f.passwords[uid] = password
	return uid, nil
}

func (f *fakeIdentity) SetPassword(uid, password string) error {
	if _, ok := f.userRepo.users[uid]; !ok {
		return domain.ErrUserNotFound
	}
	f.passwords[uid] = password
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID = "admin-1"
	estID   = "est-100"
)

type fixture struct {
	uc       *collaborator.UseCase
	users    *memUserRepo
	ests     *memEstRepo
	links    *memLinkRepo
	identity *fakeIdentity
}

func newFixture(policy collaborator.Policy) *fixture {
	users := newMemUserRepo()
	ests := &memEstRepo{ests: make(map[string]*entity.Establishment)}
	links := &memLinkRepo{}
	identity := &fakeIdentity{userRepo: users, passwords: make(map[string]string)}

	now := time.Now()
	users.users[adminID] = &entity.User{
		ID: adminID, Name: "Admin Chef", Email: "chef@cozinha.com",
		Role: entity.RoleAdmin, Establishments: []string{estID},
		CreatedAt: now, UpdatedAt: now,
	}
	ests.ests[estID] = &entity.Establishment{
		ID: estID, Name: "Restaurante Sabor", CNPJ: "11222333000144",
		Admins: []string{adminID}, CreatedAt: now,
	}
	users.writes = 0

	return &fixture{
		uc:       collaborator.NewUseCase(users, ests, links, identity, policy),
		users:    users,
		ests:     ests,
		links:    links,
		identity: identity,
	}
}

func colaboradorInput() collaborator.CreateInput {
	return collaborator.CreateInput{
		Name:            "João Cozinheiro",
		Email:           "joao@cozinha.com",
		Phone:           "11999990000",
		EstablishmentID: estID,
		Role:            entity.RoleColaborador,
	}
}

func nutricionistaInput() collaborator.CreateInput {
	return collaborator.CreateInput{
		Name:            "Dra. Ana Nutri",
		CPF:             "12345678901",
		Email:           "ana@nutri.com",
		EstablishmentID: estID,
		Role:            entity.RoleNutricionista,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — provisionamento
// ──────────────────────────────────────────────────────────────────────────────

// Colaborador novo: a identidade é criada com a senha padrão e o
// estabelecimento entra no set do usuário.
func TestCreate_ColaboradorNovo_CriaComSenhaPadrao(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})

	uid, err := f.uc.Create(context.Background(), adminID, colaboradorInput())
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	user := f.users.users[uid]
	require.NotNil(t, user)
	assert.Equal(t, "João Cozinheiro", user.Name)
	assert.Equal(t, entity.RoleColaborador, user.Role)
	assert.True(t, user.BelongsTo(estID))
	assert.Equal(t, "123456", f.identity.passwords[uid], "conta nova deve nascer com a senha padrão")
}

// Repetir o provisionamento devolve o mesmo uid e não duplica o vínculo (P4).
func TestCreate_RepetirChamada_Idempotente(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})
	ctx := context.Background()

	uid1, err := f.uc.Create(ctx, adminID, colaboradorInput())
	require.NoError(t, err)
	uid2, err := f.uc.Create(ctx, adminID, colaboradorInput())
	require.NoError(t, err)

	assert.Equal(t, uid1, uid2, "mesmo email deve resolver para o mesmo uid")
	user := f.users.users[uid1]
	assert.Equal(t, []string{estID}, user.Establishments, "vínculo não pode duplicar")
}

// Nutricionista resolve primeiro por CPF, mesmo quando o email informado é
// outro: o cadastro existente é reaproveitado.
func TestCreate_NutricionistaResolvidaPorCPF(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})
	ctx := context.Background()

	uid1, err := f.uc.Create(ctx, adminID, nutricionistaInput())
	require.NoError(t, err)

	in := nutricionistaInput()
	in.Email = "ana.outro@nutri.com"
	uid2, err := f.uc.Create(ctx, adminID, in)
	require.NoError(t, err)

	assert.Equal(t, uid1, uid2, "o CPF é a chave durável da nutricionista")
	links, _ := f.links.ListByNutritionist(uid1)
	assert.Len(t, links, 1, "o vínculo do par deve ser único")
}

// O vínculo da nutricionista vive na tabela de vínculos, não no set de
// estabelecimentos do usuário.
func TestCreate_NutricionistaVinculaPelaTabela(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})

	uid, err := f.uc.Create(context.Background(), adminID, nutricionistaInput())
	require.NoError(t, err)

	links, _ := f.links.ListByNutritionist(uid)
	require.Len(t, links, 1)
	assert.Equal(t, estID, links[0].EstablishmentID)
	assert.True(t, links[0].Active)
	assert.False(t, f.users.users[uid].BelongsTo(estID))
}

func TestCreate_NutricionistaSemCPF_Rejeitada(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})

	in := nutricionistaInput()
	in.CPF = ""
	_, err := f.uc.Create(context.Background(), adminID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Chamador sem papel de admin e fora dos admins do estabelecimento é barrado
// antes de qualquer escrita (P5).
func TestCreate_ChamadorNaoAdmin_BarradoSemEscritas(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})
	now := time.Now()
	f.users.users["colab-1"] = &entity.User{
		ID: "colab-1", Name: "Colab", Role: entity.RoleColaborador,
		Establishments: []string{estID}, CreatedAt: now, UpdatedAt: now,
	}
	f.users.writes = 0

	_, err := f.uc.Create(context.Background(), "colab-1", colaboradorInput())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, f.users.writes, "a negação deve acontecer antes de qualquer escrita")
	assert.Empty(t, f.links.links)
}

// Admin do estabelecimento sem o papel global de admin também pode provisionar.
func TestCreate_AdminDoEstabelecimentoSemPapelGlobal(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})
	now := time.Now()
	f.users.users["gestor-1"] = &entity.User{
		ID: "gestor-1", Name: "Gestor", Role: entity.RoleColaborador,
		Establishments: []string{estID}, CreatedAt: now, UpdatedAt: now,
	}
	f.ests.ests[estID].Admins = append(f.ests.ests[estID].Admins, "gestor-1")

	_, err := f.uc.Create(context.Background(), "gestor-1", colaboradorInput())
	assert.NoError(t, err, "quem consta nos admins do estabelecimento pode provisionar")
}

func TestCreate_EstabelecimentoInexistente_NotFound(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})

	in := colaboradorInput()
	in.EstablishmentID = "est-fantasma"
	_, err := f.uc.Create(context.Background(), adminID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// O merge do perfil não apaga campos que não vieram preenchidos.
func TestCreate_MergeNaoApagaCamposAusentes(t *testing.T) {
	f := newFixture(collaborator.Policy{DefaultPassword: "123456"})
	ctx := context.Background()

	uid, err := f.uc.Create(ctx, adminID, colaboradorInput())
	require.NoError(t, err)

	in := colaboradorInput()
	in.Phone = "" // segunda chamada sem telefone
	_, err = f.uc.Create(ctx, adminID, in)
	require.NoError(t, err)

	assert.Equal(t, "11999990000", f.users.users[uid].Phone,
		"campo ausente na segunda chamada não pode apagar o valor existente")
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetPassword
// ──────────────────────────────────────────────────────────────────────────────

func resetFixture(t *testing.T, policy collaborator.Policy) (*fixture, string) {
	t.Helper()
	f := newFixture(policy)
	uid, err := f.uc.Create(context.Background(), adminID, colaboradorInput())
	require.NoError(t, err)
	f.identity.passwords[uid] = "senha-trocada-pelo-usuario"
	return f, uid
}

func TestResetPassword_AdminResetaColaborador(t *testing.T) {
	f, uid := resetFixture(t, collaborator.Policy{DefaultPassword: "123456"})

	require.NoError(t, f.uc.ResetPassword(context.Background(), adminID, uid))
	assert.Equal(t, "123456", f.identity.passwords[uid], "a senha deve voltar à senha padrão")
}

func TestResetPassword_NaoAdmin_Barrado(t *testing.T) {
	f, uid := resetFixture(t, collaborator.Policy{DefaultPassword: "123456"})

	err := f.uc.ResetPassword(context.Background(), uid, uid)
	assert.ErrorIs(t, err, domain.ErrForbidden, "colaborador não pode resetar senha")
}

func TestResetPassword_ProprioAdmin_SegueAPolitica(t *testing.T) {
	// Padrão: bloqueado.
	f, _ := resetFixture(t, collaborator.Policy{DefaultPassword: "123456"})
	err := f.uc.ResetPassword(context.Background(), adminID, adminID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Com a política ligada: permitido.
	f2, _ := resetFixture(t, collaborator.Policy{DefaultPassword: "123456", AllowSelfReset: true})
	require.NoError(t, f2.uc.ResetPassword(context.Background(), adminID, adminID))
	assert.Equal(t, "123456", f2.identity.passwords[adminID])
}

func TestResetPassword_OutroAdmin_SegueAPolitica(t *testing.T) {
	policy := collaborator.Policy{DefaultPassword: "123456"}
	f, _ := resetFixture(t, policy)
	now := time.Now()
	f.users.users["admin-2"] = &entity.User{
		ID: "admin-2", Name: "Segundo Admin", Role: entity.RoleAdmin,
		Establishments: []string{estID}, CreatedAt: now, UpdatedAt: now,
	}

	err := f.uc.ResetPassword(context.Background(), adminID, "admin-2")
	assert.ErrorIs(t, err, domain.ErrForbidden, "reset de outro admin é bloqueado por padrão")

	f2, _ := resetFixture(t, collaborator.Policy{DefaultPassword: "123456", AllowAdminTargetReset: true})
	f2.users.users["admin-2"] = &entity.User{
		ID: "admin-2", Name: "Segundo Admin", Role: entity.RoleAdmin,
		Establishments: []string{estID}, CreatedAt: now, UpdatedAt: now,
	}
	assert.NoError(t, f2.uc.ResetPassword(context.Background(), adminID, "admin-2"))
}

func TestResetPassword_SemEstabelecimentoEmComum_Barrado(t *testing.T) {
	f, _ := resetFixture(t, collaborator.Policy{DefaultPassword: "123456"})
	now := time.Now()
	f.users.users["alheio-1"] = &entity.User{
		ID: "alheio-1", Name: "De Outro Lugar", Role: entity.RoleColaborador,
		Establishments: []string{"est-999"}, CreatedAt: now, UpdatedAt: now,
	}

	err := f.uc.ResetPassword(context.Background(), adminID, "alheio-1")
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"admin só reseta senha de quem compartilha estabelecimento")
}

func TestResetPassword_AlvoInexistente_NotFound(t *testing.T) {
	f, _ := resetFixture(t, collaborator.Policy{DefaultPassword: "123456"})

	err := f.uc.ResetPassword(context.Background(), adminID, "uid-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
