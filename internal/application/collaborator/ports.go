package collaborator

// IdentityService porto do serviço de identidade: resolução por email,
// criação de credencial e redefinição de senha. A implementação padrão vive
// sobre a própria tabela de usuários com bcrypt (ver application/auth).
type IdentityService interface {
	// FindUIDByEmail devolve o uid da identidade com esse email, ou "" se não existir.
	FindUIDByEmail(email string) (string, error)
	// CreateIdentity cria uma identidade nova e devolve o uid.
	// Email duplicado na camada de identidade devolve domain.ErrEmailAlreadyExists.
	CreateIdentity(email, password, displayName string) (string, error)
	// SetPassword força a senha da identidade para o valor dado.
	SetPassword(uid, password string) error
}
