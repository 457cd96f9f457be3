package placement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"golayout/internal/domain"
	apperror "golayout/internal/errors"
)

// DefaultCodeAttempts limita as tentativas de gerar um código livre.
const DefaultCodeAttempts = 16

const codeLength = 8

// CodeLookup é o oráculo de unicidade: um NotFoundError significa código livre.
type CodeLookup interface {
	FindByCode(ctx context.Context, code string) (domain.Zone, error)
}

// IdentifierIssuer gera códigos curtos para zonas.
// A verificação é apenas prévia: a restrição UNIQUE da tabela zones é o árbitro final.
type IdentifierIssuer struct {
	lookup      CodeLookup
	generate    func() string
	maxAttempts int
}

// IssuerOption customiza um IdentifierIssuer.
type IssuerOption func(*IdentifierIssuer)

// WithGenerator substitui o gerador de códigos (usado em testes).
func WithGenerator(generate func() string) IssuerOption {
	return func(i *IdentifierIssuer) { i.generate = generate }
}

// NewIdentifierIssuer cria o emissor. maxAttempts <= 0 usa DefaultCodeAttempts.
func NewIdentifierIssuer(lookup CodeLookup, maxAttempts int, opts ...IssuerOption) *IdentifierIssuer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultCodeAttempts
	}
	i := &IdentifierIssuer{
		lookup:      lookup,
		generate:    randomCode,
		maxAttempts: maxAttempts,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func randomCode() string {
	return uuid.NewString()[:codeLength]
}

// Issue devolve um código ainda não usado por nenhuma zona.
func (i *IdentifierIssuer) Issue(ctx context.Context) (string, error) {
	for attempt := 0; attempt < i.maxAttempts; attempt++ {
		code := i.generate()

		_, err := i.lookup.FindByCode(ctx, code)
		if apperror.IsNotFound(err) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperror.NewInternalError(
		fmt.Sprintf("não foi possível gerar um código de zona livre após %d tentativas", i.maxAttempts), nil)
}
