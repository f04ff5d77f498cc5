package accounts

import (
	"context"

	"github.com/mcdev12/overworld/go/internal/models"
)

type contextKey struct{}

// WithAccount stores the authenticated account in ctx
func WithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, contextKey{}, account)
}

// AccountFromContext returns the authenticated account, if any
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(contextKey{}).(*models.Account)
	return account, ok && account != nil
}
