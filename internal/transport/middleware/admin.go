package middleware

import (
	"context"

	"github.com/asmelnikov/docgen-backend/internal/domain"
	"github.com/asmelnikov/docgen-backend/pkg/ctxutil"
)

// RequireSuperuser returns domain.ErrForbidden if the context caller is not
// a superuser. Use in REST handlers, not as HTTP middleware.
func RequireSuperuser(ctx context.Context) error {
	if !ctxutil.IsSuperuserCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
