package components

import (
	"context"

	"signupweb/internal/constants"
)

func GetCsrfToken(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if csrfToken, ok := ctx.Value(constants.CsrfTokenContextKey).(string); ok {
		return csrfToken
	}
	return ""
}
