package middleware

import (
	"fmt"
	"net/http"

	"github.com/openlmis/fulfillment-backend/api/responses"
	pkgerrors "github.com/openlmis/fulfillment-backend/pkg/errors"
	"github.com/openlmis/fulfillment-backend/pkg/logger"
)

// Recoverer turns panics into logged 500 responses so one bad request
// cannot take the process down.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				value := recover()
				if value == nil {
					return
				}
				err := fmt.Errorf("panic: %v", value)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithField(ctx, "panic", value)
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
