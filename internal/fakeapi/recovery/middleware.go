package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/internal/fakeapi/respond"
)

// Middleware answers a handler panic with the API's generic 500 body.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			log.Error().
				Interface("panic", rec).
				Str("request", r.Method+" "+r.URL.Path).
				Str("request_id", r.Header.Get("X-Request-ID")).
				Bytes("stack", debug.Stack()).
				Msg("fake api handler panicked")
			respond.WriteServerError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
