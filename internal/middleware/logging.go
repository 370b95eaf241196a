package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging gibt eine Middleware zurück, die jede Anfrage mit Methode, Pfad, Statuscode, Größe, Dauer und Request-ID
// protokolliert. Antworten mit 5xx werden als Fehler geloggt; 404, 418 und 501 sind hier reguläre Fehlerseiten.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := zapcore.InfoLevel
			if ww.Status() >= http.StatusInternalServerError && ww.Status() != http.StatusNotImplemented {
				level = zapcore.ErrorLevel
			}
			logger.Log(level, "anfrage",
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("methode", r.Method),
				zap.String("pfad", r.URL.Path),
				zap.String("theme", r.URL.Query().Get("theme")),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("dauer", time.Since(start)),
			)
		})
	}
}
