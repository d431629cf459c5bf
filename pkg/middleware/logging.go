package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/log"
)

// CorrelationIDHeader é o cabeçalho que propaga o ID de correlação
const CorrelationIDHeader = "X-Correlation-ID"

// slowRequest é o limite a partir do qual uma consulta é registrada como lenta
const slowRequest = 500 * time.Millisecond

// analysisParams são os parâmetros de consulta copiados para o log como query_<nome>
var analysisParams = []string{"from", "to", "month", "base", "as_of", "origin", "segment", "metric", "product", "status"}

// LoggingMiddleware registra início e fim de cada requisição com o ID de correlação,
// o status e os parâmetros de análise informados
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationIDFrom(r.Context(), r.Header.Get(CorrelationIDHeader))
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			logger := log.ForContext(ctx).WithFields(requestFields(r))
			logger.Info("→ Requisição iniciada")

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			logger = logger.WithFields(log.Fields{
				"status_code": lrw.statusCode,
				"duration_ms": elapsed.Milliseconds(),
			})

			msg := fmt.Sprintf("Requisição finalizada em %s", formatDuration(elapsed))
			switch {
			case lrw.statusCode >= http.StatusInternalServerError:
				logger.Error(msg)
			case lrw.statusCode >= http.StatusBadRequest:
				logger.Warn(msg)
			default:
				logger.Info(msg)
			}

			if elapsed > slowRequest {
				logger.Warnf("⚠ Consulta lenta: %s %s", r.Method, r.URL.Path)
			}
		})
	}
}

// requestFields reúne método, rota e parâmetros de análise; fora de desenvolvimento
// inclui também a origem da requisição
func requestFields(r *http.Request) log.Fields {
	fields := log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if !log.IsDevelopment() {
		fields["remote_addr"] = r.RemoteAddr
		fields["user_agent"] = r.UserAgent()
	}

	query := r.URL.Query()
	for _, param := range analysisParams {
		if value := query.Get(param); value != "" {
			fields["query_"+param] = value
		}
	}
	return fields
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code escrito pelo handler
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware recupera panics dos handlers, registra a pilha e responde SRV_001
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]

					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":       err,
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack),
					}).Error("❌ Erro não tratado na análise")

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
