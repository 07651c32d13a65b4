package server

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/vetting_radar/internal/conf"
	"github.com/iWorld-y/vetting_radar/internal/service"
	"github.com/iWorld-y/vetting_radar/pkg/validate"
)

func NewHTTPServer(c *conf.Server, s *service.VettingService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/api/v1/vet", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeJSON(w, nethttp.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}

		var req service.VetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, nethttp.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		rep, err := s.Vet(r.Context(), &req)
		if err != nil {
			var rejection *validate.RejectionError
			if errors.As(err, &rejection) {
				writeJSON(w, nethttp.StatusUnprocessableEntity, map[string]string{
					"code":    rejection.Verdict.Code,
					"message": rejection.Verdict.Message,
				})
				return
			}
			writeJSON(w, nethttp.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, nethttp.StatusOK, rep)
	})

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
	})

	return srv
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
