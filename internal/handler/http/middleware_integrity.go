package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
	"github.com/MKhiriev/go-cart-keeper/internal/utils"
)

// contentHashHeader mirrors the header name the register's adapter sends on
// batch sync submissions.
const contentHashHeader = "X-Content-Hash"

// batchIntegrity verifies the X-Content-Hash header on batch sync requests.
//
// The register computes a SHA-256 digest over the raw request body and sends
// it alongside the batch. A mismatch means the body was truncated or mangled
// in transit, and applying such a batch could ack operations the register
// never sent. The check compares digests over the raw bytes as received;
// no JSON normalisation is involved.
//
// Requests without the header pass through unchecked, so plain clients and
// ops tooling can call the endpoint directly.
func (h *Handler) batchIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		declaredHash := r.Header.Get(contentHashHeader)
		if declaredHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.batchIntegrity").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		hashedBody := utils.HashHex(body)
		if !strings.EqualFold(hashedBody, declaredHash) {
			log.Error().Str("func", "*Handler.batchIntegrity").
				Str("hash from request", declaredHash).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			http.Error(w, "Integrity check failed", http.StatusBadRequest)
			return
		}

		log.Debug().Str("func", "*Handler.batchIntegrity").Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
