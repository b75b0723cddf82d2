package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Pools keep gzip state off the per-request allocation path: registers
// sync in bursts after an outage, and every batch in the burst carries a
// compressed cart payload.
var (
	gzipWriterPool = sync.Pool{
		New: func() any { return gzip.NewWriter(nil) },
	}
	gzipReaderPool = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip support. Handlers downstream
// always see plain bodies; Content-Encoding is stripped from the request
// after decompression so repeated middleware runs cannot double-decode.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			if !decompressRequestBody(req) {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		zw := gzipWriterPool.Get().(*gzip.Writer)
		zw.Reset(w)

		next.ServeHTTP(&gzipCapableWriter{ResponseWriter: w, zw: zw}, req)

		zw.Close()
		gzipWriterPool.Put(zw)
	})
}

// decompressRequestBody swaps req.Body for a pooled gzip reader over the
// original body. Reports false when the body is not valid gzip.
func decompressRequestBody(req *http.Request) bool {
	zr := gzipReaderPool.Get().(*gzip.Reader)
	if err := zr.Reset(req.Body); err != nil {
		gzipReaderPool.Put(zr)
		return false
	}

	req.Body = &pooledGzipBody{Reader: zr, release: func() {
		zr.Close()
		gzipReaderPool.Put(zr)
	}}
	req.Header.Del("Content-Encoding")
	return true
}

// pooledGzipBody returns its gzip reader to the pool on Close.
type pooledGzipBody struct {
	io.Reader
	release func()
}

func (b *pooledGzipBody) Close() error {
	if b.release != nil {
		b.release()
		b.release = nil
	}
	return nil
}

// gzipCapableWriter compresses everything written through it and stamps
// the response Content-Encoding on WriteHeader.
type gzipCapableWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *gzipCapableWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipCapableWriter) Write(data []byte) (int, error) {
	return w.zw.Write(data)
}

func (w *gzipCapableWriter) Close() error {
	return w.zw.Close()
}
