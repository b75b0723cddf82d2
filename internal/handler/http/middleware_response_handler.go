package http

import "net/http"

// statusRecorder decorates an [http.ResponseWriter] so middleware can see
// what the downstream handler produced: the status code, the number of
// body bytes, and the payload of the last Write. The response itself is
// not buffered; bytes stream through to the client as usual.
//
// WriteHeader is forwarded to the wrapped writer exactly once. The
// standard library allows only one WriteHeader per response, and the
// recorder absorbs any extra calls instead of tripping net/http's
// "superfluous WriteHeader" warning.
type statusRecorder struct {
	http.ResponseWriter

	// code is the status recorded on the first WriteHeader call, zero
	// until the header is written.
	code int

	// bytes accumulates the body size across all Write calls.
	bytes int

	// lastChunk references the slice passed to the most recent Write.
	// It is replaced per call, not concatenated.
	lastChunk []byte

	headerDone bool
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	if w.headerDone {
		return
	}

	w.code = statusCode
	w.headerDone = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the wrapped writer, implying a 200 header the way
// net/http does when the handler never called WriteHeader.
func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.headerDone {
		w.WriteHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	w.lastChunk = b
	return n, err
}
