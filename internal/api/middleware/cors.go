package middleware

import "net/http"

// CORS allows browser clients on other origins to call the API
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// multipartOverhead is the room left for multipart headers and boundaries
// on top of the largest accepted file
const multipartOverhead = 1 << 20

// UploadBodyLimit returns the request body limit for an upload limit of n
// bytes. Files over n are still refused, by the session, which reports them
// in the chat. n <= 0 means no limit.
func UploadBodyLimit(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return n + multipartOverhead
}

// MaxBodySize limits request bodies to n bytes. n <= 0 disables the limit.
func MaxBodySize(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
