package middleware

import "net/http"

// MaxBody plafonne la taille du corps de requête. Au-delà de la limite, la
// lecture du corps échoue immédiatement au lieu d'avaler tout l'envoi avant
// de le rejeter.
func MaxBody(next http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
