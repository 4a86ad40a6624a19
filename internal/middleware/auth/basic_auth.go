package auth

import (
	"crypto/subtle"
	"net/http"
)

const realm = `Basic realm="Seguimiento Admin"`

// BasicAuth защищает админские маршруты. Пустой логин или пароль в конфиге закрывает доступ полностью.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	configured := username != "" && password != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !configured {
				requireAuth(w)
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !equal(user, username) || !equal(pass, password) {
				requireAuth(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", realm)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
