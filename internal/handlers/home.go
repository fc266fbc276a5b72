package handlers

import "net/http"

// Home renders the landing page linking to both editors.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, "home", nil)
}
