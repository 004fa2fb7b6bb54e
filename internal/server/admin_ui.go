package server

import (
	"html/template"
	"net/http"
)

var adminTmpl = template.Must(template.New("admin").Parse(`<!doctype html>
<html>
<head><title>Pawfee Merge Cafe — routes</title></head>
<body>
<h1>Pawfee Merge Cafe</h1>
<p>Listening on port {{.Port}}.</p>
<table border="1" cellpadding="4">
<tr><th>Method</th><th>Pattern</th><th>Summary</th><th>Example body</th></tr>
{{range .Routes}}<tr><td>{{.Method}}</td><td>{{.Pattern}}</td><td>{{.Summary}}</td><td><code>{{.ExampleBody}}</code></td></tr>
{{end}}</table>
</body>
</html>`))

type adminPageData struct {
	Port   string
	Routes []RouteDoc
}

// RegisterAdminUI exposes the route registry, as JSON for tooling and
// as a minimal HTML table for humans.
func RegisterAdminUI(mux *http.ServeMux, rr *RouteRegistry, port string) {
	mux.HandleFunc("GET /_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})

	mux.HandleFunc("GET /_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := adminPageData{Port: port, Routes: rr.List()}
		if err := adminTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), 500)
		}
	})
}
