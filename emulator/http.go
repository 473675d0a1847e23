package emulator

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed web
var assets embed.FS

func (e *Emulator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	e.log.WithField("path", p).Debug("request")

	switch {
	case p == "/":
		http.Redirect(w, r, WebPrefix+"/index.html", http.StatusMovedPermanently)
	case p == EventBusPath:
		e.serveEventBus(w, r)
	case strings.HasPrefix(p, WebPrefix+"/"):
		e.serveAsset(w, r, strings.TrimPrefix(p, "/"))
	default:
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}
}

func (e *Emulator) serveAsset(w http.ResponseWriter, r *http.Request, name string) {
	data, err := fs.ReadFile(assets, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType(name))
	w.Write(data)
}

func contentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "text/html; charset=utf-8"
}
