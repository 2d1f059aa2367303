package router

import (
	"net/http"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// siteHandler serves the built client and falls back to index.html so the
// single-page app can resolve its own routes.
type siteHandler struct {
	public afero.Fs
	static afero.Fs
}

func newSiteHandler(public, static afero.Fs) *siteHandler {
	return &siteHandler{public: public, static: static}
}

func (h *siteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if !hasDotSegment(name) {
		if h.serve(w, r, h.public, name, true) || h.serve(w, r, h.static, name, false) {
			return
		}
	}

	if h.serve(w, r, h.public, "/index.html", false) {
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

// serve writes name from fsys if it resolves to a regular file. Directories
// resolve to their index.html; tryHTML also resolves "/about" to "/about.html".
func (h *siteHandler) serve(w http.ResponseWriter, r *http.Request, fsys afero.Fs, name string, tryHTML bool) bool {
	if fsys == nil {
		return false
	}

	candidates := []string{name}
	if tryHTML && path.Ext(name) == "" && name != "/" {
		candidates = append(candidates, name+".html")
	}

	for _, candidate := range candidates {
		info, err := fsys.Stat(candidate)
		if err != nil {
			continue
		}
		if info.IsDir() {
			candidate = path.Join(candidate, "index.html")
			if info, err = fsys.Stat(candidate); err != nil || info.IsDir() {
				continue
			}
		}

		f, err := fsys.Open(candidate)
		if err != nil {
			continue
		}
		defer f.Close()
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return true
	}
	return false
}

// hasDotSegment rejects dotfiles, matching common static-server defaults.
func hasDotSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
