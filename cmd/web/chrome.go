package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/creotizant/HCM-Landing/internal/middleware"
	"github.com/creotizant/HCM-Landing/internal/nav"
)

// Dropdowns the navbar knows how to open.
var dropdowns = map[string]struct{}{
	string(nav.PageProducts): {},
}

func (a *app) toggleMenuHandler(w http.ResponseWriter, r *http.Request) {
	sh, ok := a.shell(w, r)
	if !ok {
		return
	}
	a.renderNavbar(w, r, sh, sh.ToggleMobileMenu())
}

func (a *app) openDropdownHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, known := dropdowns[name]; !known {
		mw.WriteError(w, r, http.StatusNotFound, "unknown dropdown")
		return
	}
	sh, ok := a.shell(w, r)
	if !ok {
		return
	}
	a.renderNavbar(w, r, sh, sh.OpenDropdown(name))
}

func (a *app) closeOverlaysHandler(w http.ResponseWriter, r *http.Request) {
	sh, ok := a.shell(w, r)
	if !ok {
		return
	}
	sh.CloseOverlays()
	a.renderNavbar(w, r, sh, sh.Overlays())
}

// renderNavbar answers overlay changes with the navbar alone; plain form
// posts are sent back to the current page.
func (a *app) renderNavbar(w http.ResponseWriter, r *http.Request, sh *nav.Shell, overlays nav.Overlays) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, nav.Href(sh.Current()), http.StatusSeeOther)
		return
	}
	vm := a.builder.Navbar(sh.Current(), overlays, mw.GetSession(r).CSRFToken)
	a.renderPartial(w, r, "navbar", vm)
}

func (a *app) shell(w http.ResponseWriter, r *http.Request) (*nav.Shell, bool) {
	sh, ok := mw.ShellFromContext(r.Context())
	if !ok {
		mw.WriteError(w, r, http.StatusInternalServerError, "session unavailable")
	}
	return sh, ok
}
