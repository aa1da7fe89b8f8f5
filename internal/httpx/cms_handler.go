package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akshayam/wellness-store.git/internal/cms"
)

type CMSHandler struct {
	Content *cms.ContentRepo
	Contact *cms.ContactRepo
	Recipes *cms.RecipeRepo
}

func (h *CMSHandler) Register(r chi.Router) {
	r.Get("/content", h.listContent)
	r.Get("/content/{page}", h.getPage)
	r.Get("/content/{page}/{section}", h.getSection)
	r.Get("/contact", h.getContact)
	r.Get("/recipes", h.listRecipes)
	r.Get("/recipes/{id}", h.getRecipe)
}

func (h *CMSHandler) RegisterAdmin(r chi.Router) {
	r.Post("/content", h.createContent)
	r.Put("/content/{id}", h.updateContent)
	r.Delete("/content/{id}", h.deleteContent)

	r.Put("/contact", h.updateContact)

	r.Post("/recipes", h.createRecipe)
	r.Put("/recipes/{id}", h.updateRecipe)
	r.Delete("/recipes/{id}", h.deleteRecipe)
}

func cmsErr(w http.ResponseWriter, err error) {
	if errors.Is(err, cms.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	writeErr(w, http.StatusInternalServerError, "Internal server error")
}

func (h *CMSHandler) listContent(w http.ResponseWriter, r *http.Request) {
	list, err := h.Content.List(r.Context())
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CMSHandler) getPage(w http.ResponseWriter, r *http.Request) {
	c, err := h.Content.GetByPage(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CMSHandler) getSection(w http.ResponseWriter, r *http.Request) {
	c, err := h.Content.GetSection(r.Context(), chi.URLParam(r, "page"), chi.URLParam(r, "section"))
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CMSHandler) createContent(w http.ResponseWriter, r *http.Request) {
	var c cms.Content
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if c.Page == "" || c.Section == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}
	if err := h.Content.Create(r.Context(), &c); err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CMSHandler) updateContent(w http.ResponseWriter, r *http.Request) {
	var upd cms.ContentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := h.Content.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CMSHandler) deleteContent(w http.ResponseWriter, r *http.Request) {
	if err := h.Content.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Content deleted successfully"})
}

func (h *CMSHandler) getContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.Contact.Get(r.Context())
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CMSHandler) updateContact(w http.ResponseWriter, r *http.Request) {
	var c cms.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := h.Contact.Update(r.Context(), &c)
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CMSHandler) listRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := h.Recipes.List(r.Context())
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CMSHandler) getRecipe(w http.ResponseWriter, r *http.Request) {
	rc, err := h.Recipes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *CMSHandler) createRecipe(w http.ResponseWriter, r *http.Request) {
	var rc cms.Recipe
	if err := json.NewDecoder(r.Body).Decode(&rc); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rc.Name == "" {
		writeErr(w, http.StatusBadRequest, "missing fields")
		return
	}
	if err := h.Recipes.Create(r.Context(), &rc); err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rc)
}

func (h *CMSHandler) updateRecipe(w http.ResponseWriter, r *http.Request) {
	var upd cms.RecipeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	rc, err := h.Recipes.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rc)
}

func (h *CMSHandler) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.Recipes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		cmsErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted successfully"})
}
