package controllers

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/form"
	"github.com/dmitrymomot/simplefw/pkg/repository"
	"github.com/dmitrymomot/simplefw/pkg/sanitizer"
)

// Category flash messages.
const (
	MsgCategorySaved    = "La catégorie a été enregistrée avec succès"
	MsgCategoryDeleted  = "La catégorie a été supprimée avec succès"
	MsgCategoryNotFound = "Cet identifiant de catégorie n'existe pas"
	MsgCategoryInUse    = "Cette catégorie est utilisée par des contacts"
)

// CategoryController serves the category pages.
type CategoryController struct {
	categories Categories
	contacts   Contacts
}

// NewCategory returns the category controller. contacts may be nil; the
// list then shows no contact counts.
func NewCategory(categories Categories, contacts Contacts) *CategoryController {
	return &CategoryController{categories: categories, contacts: contacts}
}

// IndexAction lists the categories.
//
//	GET /category
func (h *CategoryController) IndexAction(c simplefw.Context) error {
	categories, err := h.categories.All(c)
	if err != nil {
		c.AddFlash(simplefw.FlashDanger, err.Error())
	}

	counts := map[int64]int{}
	if h.contacts != nil {
		if counts, err = h.contacts.CountByCategory(c); err != nil {
			c.AddFlash(simplefw.FlashDanger, err.Error())
		}
	}

	return c.View(http.StatusOK, "category/index", map[string]any{
		keyTitle:     "Liste des catégories",
		"Categories": categories,
		"Counts":     counts,
	})
}

// NewAction shows the empty form.
//
//	GET|POST /category/new
func (h *CategoryController) NewAction(c simplefw.Context) error {
	return h.EditAction(c)
}

// EditAction shows and processes the category form.
//
//	GET|POST /category/edit/{id}
func (h *CategoryController) EditAction(c simplefw.Context) error {
	id := simplefw.Arg[int64](c, 0)
	f := h.form(id)

	var category *models.Category
	if id > 0 {
		found, err := h.categories.One(c, id)
		switch {
		case repository.IsNotFound(err):
			c.AddFlash(simplefw.FlashWarning, MsgCategoryNotFound)
			return c.RedirectTo("category")
		case err != nil:
			return err
		}
		category = found
	}

	if form.IsSubmitted(c.Request()) {
		if errs := f.Validate(c.Request()); len(errs) > 0 {
			for _, msg := range errs {
				c.AddFlash(simplefw.FlashWarning, msg)
			}
			return c.RedirectTo("category", "edit", idSegment(id))
		}

		submitted := &models.Category{}
		if err := f.Bind(c.Request(), submitted); err != nil {
			return simplefw.ErrBadRequest("Formulaire invalide", simplefw.WithError(err))
		}
		if id > 0 {
			submitted.CategoryID = &id
		}

		rows, err := h.categories.Save(c, submitted)
		if err != nil {
			return err
		}
		if rows > 0 {
			c.AddFlash(simplefw.FlashSuccess, MsgCategorySaved)
		}
		if form.IsSubmitted(c.Request(), form.CloseButton) {
			return c.RedirectTo("category")
		}
		return c.RedirectTo("category", "new")
	}

	data, err := renderForm(f, category)
	if err != nil {
		return err
	}
	data["Category"] = category
	return c.View(http.StatusOK, "category/edit", data)
}

// DeleteAction removes a category that no contact uses.
//
//	GET /category/delete/{id}
func (h *CategoryController) DeleteAction(c simplefw.Context) error {
	id := simplefw.Arg[int64](c, 0)
	if id <= 0 {
		return c.RedirectTo("category")
	}

	category, err := h.categories.One(c, id)
	switch {
	case repository.IsNotFound(err):
		c.AddFlash(simplefw.FlashWarning, MsgCategoryNotFound)
		return c.RedirectTo("category")
	case err != nil:
		return err
	}

	if h.contacts != nil {
		counts, err := h.contacts.CountByCategory(c)
		if err != nil {
			return err
		}
		if counts[id] > 0 {
			c.AddFlash(simplefw.FlashWarning, MsgCategoryInUse)
			return c.RedirectTo("category")
		}
	}

	if _, err := h.categories.Delete(c, category); err != nil {
		return err
	}
	c.AddFlash(simplefw.FlashSuccess, MsgCategoryDeleted)
	return c.RedirectTo("category")
}

func (h *CategoryController) form(id int64) *form.Manager {
	return form.New("Maintenance des catégories").
		Add(form.Field{
			Name:    "categoryId",
			Control: form.Hidden,
			Filter:  sanitizer.Int,
		}).
		Add(form.Field{
			Name:     "categoryName",
			Label:    "Nom de la catégorie",
			Required: true,
		}).
		IndexRoute(simplefw.URL("category", "index")).
		DeleteRoute(simplefw.URL("category", "delete", idSegment(id)))
}

// idSegment renders an id as a route segment; 0 gives an empty segment,
// which URL drops.
func idSegment(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
