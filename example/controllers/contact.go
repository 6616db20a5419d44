package controllers

import (
	"net/http"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/entity"
	"github.com/dmitrymomot/simplefw/pkg/form"
	"github.com/dmitrymomot/simplefw/pkg/repository"
	"github.com/dmitrymomot/simplefw/pkg/sanitizer"
)

// Contact flash messages.
const (
	MsgContactSaved    = "Le contact a été enregistré avec succès"
	MsgContactDeleted  = "Le contact a été supprimé avec succès"
	MsgContactNotFound = "Cet identifiant de contact n'existe pas"
)

// ContactController serves the contact pages.
type ContactController struct {
	contacts   Contacts
	categories Categories
}

// NewContact returns the contact controller. categories feeds the category
// select list.
func NewContact(contacts Contacts, categories Categories) *ContactController {
	return &ContactController{contacts: contacts, categories: categories}
}

// IndexAction lists the contacts with their category.
//
//	GET /contact
func (h *ContactController) IndexAction(c simplefw.Context) error {
	contacts, err := h.contacts.AllWithCategory(c)
	if err != nil {
		c.AddFlash(simplefw.FlashDanger, err.Error())
	}

	return c.View(http.StatusOK, "contact/index", map[string]any{
		keyTitle:   "Liste des contacts",
		"Contacts": contacts,
	})
}

// NewAction shows the empty form.
//
//	GET|POST /contact/new
func (h *ContactController) NewAction(c simplefw.Context) error {
	return h.EditAction(c)
}

// EditAction shows and processes the contact form.
//
//	GET|POST /contact/edit/{id}
func (h *ContactController) EditAction(c simplefw.Context) error {
	id := simplefw.Arg[int64](c, 0)

	categories, err := h.categories.All(c)
	if err != nil {
		return err
	}
	f := h.form(id, entity.SelectList(categories, "categoryId", "categoryName"))

	var contact *models.Contact
	if id > 0 {
		found, err := h.contacts.One(c, id)
		switch {
		case repository.IsNotFound(err):
			c.AddFlash(simplefw.FlashWarning, MsgContactNotFound)
			return c.RedirectTo("contact")
		case err != nil:
			return err
		}
		contact = found
	}

	if form.IsSubmitted(c.Request()) {
		if errs := f.Validate(c.Request()); len(errs) > 0 {
			for _, msg := range errs {
				c.AddFlash(simplefw.FlashWarning, msg)
			}
			return c.RedirectTo("contact", "edit", idSegment(id))
		}

		submitted := &models.Contact{}
		if err := f.Bind(c.Request(), submitted); err != nil {
			return simplefw.ErrBadRequest("Formulaire invalide", simplefw.WithError(err))
		}
		if id > 0 {
			submitted.ContactID = &id
		}

		rows, err := h.contacts.Save(c, submitted)
		if err != nil {
			return err
		}
		if rows > 0 {
			c.AddFlash(simplefw.FlashSuccess, MsgContactSaved)
		}
		if form.IsSubmitted(c.Request(), form.CloseButton) {
			return c.RedirectTo("contact")
		}
		return c.RedirectTo("contact", "new")
	}

	data, err := renderForm(f, contact)
	if err != nil {
		return err
	}
	data["Contact"] = contact
	return c.View(http.StatusOK, "contact/edit", data)
}

// DeleteAction removes a contact.
//
//	GET /contact/delete/{id}
func (h *ContactController) DeleteAction(c simplefw.Context) error {
	id := simplefw.Arg[int64](c, 0)
	if id <= 0 {
		return c.RedirectTo("contact")
	}

	contact, err := h.contacts.One(c, id)
	switch {
	case repository.IsNotFound(err):
		c.AddFlash(simplefw.FlashWarning, MsgContactNotFound)
		return c.RedirectTo("contact")
	case err != nil:
		return err
	}

	if _, err := h.contacts.Delete(c, contact); err != nil {
		return err
	}
	c.AddFlash(simplefw.FlashSuccess, MsgContactDeleted)
	return c.RedirectTo("contact")
}

func (h *ContactController) form(id int64, categories []entity.Option) *form.Manager {
	return form.New("Maintenance des Contacts").
		Add(form.Field{
			Name:    "contactId",
			Control: form.Hidden,
			Filter:  sanitizer.Int,
		}).
		Add(form.Field{
			Name:     "contactName",
			Label:    "Nom du contact",
			Required: true,
		}).
		Add(form.Field{
			Name:    "contactEmail",
			Label:   "Email du contact",
			Control: form.Email,
			Filter:  sanitizer.Email,
		}).
		Add(form.Field{
			Name:     "categoryId",
			Label:    "Catégorie de contact",
			Required: true,
			Control:  form.Select,
			CSSClass: "form-control select2",
			Filter:   sanitizer.Int,
			Options:  categories,
		}).
		IndexRoute(simplefw.URL("contact", "index")).
		DeleteRoute(simplefw.URL("contact", "delete", idSegment(id)))
}
