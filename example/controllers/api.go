package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/simplefw"
	"github.com/dmitrymomot/simplefw/example/models"
	"github.com/dmitrymomot/simplefw/pkg/entity"
	"github.com/dmitrymomot/simplefw/pkg/repository"
)

// API error messages.
const (
	MsgAPICategoryNotFound = "Category not found"
	MsgAPIContactNotFound  = "Contact not found"
)

var errNoRows = errors.New("no row affected")

// parseID reads a positive integer id; ok is false otherwise.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// rowsOrError turns a write result into the error reported to the client.
func rowsOrError(rows int64, err error) error {
	if err != nil {
		return err
	}
	if rows == 0 {
		return errNoRows
	}
	return nil
}

// CategoriesController serves /api/category.
type CategoriesController struct {
	categories Categories
}

var _ simplefw.APIController = (*CategoriesController)(nil)

// NewCategoriesAPI returns the category API controller.
func NewCategoriesAPI(categories Categories) *CategoriesController {
	return &CategoriesController{categories: categories}
}

// Get returns every category, or the one with id.
//
//	GET /api/category
//	GET /api/category/{id}
func (h *CategoriesController) Get(c simplefw.Context, id string) error {
	if id == "" {
		items, err := h.categories.All(c)
		if err != nil {
			return c.APIError(http.StatusInternalServerError, err.Error())
		}
		if items == nil {
			items = []*models.Category{}
		}
		return c.JSON(http.StatusOK, items)
	}

	category, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}
	return c.JSON(http.StatusOK, category)
}

// Post creates a category from the JSON body.
//
//	POST /api/category
func (h *CategoriesController) Post(c simplefw.Context) error {
	var category models.Category
	if err := c.BindJSON(&category); err != nil {
		return err
	}
	category.CategoryID = nil

	if err := rowsOrError(h.categories.Insert(c, &category)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, category)
}

// Put replaces the category with id.
//
//	PUT /api/category/{id}
func (h *CategoriesController) Put(c simplefw.Context, id string) error {
	existing, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}

	var category models.Category
	if err := c.BindJSON(&category); err != nil {
		return err
	}
	category.CategoryID = existing.CategoryID

	if err := rowsOrError(h.categories.Update(c, &category)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, category)
}

// Delete removes the category with id.
//
//	DELETE /api/category/{id}
func (h *CategoriesController) Delete(c simplefw.Context, id string) error {
	category, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}

	if err := rowsOrError(h.categories.Delete(c, category)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoriesController) find(c simplefw.Context, id string) (*models.Category, int, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, http.StatusNotFound, errors.New(MsgAPICategoryNotFound)
	}
	category, err := h.categories.One(c, n)
	switch {
	case repository.IsNotFound(err):
		return nil, http.StatusNotFound, errors.New(MsgAPICategoryNotFound)
	case err != nil:
		return nil, http.StatusInternalServerError, err
	}
	return category, http.StatusOK, nil
}

// ContactsController serves /api/contact. Responses carry the category name.
type ContactsController struct {
	contacts Contacts
}

var _ simplefw.APIController = (*ContactsController)(nil)

// NewContactsAPI returns the contact API controller.
func NewContactsAPI(contacts Contacts) *ContactsController {
	return &ContactsController{contacts: contacts}
}

// Get returns every contact, or the one with id.
//
//	GET /api/contact
//	GET /api/contact/{id}
func (h *ContactsController) Get(c simplefw.Context, id string) error {
	if id == "" {
		items, err := h.contacts.AllWithCategory(c)
		if err != nil {
			return c.APIError(http.StatusInternalServerError, err.Error())
		}
		dtos := make([]models.ContactDTO, 0, len(items))
		for _, item := range items {
			dto, err := toDTO(item)
			if err != nil {
				return c.APIError(http.StatusInternalServerError, err.Error())
			}
			dtos = append(dtos, dto)
		}
		return c.JSON(http.StatusOK, dtos)
	}

	contact, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}
	dto, err := toDTO(contact)
	if err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto)
}

// Post creates a contact from the JSON body.
//
//	POST /api/contact
func (h *ContactsController) Post(c simplefw.Context) error {
	var contact models.Contact
	if err := c.BindJSON(&contact); err != nil {
		return err
	}
	contact.ContactID = nil

	if err := rowsOrError(h.contacts.Insert(c, &contact)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	dto, err := h.reload(c, &contact)
	if err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, dto)
}

// Put replaces the contact with id.
//
//	PUT /api/contact/{id}
func (h *ContactsController) Put(c simplefw.Context, id string) error {
	existing, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}

	var contact models.Contact
	if err := c.BindJSON(&contact); err != nil {
		return err
	}
	contact.ContactID = existing.ContactID

	if err := rowsOrError(h.contacts.Update(c, &contact)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	dto, err := h.reload(c, &contact)
	if err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto)
}

// Delete removes the contact with id.
//
//	DELETE /api/contact/{id}
func (h *ContactsController) Delete(c simplefw.Context, id string) error {
	contact, status, err := h.find(c, id)
	if err != nil {
		return c.APIError(status, err.Error())
	}

	if err := rowsOrError(h.contacts.Delete(c, contact)); err != nil {
		return c.APIError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContactsController) find(c simplefw.Context, id string) (*models.Contact, int, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, http.StatusNotFound, errors.New(MsgAPIContactNotFound)
	}
	contact, err := h.contacts.OneWithCategory(c, n)
	switch {
	case repository.IsNotFound(err):
		return nil, http.StatusNotFound, errors.New(MsgAPIContactNotFound)
	case err != nil:
		return nil, http.StatusInternalServerError, err
	}
	return contact, http.StatusOK, nil
}

// reload fetches the stored contact with its category. The written contact
// is used as is when the read fails.
func (h *ContactsController) reload(c simplefw.Context, contact *models.Contact) (models.ContactDTO, error) {
	stored, err := h.contacts.OneWithCategory(c, contact.ID())
	if err != nil {
		c.LogWarn("reload contact", slog.Int64("contact_id", contact.ID()), slog.Any("error", err))
		return toDTO(contact)
	}
	return toDTO(stored)
}

func toDTO(contact *models.Contact) (models.ContactDTO, error) {
	var dto models.ContactDTO
	if err := entity.Map(contact, &dto); err != nil {
		return dto, fmt.Errorf("map contact: %w", err)
	}
	dto.CategoryName = contact.CategoryName()
	return dto, nil
}
