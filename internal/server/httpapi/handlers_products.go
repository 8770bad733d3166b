package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

func (a *API) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	strID := r.PathValue("id")
	id, err := strconv.ParseInt(strID, 10, 64)
	if err != nil {
		a.writeBadRequest(w, r, "invalid product id")
		return 0, false
	}
	return id, true
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := a.products.List(ctx)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if err := encode(w, http.StatusOK, productsToResponse(list)); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decode[CreateProductRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}
	if req.Name == "" || req.Price < 0 {
		a.writeBadRequest(w, r, "name is required and price must not be negative")
		return
	}

	created, err := a.products.Create(ctx, &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if err := encode(w, http.StatusCreated, productToResponse(created)); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := a.productID(w, r)
	if !ok {
		return
	}

	product, err := a.products.GetByID(ctx, id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if err := encode(w, http.StatusOK, productToResponse(product)); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := a.productID(w, r)
	if !ok {
		return
	}

	req, err := decode[UpdateProductRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}
	if req.Name == "" || req.Price < 0 {
		a.writeBadRequest(w, r, "name is required and price must not be negative")
		return
	}

	updated, err := a.products.Update(ctx, &models.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if err := encode(w, http.StatusOK, productToResponse(updated)); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := a.productID(w, r)
	if !ok {
		return
	}

	if err := a.products.Delete(ctx, id); err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
