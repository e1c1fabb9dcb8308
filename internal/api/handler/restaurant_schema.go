package handler

import (
	"github.com/JHanslik/restaurants-back/internal/core/domain"
	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

// --- Request types (wire vocabulary is French, matching the clients) ---

type addressRequest struct {
	Street     string `json:"rue"        validate:"required"`
	City       string `json:"ville"      validate:"required"`
	PostalCode string `json:"codePostal" validate:"required"`
}

type createRestaurantRequest struct {
	Name        string         `json:"nom"         validate:"required"`
	Cuisine     string         `json:"cuisine"     validate:"required"`
	Address     addressRequest `json:"adresse"     validate:"required"`
	Phone       string         `json:"telephone"`
	Description string         `json:"description"`
}

// updateRestaurantRequest is a partial update: nil means "keep". A
// supplied address replaces the whole block and must be complete.
type updateRestaurantRequest struct {
	Name        *string         `json:"nom"`
	Cuisine     *string         `json:"cuisine"`
	Address     *addressRequest `json:"adresse"`
	Phone       *string         `json:"telephone"`
	Description *string         `json:"description"`
}

type addReviewRequest struct {
	Note    *float64 `json:"note"        validate:"required"`
	Comment string   `json:"commentaire"`
}

// updateReviewRequest uses pointers for presence so an explicit 0 rating
// is applied rather than silently dropped.
type updateReviewRequest struct {
	Note    *float64 `json:"note"`
	Comment *string  `json:"commentaire"`
}

// --- Response types ---

type paginationResponse struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

type listRestaurantsResponse struct {
	Restaurants []*domain.Restaurant `json:"restaurants"`
	Pagination  paginationResponse   `json:"pagination"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Mappers ---

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
	}
}

func toCreateInput(req createRestaurantRequest) ports.RestaurantInput {
	return ports.RestaurantInput{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Address:     toAddressInput(req.Address),
		Phone:       req.Phone,
		Description: req.Description,
	}
}

func toUpdateInput(req updateRestaurantRequest) ports.RestaurantUpdate {
	upd := ports.RestaurantUpdate{
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Phone:       req.Phone,
		Description: req.Description,
	}
	if req.Address != nil {
		addr := toAddressInput(*req.Address)
		upd.Address = &addr
	}
	return upd
}

func toListResponse(r *ports.ListRestaurantsResult) listRestaurantsResponse {
	return listRestaurantsResponse{
		Restaurants: r.Items,
		Pagination: paginationResponse{
			Total:   r.Total,
			Page:    r.Page,
			Pages:   r.Pages,
			HasMore: r.HasMore,
		},
	}
}
