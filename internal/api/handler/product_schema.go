package handler

import (
	"github.com/storefront/shop-api/internal/core/ports"
)

type createProductRequest struct {
	Title       string   `json:"title"       validate:"required,min=5,max=70"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Photo       string   `json:"photo"`
}

func (r *createProductRequest) normalize() {
	trim(&r.Title)
	trim(&r.Description)
	trim(&r.Photo)
}

func (r createProductRequest) toInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		Photo:       r.Photo,
	}
}

type updateProductRequest struct {
	Title       *string  `json:"title"       validate:"omitnil,min=5,max=70"`
	Description *string  `json:"description" validate:"omitnil,min=10"`
	Price       *float64 `json:"price"       validate:"omitnil,gte=0"`
	Photo       *string  `json:"photo"`
}

func (r *updateProductRequest) normalize() {
	trim(r.Title)
	trim(r.Description)
	trim(r.Photo)
}

func (r updateProductRequest) toPatch() ports.ProductPatch {
	return ports.ProductPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Photo:       r.Photo,
	}
}
