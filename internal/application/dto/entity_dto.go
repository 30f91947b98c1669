package dto

import "time"

// CreateNamedEntityRequest alta manual de cliente, exportador, importador o productor.
type CreateNamedEntityRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// NamedEntityResponse salida de una entidad con nombre.
type NamedEntityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
