package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/minyoungbaek/eventory/internal/domain"
	"github.com/minyoungbaek/eventory/internal/transport/http/dto"
)

// pathUUID parses a uuid URL parameter, mapping a malformed value to a
// validation error naming the parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a valid uuid",
		})
	}
	return id, nil
}

// patchField unwraps an optional patch field. An absent field means
// keep the current value; an explicit null would erase a required
// field, so it is recorded in meta and rejected by the caller. The
// nullable review description is handled separately.
func patchField[T any](o dto.Optional[T], name string, meta map[string]string) *T {
	if o.Set && !o.Valid {
		meta[name] = "must not be null"
		return nil
	}
	return o.Ptr()
}
