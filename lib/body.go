package lib

import (
	"encoding/json"
	"net/http"
)

// ExtractAndValidateBody decodes the request body into T. Unknown fields
// are tolerated; the search endpoints receive bodies from several
// frontend generations.
func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &body, nil
}
