package stores

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// decodeOne runs a single-document decode. No matching document is not an
// error: it yields nil, nil.
func decodeOne[T any](decode func(v any) error) (*T, error) {
	var doc T
	if err := decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
