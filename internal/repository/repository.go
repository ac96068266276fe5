// Package repository provides one persistence adapter per document type,
// all written against the narrow store.Store capability.
package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

func decodeOne[T any](raw bson.Raw) (*T, error) {
	var v T
	if err := bson.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &v, nil
}

func decodeAll[T any](raws []bson.Raw) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := decodeOne[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}
