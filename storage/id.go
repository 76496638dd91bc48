package storage

import (
	"errors"

	"github.com/google/uuid"
)

type IDGenerator interface {
	Generate() []byte
}

var ErrNotEnoughBytesInGenerator = errors.New("id generator must return exactly 16 bytes")

func nextID(generator IDGenerator) (uuid.UUID, error) {
	if generator == nil {
		return uuid.New(), nil
	}

	id, err := uuid.FromBytes(generator.Generate())

	if err != nil {
		return uuid.Nil, ErrNotEnoughBytesInGenerator
	}

	return id, nil
}
