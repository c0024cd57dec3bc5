package cart

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 12
)

// IDGenerator produces the random suffix of a cart line id.
type IDGenerator func() string

// NewIDGenerator returns a nanoid generator over a lowercase alphanumeric alphabet.
func NewIDGenerator() (IDGenerator, error) {
	gen, err := nanoid.CustomASCII(idAlphabet, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return gen, nil
}

// lineID builds "<productID>-<random>" so distinct adds of one product never collide.
func lineID(productID string, gen IDGenerator) string {
	return productID + "-" + gen()
}
