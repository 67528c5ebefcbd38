package ordernumber

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Format(t *testing.T) {
	gen := NewGenerator()
	pattern := regexp.MustCompile(`^PS-[0-9A-F]{8}$`)

	for range 50 {
		assert.Regexp(t, pattern, gen.Next())
	}
}

func TestGenerator_Varies(t *testing.T) {
	gen := NewGenerator()
	assert.NotEqual(t, gen.Next(), gen.Next())
}
