package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail(" Alice@Example.com "))
	assert.Equal(t, "alice@example.com", NormalizeEmail("alice@example.com"))
	assert.Equal(t, "bob@example.com", NormalizeEmail("\tBOB@EXAMPLE.COM\n"))
}
