package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "mens-t-shirt-2024", GenerateSlug("Men's T-Shirt!! 2024"))
	assert.Equal(t, "blue-cotton-t-shirt", GenerateSlug("Blue Cotton T-Shirt"))
	assert.Equal(t, "sale", GenerateSlug("  ***SALE***  "))
	assert.Equal(t, "a-b", GenerateSlug("a    b"))
	assert.Equal(t, "", GenerateSlug("!!!"))
}
