package slug_test

import (
	"fmt"
	"testing"

	"storefront/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Gaming Laptop":        "gaming-laptop",
		"  Wireless   Mouse  ": "wireless-mouse",
		"USB-C Hub (4 Port)":   "usb-c-hub-4-port",
		"Café Déco":            "café-déco",
		"100% Cotton T-Shirt":  "100-cotton-t-shirt",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "input %q", in)
	}
}

func TestUnique_FirstFree(t *testing.T) {
	s, err := slug.Unique("Gaming Laptop", func(string) (bool, error) {
		return false, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "gaming-laptop", s)
}

func TestUnique_AppendsSuffix(t *testing.T) {
	taken := map[string]bool{"gaming-laptop": true, "gaming-laptop-2": true}
	s, err := slug.Unique("Gaming Laptop", func(candidate string) (bool, error) {
		return taken[candidate], nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "gaming-laptop-3", s)
}

func TestUnique_TwoCreationsDoNotCollide(t *testing.T) {
	taken := map[string]bool{}
	exists := func(candidate string) (bool, error) { return taken[candidate], nil }

	first, err := slug.Unique("Gaming Laptop", exists)
	assert.NoError(t, err)
	taken[first] = true

	second, err := slug.Unique("Gaming Laptop", exists)
	assert.NoError(t, err)

	assert.Equal(t, "gaming-laptop", first)
	assert.Equal(t, "gaming-laptop-2", second)
}

func TestUnique_QueryErrorPropagates(t *testing.T) {
	want := fmt.Errorf("connection reset")
	_, err := slug.Unique("Gaming Laptop", func(string) (bool, error) {
		return false, want
	})
	assert.ErrorIs(t, err, want)
}
