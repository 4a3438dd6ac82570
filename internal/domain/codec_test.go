package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julex/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Golden Heart Necklace":      "golden-heart-necklace",
		"  18k Gold -- Plated!! ":    "18k-gold-plated",
		"Crystal Drop Earrings (v2)": "crystal-drop-earrings-v2",
		"---":                        "",
		"Émeraude Ring":              "meraude-ring",
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.Slugify(in), in)
	}
}

func TestImagesRoundTrip(t *testing.T) {
	imgs := []string{"/img/a.jpg", "/img/b.jpg"}
	enc := domain.EncodeImages(imgs)
	assert.Equal(t, imgs, domain.DecodeImages(enc))

	assert.Equal(t, "[]", domain.EncodeImages(nil))
	for _, in := range []string{"", "  ", "null", "not json"} {
		got := domain.DecodeImages(in)
		require.NotNil(t, got, in)
		assert.Empty(t, got, in)
	}
}

func TestViewerFromUser(t *testing.T) {
	var nobody *domain.User
	assert.True(t, nobody.Viewer().IsAnonymous())

	c := &domain.User{ID: "u1", Role: domain.RoleCustomer}
	assert.Equal(t, domain.KindCustomer, c.Viewer().Kind)

	pending := &domain.User{ID: "u2", Role: domain.RoleReseller}
	assert.False(t, pending.Viewer().IsVerifiedReseller())

	verified := &domain.User{ID: "u3", Role: domain.RoleReseller, Reseller: &domain.Reseller{IsVerified: true}}
	assert.True(t, verified.Viewer().IsVerifiedReseller())

	admin := &domain.User{ID: "u4", Role: domain.RoleAdmin}
	assert.Equal(t, domain.KindCustomer, admin.Viewer().Kind)
}

func TestErrorsMatchSentinels(t *testing.T) {
	assert.True(t, errors.Is(domain.NotFound("product", "x"), domain.ErrNotFound))
	assert.True(t, errors.Is(&domain.StockError{ProductID: "p", Requested: 3, Available: 1}, domain.ErrInsufficientStock))
	err := domain.Invalid("name", "required")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "name: required")
}
