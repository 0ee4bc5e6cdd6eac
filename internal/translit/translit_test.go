package translit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLatin(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain word", "Београд", "Beograd"},
		{"digraph lj", "Љубљана", "Ljubljana"},
		{"digraph nj and dz", "Коњиц и џеп", "Konjic i džep"},
		{"diacritics", "Ђорђе Жарковић Ћирић Чачак Шабац", "Đorđe Žarković Ćirić Čačak Šabac"},
		{"digits and punctuation pass through", "Нови Сад, бр. 21", "Novi Sad, br. 21"},
		{"latin text unchanged", "vec latinica 123", "vec latinica 123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToLatin(tt.in))
		})
	}
}

func TestIsCyrillic(t *testing.T) {
	assert.True(t, IsCyrillic("аукција"))
	assert.True(t, IsCyrillic("mixed скрипт"))
	assert.False(t, IsCyrillic("latin only"))
	assert.False(t, IsCyrillic(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Stan u Beogradu", Normalize("Стан у Београду"))
	assert.Equal(t, "already latin", Normalize("already latin"))
}

func TestSlugBase(t *testing.T) {
	assert.Equal(t, "stan-u-beogradu", SlugBase("Стан у Београду", "auction"))
	assert.Equal(t, "novi-sad", SlugBase("Novi Sad", "location"))
	assert.Equal(t, "unnamed-auction", SlugBase("!!!", "Auction"))
	assert.Equal(t, "unnamed-tag", SlugBase("", "tag"))
}

func TestUniqueSlug(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
	}{
		{"no collision", "aukcija", nil, "aukcija"},
		{"bare base taken", "aukcija", []string{"aukcija"}, "aukcija-1"},
		{"max suffix wins over gaps", "aukcija", []string{"aukcija", "aukcija-1", "aukcija-3"}, "aukcija-4"},
		{"suffix without bare base", "aukcija", []string{"aukcija-1"}, "aukcija-2"},
		{"non numeric suffix ignored", "aukcija", []string{"aukcija-nova"}, "aukcija"},
		{"unrelated slugs ignored", "aukcija", []string{"druga-aukcija"}, "aukcija"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueSlug(tt.base, tt.existing))
		})
	}
}
