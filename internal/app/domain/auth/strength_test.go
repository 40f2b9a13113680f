package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     Strength
	}{
		{"empty password scores zero", "", StrengthNone},
		{"short lowercase scores zero", "abc", StrengthNone},
		{"length alone scores one", "abcdefgh", StrengthWeak},
		{"length and upper case score two", "Abcdefgh", StrengthFair},
		{"length, upper case and digit score three", "Abcdefg1", StrengthGood},
		{"all four criteria score four", "Abcdef1!", StrengthStrong},
		{"criteria count without length", "A1!", StrengthGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.password))
		})
	}
}

func TestScoreNeverDropsWhenCriteriaAreAdded(t *testing.T) {
	// Each step adds one criterion on top of the previous password.
	steps := []string{"a", "abcdefgh", "Abcdefgh", "Abcdefg1", "Abcdef1!"}
	prev := StrengthNone
	for _, password := range steps {
		score := Score(password)
		assert.GreaterOrEqual(t, score, prev, "score dropped at %q", password)
		prev = score
	}
}

func TestStrengthLabel(t *testing.T) {
	assert.Equal(t, "", StrengthNone.Label())
	assert.Equal(t, "Weak", StrengthWeak.Label())
	assert.Equal(t, "Fair", StrengthFair.Label())
	assert.Equal(t, "Good", StrengthGood.Label())
	assert.Equal(t, "Strong", StrengthStrong.Label())
	assert.Equal(t, "", Strength(42).Label())
}

func TestContainsWeakSequence(t *testing.T) {
	t.Run("flags known sequences", func(t *testing.T) {
		assert.True(t, ContainsWeakSequence("password123"))
		assert.True(t, ContainsWeakSequence("myQWERTYkey"))
		assert.True(t, ContainsWeakSequence("xx123456xx"))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		assert.True(t, ContainsWeakSequence("PaSsWoRd!"))
	})

	t.Run("leaves unrelated passwords alone", func(t *testing.T) {
		assert.False(t, ContainsWeakSequence("V4st.Cobalt-Meadow"))
		assert.False(t, ContainsWeakSequence(""))
	})
}
