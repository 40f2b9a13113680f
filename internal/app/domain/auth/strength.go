package auth

import (
	"sync"
	"unicode"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Strength is the four-point password score shown next to the signup form.
// Each satisfied criterion adds exactly one point, so the score can only
// grow as criteria are met.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthFair
	StrengthGood
	StrengthStrong
)

var strengthLabels = [...]string{"", "Weak", "Fair", "Good", "Strong"}

func (s Strength) Label() string {
	if s < StrengthNone || int(s) >= len(strengthLabels) {
		return ""
	}
	return strengthLabels[s]
}

// Score rates a password: length >= 8, an upper case letter, a digit, a
// symbol. Empty input scores zero.
func Score(password string) Strength {
	if password == "" {
		return StrengthNone
	}
	score := StrengthNone
	if len(password) >= minPasswordLength {
		score++
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}
	return score
}

// weakSequences are substrings that gut a password regardless of what the
// four criteria say. Matching is advisory: the score never changes, the
// signup form just shows a warning next to the meter.
var weakSequences = []string{
	"password",
	"passwort",
	"motdepasse",
	"123456",
	"abcdef",
	"qwerty",
	"azerty",
	"letmein",
	"welcome",
	"iloveyou",
	"admin",
	"invisithreat",
}

var (
	weakMatcher     ahocorasick.AhoCorasick
	weakMatcherOnce sync.Once
)

// ContainsWeakSequence reports whether the password contains a well-known
// weak substring, case-insensitively.
func ContainsWeakSequence(password string) bool {
	weakMatcherOnce.Do(func() {
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: true,
			MatchOnlyWholeWords:  false,
			MatchKind:            ahocorasick.LeftMostLongestMatch,
			DFA:                  true,
		})
		weakMatcher = builder.Build(weakSequences)
	})
	return len(weakMatcher.FindAll(password)) > 0
}
