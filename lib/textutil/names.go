package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// honorifics stripped from the front of display names. peerage titles
// are deliberately not in this list: "Lord Alton of Liverpool" must keep
// its title, "Sir Keir Starmer" must not
var honorifics = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "miss": {}, "mx": {},
	"dr": {}, "prof": {}, "professor": {},
	"sir": {}, "dame": {},
	"rt": {}, "hon": {}, "right": {}, "honourable": {},
	"rev": {}, "revd": {}, "reverend": {}, "canon": {},
}

// peerage titles that mark a Lords-style name
var peerageTitles = map[string]struct{}{
	"lord": {}, "lady": {}, "baron": {}, "baroness": {},
	"earl": {}, "countess": {}, "viscount": {}, "viscountess": {},
	"duke": {}, "duchess": {}, "marquess": {}, "marchioness": {},
	"bishop": {}, "archbishop": {}, "the": {},
}

// surname particles that travel with the final token, e.g. "van der Berg"
var surnameParticles = map[string]struct{}{
	"van": {}, "von": {}, "de": {}, "der": {}, "den": {},
	"di": {}, "du": {}, "da": {}, "la": {}, "le": {}, "st": {},
}

// StripTitle removes leading honorifics ("Ms", "Dr", "Rt Hon", ...) from a
// display name. Peerage titles are left in place.
func StripTitle(name string) string {
	fields := strings.Fields(name)
	i := 0
	for i < len(fields) {
		key := strings.ToLower(strings.Trim(fields[i], "."))
		if _, ok := honorifics[key]; !ok {
			break
		}
		i++
	}
	if i == len(fields) {
		// a name that is nothing but titles is left alone
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[i:], " ")
}

// CleanName applies the display-name cleaning used across the dataset:
// honorifics stripped, commas and full stops removed. Removing
// punctuation fixes occasional upstream forms such as "Angela, E. Smith".
func CleanName(name string) string {
	name = StripTitle(name)
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, ".", "")
	name = strings.TrimSpace(whitespaceRegex.ReplaceAllString(name, " "))
	return name
}

// SplitPeerageTitle splits a territorial peerage name into its title, the
// family name and the territorial designation:
//
//	"Baroness Smith of Basildon" -> ("Baroness", "Smith", "Basildon")
//	"The Earl of Devon"          -> ("The Earl", "", "Devon")
//
// All three results are empty when the name has no " of " designation.
func SplitPeerageTitle(name string) (title, family, place string) {
	idx := strings.Index(name, " of ")
	if idx < 0 {
		return "", "", ""
	}
	place = strings.TrimSpace(name[idx+len(" of "):])

	left := strings.Fields(name[:idx])
	i := 0
	for i < len(left) {
		if _, ok := peerageTitles[strings.ToLower(left[i])]; !ok {
			break
		}
		i++
	}
	title = strings.Join(left[:i], " ")
	family = strings.Join(left[i:], " ")
	return title, family, place
}

// Surname returns the final token of a name along with any particles
// attached to it ("Berg" does not travel without its "van der").
func Surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	i := len(fields) - 1
	for i > 0 {
		if _, ok := surnameParticles[strings.ToLower(fields[i-1])]; !ok {
			break
		}
		i--
	}
	return strings.Join(fields[i:], " ")
}

// ShortName derives the lookup form of a cleaned name: the family name of
// a territorial peerage (falling back to the designation for titles like
// "The Earl of Devon"), otherwise the surname.
func ShortName(name string) string {
	if strings.Contains(name, " of ") {
		_, family, place := SplitPeerageTitle(name)
		if family != "" {
			return family
		}
		return place
	}
	return Surname(name)
}

// NormalizeName produces the canonical matching form of a name: lowercase
// with all whitespace removed.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}
