package docx

import "regexp"

// emailPattern matches local@domain.tld shaped strings. \w is ASCII only.
// The final label is limited to 2-3 characters; keep it that way, existing
// output depends on it.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// linkURL returns the URL for hyperlink text, adding mailto: to email
// addresses.
func linkURL(text string) string {
	if IsEmail(text) {
		return "mailto:" + text
	}
	return text
}
