// Package render implements the {{token}} substitution used for email
// subjects and bodies. The contract is deliberately small: only tokens
// present in the variable map are replaced, anything else passes
// through verbatim so downstream systems can run their own merge tags.
package render

import (
	"regexp"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Substitute replaces {{key}} tokens with values from vars. Tokens
// without a matching key are left untouched.
func Substitute(content string, vars map[string]string) string {
	if content == "" || len(vars) == 0 {
		return content
	}

	return tokenRe.ReplaceAllStringFunc(content, func(match string) string {
		key := tokenRe.FindStringSubmatch(match)[1]
		if value, ok := vars[key]; ok {
			return value
		}
		return match
	})
}

// ContactVars builds the variable map recognized for subject rendering.
// Only email and fullName are part of the contract.
func ContactVars(email, fullName string) map[string]string {
	return map[string]string{
		"email":    email,
		"fullName": fullName,
	}
}
