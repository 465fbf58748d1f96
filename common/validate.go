package common

import "regexp"

// Regex para validar o formato basico de um endereco de email
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
