package validators

import "regexp"

// Formatos brasileiros usados no cadastro de clientes e funcionários.
var (
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}-\d{3}$`)
)

func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(phone)
}

func IsCPFValid(cpf string) bool {
	return cpfPattern.MatchString(cpf)
}

func IsCNPJValid(cnpj string) bool {
	return cnpjPattern.MatchString(cnpj)
}

func IsZipCodeValid(zip string) bool {
	return zipPattern.MatchString(zip)
}
