package domain

import (
	"regexp"
	"time"
)

// phonePattern — допустимые форматы телефона: "+"? и 10-15 цифр, либо 123-456-7890.
// Матч должен быть полным, частичные совпадения не принимаются.
var phonePattern = regexp.MustCompile(`^(\+?\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// Customer представляет клиента CRM.
type Customer struct {
	ID string
	// Name — отображаемое имя клиента.
	Name string
	// Email уникален в пределах всего хранилища (сравнение без учёта регистра).
	Email string
	// Phone опционален; если задан, должен соответствовать phonePattern.
	Phone     string
	CreatedAt time.Time
}

// ValidatePhone проверяет формат телефона. Пустое значение допустимо.
func ValidatePhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// ValidateInvariants проверяет базовые инварианты клиента и возвращает список замечаний.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if !ValidatePhone(c.Phone) {
		errs = append(errs, ErrInvalidPhone)
	}

	return errs
}
