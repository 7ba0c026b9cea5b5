// Package dian reglas de identificación tributaria colombiana (NIT).
package dian

import (
	"errors"
	"fmt"
	"unicode"
)

// pesos del módulo 11 (Orden Administrativa 4 de 1989), aplicados de derecha a izquierda
// sobre la base del NIT. Se guardan alineados a la derecha para bases de hasta 15 dígitos.
var nitWeights = [15]int{71, 67, 59, 53, 47, 43, 41, 37, 29, 23, 19, 17, 13, 7, 3}

var ErrNITFormato = errors.New("dian: NIT sin dígitos suficientes")

// VerificationDigit calcula el dígito de verificación para la base numérica del NIT.
func VerificationDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) < 6 || len(digits) > len(nitWeights) {
		return 0, fmt.Errorf("%w: base de %d dígitos", ErrNITFormato, len(digits))
	}
	offset := len(nitWeights) - len(digits)
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * nitWeights[offset+i]
	}
	r := sum % 11
	if r > 1 {
		r = 11 - r
	}
	return byte('0' + r), nil
}

// ValidateNIT valida "900123456-7" (o con puntos): el último dígito debe ser el DV de los anteriores.
func ValidateNIT(nit string) error {
	digits := extractDigits(nit)
	if len(digits) < 7 {
		return fmt.Errorf("%w: se encontraron %d", ErrNITFormato, len(digits))
	}
	base, dv := digits[:len(digits)-1], digits[len(digits)-1]
	expected, err := VerificationDigit(string(base))
	if err != nil {
		return err
	}
	if dv != expected {
		return fmt.Errorf("dian: dígito de verificación inválido: esperado %c, recibido %c", expected, dv)
	}
	return nil
}

// FormatNIT devuelve "base-dv" calculando el DV.
func FormatNIT(base string) (string, error) {
	dv, err := VerificationDigit(base)
	if err != nil {
		return "", err
	}
	return string(extractDigits(base)) + "-" + string(dv), nil
}

func extractDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return out
}
