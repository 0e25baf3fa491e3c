package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Wallet es la dirección de la cuenta conectada. El valor cero significa
// "sin wallet": un estado válido (pedir conexión), no un error.
type Wallet string

// ParseWallet valida y normaliza una dirección hex.
// Un string vacío devuelve la Wallet cero sin error.
func ParseWallet(raw string) (Wallet, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !common.IsHexAddress(raw) {
		return "", fmt.Errorf("domain.ParseWallet: %q: %w", raw, ErrInvalidWallet)
	}
	// La Data API compara en minúsculas; guardamos la forma canónica.
	return Wallet(strings.ToLower(common.HexToAddress(raw).Hex())), nil
}

// IsZero devuelve true si no hay wallet conectada.
func (w Wallet) IsZero() bool {
	return w == ""
}

// String devuelve la dirección tal cual.
func (w Wallet) String() string {
	return string(w)
}

// Short devuelve la forma abreviada 0x1234…abcd para mostrar en consola.
func (w Wallet) Short() string {
	s := string(w)
	if len(s) <= 12 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
