package domain

import "errors"

// Errores centinela del dominio. Los adapters los envuelven con %w y las
// capas superiores los distinguen con errors.Is.
var (
	// ErrFetchFailed agrupa cualquier fallo al obtener datos remotos
	// (timeout, 4xx, 5xx, decode, campo malformado) tras agotar los reintentos.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMalformedNumber indica un campo decimal de la API que no se puede parsear.
	ErrMalformedNumber = errors.New("malformed numeric field")

	// ErrMalformedTimestamp indica una fecha de la API que no se puede parsear.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrInvalidWallet indica una dirección que no es hex de 20 bytes.
	ErrInvalidWallet = errors.New("invalid wallet address")

	// ErrReviewFailed es el único error visible de la revisión de tesis.
	ErrReviewFailed = errors.New("thesis review failed")

	// ErrThesisTooShort indica una tesis por debajo del mínimo de caracteres.
	ErrThesisTooShort = errors.New("thesis too short")

	// ErrInvalidConviction indica una convicción fuera de 1..5.
	ErrInvalidConviction = errors.New("conviction must be between 1 and 5")

	// ErrNotFound indica que el trade pedido no existe para la wallet.
	ErrNotFound = errors.New("not found")
)
