package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El transactor de checkout los envuelve con fmt.Errorf("%w: detalle")
// para que el handler HTTP clasifique con errors.Is sin perder el mensaje.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("modificación concurrente detectada")
	ErrStoreUnavailable       = errors.New("almacén de datos no disponible")
	ErrBarcodeOwnedByOther    = errors.New("código de barras registrado por otro empleado")
)
