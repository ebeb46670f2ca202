package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ProductNotFoundError indica que un producto referenciado por una venta no existe.
// Compatible con errors.Is(err, ErrNotFound).
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %d no encontrado", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError indica que el stock disponible no alcanza lo solicitado.
// Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %d: disponible %d, solicitado %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ValidationError agrupa todas las fallas de validación de un request en un solo error.
// Se construye antes de tocar el almacenamiento. Compatible con errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
