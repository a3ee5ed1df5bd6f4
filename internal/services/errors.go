package services

import (
	"errors"
	"fmt"
	"strings"
)

// Common service errors
var (
	ErrNotFound          = errors.New("registro no encontrado")
	ErrInvalidPassword   = errors.New("contraseña inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInvalidState      = errors.New("transición de estado inválida")
	ErrDuplicate         = errors.New("registro duplicado")
	ErrLiquidationLocked = errors.New("la liquidación ya no es editable")
	ErrNoActiveContract  = errors.New("el trabajador no tiene contrato vigente en el período")
	ErrCompanyMismatch   = errors.New("el trabajador no pertenece a la empresa")
)

// ValidationError reports missing or malformed input fields
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "datos inválidos: " + strings.Join(e.Fields, ", ")
}

// PeriodError is returned for periods after the current month
type PeriodError struct {
	Year  int
	Month int
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("el período %04d-%02d es futuro", e.Year, e.Month)
}

// MissingPrerequisiteError is returned when a book or export is requested for a period without liquidations
type MissingPrerequisiteError struct {
	CompanyID uint
	Year      int
	Month     int
}

func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("no hay liquidaciones para el período %04d-%02d de la empresa %d; genere las liquidaciones primero",
		e.Year, e.Month, e.CompanyID)
}

// StateTransitionError is returned for a status change outside the lifecycle
type StateTransitionError struct {
	From  string
	Event string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("no se puede aplicar %q a una liquidación en estado %q", e.Event, e.From)
}

// Is lets callers match any transition failure with ErrInvalidState
func (e *StateTransitionError) Is(target error) bool {
	return target == ErrInvalidState
}
