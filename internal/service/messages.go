package service

import (
	"errors"
	"fmt"

	"github.com/chefcommunity/client/internal/client"
)

// User-facing copy.
const (
	MsgConnection       = "Error de conexión"
	MsgAuthLost         = "Autenticación perdida. Por favor inicia sesión de nuevo."
	MsgLoginToLike      = "Por favor inicia sesión para guardar recetas."
	MsgLoginToFollow    = "Por favor inicia sesión para seguir usuarios."
	MsgLoginToPlan      = "Debes iniciar sesión para planificar comidas."
	MsgPlanAdded        = "¡Receta añadida a tu Plan Semanal!"
	MsgPickDate         = "Por favor selecciona una fecha"
	MsgPlanFailed       = "Error al añadir al plan"
	MsgLoginFailed      = "Error al iniciar sesión"
	MsgRegisterFailed   = "Error al registrarse"
	MsgCollectionFailed = "Error al guardar la colección"
	MsgReloadFailed     = "No se pudo actualizar el perfil"
	MsgEmptyFeed        = "NO SE ENCONTRARON CINTAS. SÉ EL PRIMERO EN SUBIR UNA."
)

// inlineMessage turns err into the text shown next to the control that
// failed. A partial collection save reports its progress. API errors show
// the server's message, then fallback, then "Error <status>: ...";
// transport failures show MsgConnection.
func inlineMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var pe *PartialAddError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: se añadieron %d de %d recetas a %q; falló la receta %d (%s)",
			MsgCollectionFailed, len(pe.Added), pe.Total, pe.Collection.Name, pe.Failed,
			inlineMessage(pe.Err, ""))
	}
	if apiErr, ok := client.AsError(err); ok {
		if apiErr.ServerError != "" {
			return apiErr.ServerError
		}
		if fallback != "" {
			return fallback
		}
		return apiErr.Error()
	}
	if client.IsTransport(err) {
		return MsgConnection
	}
	return err.Error()
}
