package validators

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/models"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "int_number", isIntNumber)
	mustRegister(v, "nonneg_int", isNonNegativeInt)
	mustRegister(v, "positive_decimal", isPositiveDecimal)
	mustRegister(v, "establishment_status", isEstablishmentStatus)
	mustRegister(v, "selection_id", isSelectionID)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func isIntNumber(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(fl.Field().String())
	return err == nil
}

func isNonNegativeInt(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Field().String())
	return err == nil && n >= 0
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	f, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f > 0
}

func isEstablishmentStatus(fl validator.FieldLevel) bool {
	return slices.Contains(models.EstablishmentStatuses, fl.Field().String())
}

func isSelectionID(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Field().String())
	return err == nil && n > 0
}

// --------- Forms ---------

type clientForm struct {
	Nombre    string `form:"nombre" validate:"required"`
	Apellido  string `form:"apellido" validate:"required"`
	Documento string `form:"documento" validate:"required"`
	Telefono  string `form:"telefono" validate:"required"`
	Email     string `form:"email" validate:"email"`
	Edad      string `form:"edad" validate:"int_number,nonneg_int"`
}

type establishmentForm struct {
	Nombre    string `form:"nombre" validate:"required"`
	Tipo      string `form:"tipo" validate:"required"`
	Direccion string `form:"direccion" validate:"required"`
	Ciudad    string `form:"ciudad" validate:"required"`
	Capacidad string `form:"capacidad" validate:"required"`
	Estado    string `form:"estado" validate:"establishment_status"`
	Telefono  string `form:"telefono" validate:"required"`
}

type reservationForm struct {
	Fecha             string `form:"fecha" validate:"required"`
	Descripcion       string `form:"descripcion"`
	Valor             string `form:"valor" validate:"required,positive_decimal"`
	Estado            string `form:"estado" validate:"required"`
	ClienteID         string `form:"cliente_id" validate:"required,selection_id"`
	EstablecimientoID string `form:"establecimiento_id" validate:"required,selection_id"`
}

type registrationForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Email    string `form:"email" validate:"required"`
}

// messages maps "field.tag" to the text shown to the user.
var messages = map[string]string{
	"nombre.required":    "El nombre es obligatorio",
	"apellido.required":  "El apellido es obligatorio",
	"documento.required": "El documento es obligatorio",
	"telefono.required":  "El teléfono es obligatorio",
	"email.email":        "Correo electrónico inválido",
	"edad.int_number":    "La edad debe ser un número",
	"edad.nonneg_int":    "La edad debe ser mayor o igual a 0",

	"tipo.required":                   "El tipo es obligatorio",
	"direccion.required":              "La dirección es obligatoria",
	"ciudad.required":                 "La ciudad es obligatoria",
	"capacidad.required":              "La capacidad es obligatoria",
	"estado.establishment_status":     "El estado debe ser Disponible o No Disponible",
	"fecha.required":                  "La fecha es obligatoria",
	"valor.required":                  "El valor es obligatorio",
	"valor.positive_decimal":          "El valor debe ser un número mayor a 0",
	"estado.required":                 "El estado es obligatorio",
	"cliente_id.required":             "Debe seleccionar un cliente",
	"cliente_id.selection_id":         "Debe seleccionar un cliente",
	"establecimiento_id.required":     "Debe seleccionar un establecimiento",
	"establecimiento_id.selection_id": "Debe seleccionar un establecimiento",

	"username.required": "El usuario es obligatorio",
	"password.required": "La contraseña es obligatoria",
	"email.required":    "El correo electrónico es obligatorio",
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := &FieldErrors{}
	for _, v := range verrs {
		msg, ok := messages[v.Field()+"."+v.Tag()]
		if !ok {
			msg = v.Field() + " inválido"
		}
		fe.Add(v.Field(), msg)
	}
	return fe.orNil()
}

// --------- Schemas ---------

func ValidateClient(d Draft) (models.ClientInput, error) {
	form := clientForm{
		Nombre:    d.trimmed("nombre"),
		Apellido:  d.trimmed("apellido"),
		Documento: d.trimmed("documento"),
		Telefono:  d.trimmed("telefono"),
		Email:     d.trimmed("email"),
		Edad:      d.trimmed("edad"),
	}
	if err := check(&form); err != nil {
		return models.ClientInput{}, err
	}

	edad, _ := strconv.Atoi(form.Edad)
	return models.ClientInput{
		Nombre:    form.Nombre,
		Apellido:  form.Apellido,
		Documento: form.Documento,
		Telefono:  form.Telefono,
		Email:     form.Email,
		Edad:      edad,
	}, nil
}

func ValidateEstablishment(d Draft) (models.EstablishmentInput, error) {
	form := establishmentForm{
		Nombre:    d.trimmed("nombre"),
		Tipo:      d.trimmed("tipo"),
		Direccion: d.trimmed("direccion"),
		Ciudad:    d.trimmed("ciudad"),
		Capacidad: d.trimmed("capacidad"),
		Estado:    d.trimmed("estado"),
		Telefono:  d.trimmed("telefono"),
	}
	if err := check(&form); err != nil {
		return models.EstablishmentInput{}, err
	}

	return models.EstablishmentInput(form), nil
}

func ValidateReservation(d Draft) (models.ReservationInput, error) {
	form := reservationForm{
		Fecha:             d.trimmed("fecha"),
		Descripcion:       d.trimmed("descripcion"),
		Valor:             d.trimmed("valor"),
		Estado:            d.trimmed("estado"),
		ClienteID:         d.trimmed("cliente_id"),
		EstablecimientoID: d.trimmed("establecimiento_id"),
	}
	if err := check(&form); err != nil {
		return models.ReservationInput{}, err
	}

	clienteID, _ := strconv.Atoi(form.ClienteID)
	establecimientoID, _ := strconv.Atoi(form.EstablecimientoID)
	return models.ReservationInput{
		Fecha:             form.Fecha,
		Descripcion:       form.Descripcion,
		Valor:             form.Valor,
		Estado:            form.Estado,
		ClienteID:         clienteID,
		EstablecimientoID: establecimientoID,
	}, nil
}

// ValidateRegistration only checks presence; password rules belong to the API.
func ValidateRegistration(d Draft) (models.AppUser, error) {
	form := registrationForm{
		Username: d.trimmed("username"),
		Password: d.Get("password"),
		Email:    d.trimmed("email"),
	}
	if strings.TrimSpace(form.Password) == "" {
		form.Password = ""
	}
	if err := check(&form); err != nil {
		return models.AppUser{}, err
	}

	role := d.trimmed("role")
	if role == "" {
		role = models.DefaultUserRole
	}
	return models.AppUser{
		Username: form.Username,
		Password: form.Password,
		Email:    form.Email,
		Role:     role,
	}, nil
}
