package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/PetBoarding-BookingService/internal/domain"
)

const (
	maxBodyBytes = 1 << 20

	msgInternalError = "внутренняя ошибка сервера"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой; клиент различает ситуации по code
type ErrorResponse struct {
	Code    domain.ErrorKind `json:"code"`
	Message string           `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку, код выводится из HTTP статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorWithCode(w, status, kindForStatus(status), message)
}

// RespondErrorWithCode отправляет ошибку с явным кодом
func RespondErrorWithCode(w http.ResponseWriter, status int, code domain.ErrorKind, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondErrorWithCode(w, http.StatusBadRequest, domain.KindValidation, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondErrorWithCode(w, http.StatusNotFound, domain.KindNotFound, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondErrorWithCode(w, http.StatusUnauthorized, domain.KindInvalidToken, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondErrorWithCode(w, http.StatusForbidden, domain.KindInvalidToken, message)
}

func RespondConflict(w http.ResponseWriter, code domain.ErrorKind, message string) {
	RespondErrorWithCode(w, http.StatusConflict, code, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondErrorWithCode(w, http.StatusInternalServerError, domain.KindInternal, msgInternalError)
}

// RespondDomainError отправляет ошибку по её стабильному коду (domain.KindOf)
func RespondDomainError(w http.ResponseWriter, err error, message string) {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		RespondInternalError(w)
		return
	}
	RespondErrorWithCode(w, StatusForKind(kind), kind, message)
}

// StatusForKind HTTP статус для кода ошибки
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidStateTransition, domain.KindCapacityConflict:
		return http.StatusConflict
	case domain.KindInvalidToken:
		return http.StatusForbidden
	case domain.KindPaymentCaptureFailed:
		return http.StatusPaymentRequired
	case domain.KindPaymentRefundFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) domain.ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.KindInvalidToken
	case http.StatusConflict:
		return domain.KindCapacityConflict
	default:
		return domain.KindInternal
	}
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	return nil
}

// Validate проверяет модель запроса по тегам validate
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: invalid fields: %s", domain.ErrValidation, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
