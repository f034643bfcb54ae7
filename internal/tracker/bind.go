package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/errs"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// formDecoder fills a request struct from url-encoded or multipart form values.
type formDecoder interface {
	decodeForm(get func(string) string) []errs.FieldError
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// bind decodes the request body into dst and validates it. Failures are
// returned as *errs.HTTPError with status 400.
func bind(w http.ResponseWriter, r *http.Request, dst formDecoder) error {
	if isJSON(r) {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return errs.NewBadRequestError(fmt.Sprintf("invalid request body: %v", err), nil)
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return errs.NewBadRequestError(fmt.Sprintf("invalid form body: %v", err), nil)
		}
		if fields := dst.decodeForm(r.PostFormValue); fields != nil {
			return errs.NewBadRequestError("Validation failed", fields)
		}
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.NewBadRequestError(err.Error(), nil)
	}

	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "gte":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		default:
			msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
		fields = append(fields, errs.FieldError{Field: fe.Field(), Error: msg})
	}
	return errs.NewBadRequestError("Validation failed", fields)
}

type createUserRequest struct {
	models.CreateUserRequest
}

func (req *createUserRequest) decodeForm(get func(string) string) []errs.FieldError {
	req.Username = get("username")
	return nil
}

type createExerciseRequest struct {
	models.CreateExerciseRequest
}

func (req *createExerciseRequest) decodeForm(get func(string) string) []errs.FieldError {
	req.Description = get("description")
	req.Date = get("date")
	if raw := strings.TrimSpace(get("duration")); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(d, 0) || math.IsNaN(d) {
			return []errs.FieldError{{Field: "duration", Error: "must be a number"}}
		}
		req.Duration = &d
	}
	return nil
}
