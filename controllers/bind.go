package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/princinho/taskbackend/utils"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseDate(fl.Field().String())
			return err == nil
		})
	}
}

// normalizer is implemented by request bodies that canonicalise their fields
// before validation.
type normalizer interface {
	Normalize()
}

var errTrailingData = errors.New("request body must contain a single JSON object")

// bindJSON decodes and validates the request body. With strict set, fields
// the target struct does not declare are rejected. On failure the response
// has already been written and false is returned.
func bindJSON(c *gin.Context, out interface{}, strict bool) bool {
	if c.Request.Body == nil {
		respondError(c, messages.InvalidBody, nil)
		return false
	}

	if err := decodeJSON(c.Request.Body, out, strict); err != nil {
		respondBindError(c, err, out)
		return false
	}

	if n, ok := out.(normalizer); ok {
		n.Normalize()
	}

	if err := binding.Validator.ValidateStruct(out); err != nil {
		respondBindError(c, err, out)
		return false
	}
	return true
}

// decodeJSON reads exactly one JSON value from r; anything after it is an error.
func decodeJSON(r io.Reader, out interface{}, strict bool) error {
	dec := json.NewDecoder(r)
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

func bindQuery(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindQuery(out); err != nil {
		respondBindError(c, err, out)
		return false
	}
	return true
}

const invalidBodyDetail = "request body must be a single well-formed JSON object"

func respondBindError(c *gin.Context, err error, out interface{}) {
	if fields := validationFields(err, out); fields != nil {
		respondError(c, messages.ValidationError, fields)
		return
	}
	respondError(c, messages.InvalidBody, invalidBodyDetail)
}

// validationFields returns one entry per violated rule, or nil when err is not
// a validation problem (bad syntax, empty body).
func validationFields(err error, out interface{}) []FieldError {
	rootType := baseStructType(out)

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, FieldError{
				Field:   jsonFieldName(rootType, fe.StructField()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		}}
	}

	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return []FieldError{{
			Field:   strings.Trim(name, `"`),
			Rule:    "unknown",
			Message: "is not allowed",
		}}
	}

	return nil
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		return t
	}
	return nil
}

func jsonFieldName(rootType reflect.Type, structField string) string {
	if rootType == nil {
		return structField
	}
	sf, ok := rootType.FieldByName(structField)
	if !ok {
		return structField
	}
	for _, tagKey := range []string{"json", "form"} {
		if name, _, _ := strings.Cut(sf.Tag.Get(tagKey), ","); name != "" && name != "-" {
			return name
		}
	}
	return structField
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "cannot be more than " + param + " characters long"
	case "oneof":
		return "must be one of " + strings.Join(oneOfValues(param), ", ")
	case "isodate":
		return "must be a date (YYYY-MM-DD or RFC 3339)"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}

func oneOfValues(param string) []string {
	var out []string
	for param != "" {
		param = strings.TrimSpace(param)
		if strings.HasPrefix(param, "'") {
			end := strings.Index(param[1:], "'")
			if end < 0 {
				out = append(out, param[1:])
				break
			}
			out = append(out, param[1:end+1])
			param = param[end+2:]
			continue
		}
		word, rest, _ := strings.Cut(param, " ")
		out = append(out, word)
		param = rest
	}
	return out
}
