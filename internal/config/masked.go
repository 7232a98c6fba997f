package config

import (
	"errors"
	"reflect"

	"go.uber.org/zap"
)

var ErrConfigNotPointer = errors.New("config must be a pointer to a struct")

// Log writes each config as one line. String fields tagged masked:"true" keep
// only their first and last characters.
func Log(logger *zap.Logger, configs ...any) error {
	for _, cfg := range configs {
		v := reflect.ValueOf(cfg)
		if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
			return ErrConfigNotPointer
		}
		v = v.Elem()
		logger.Info("config", zap.Any(v.Type().Name(), maskFields(v)))
	}
	return nil
}

func maskFields(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		ft := t.Field(i)
		if !ft.IsExported() {
			continue
		}

		switch field.Kind() {
		case reflect.Struct:
			out[ft.Name] = maskFields(field)
		case reflect.String:
			if ft.Tag.Get("masked") == "true" {
				out[ft.Name] = mask(field.String())
			} else {
				out[ft.Name] = field.String()
			}
		default:
			out[ft.Name] = field.Interface()
		}
	}
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 2 {
		return "****"
	}
	return s[:1] + "****" + s[len(s)-1:]
}
