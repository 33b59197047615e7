// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides reflection helpers, in particular
// for setting struct fields from `default:` tags.
package reflectx

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"cogentcore.org/meshview/base/errors"
)

// SetFromDefaultTags sets the values of fields in the given struct
// based on `default:` tags. Nested structs are handled recursively.
// Slice fields take a list of values separated by spaces or commas.
// It returns the joined errors of all fields that could not be set.
func SetFromDefaultTags(obj any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected non-nil pointer to struct, got %T", obj)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected pointer to struct, got %T", obj)
	}
	return setStructDefaults(v)
}

func setStructDefaults(v reflect.Value) error {
	var errs []error
	typ := v.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Type.Kind() == reflect.Struct {
			errs = append(errs, setStructDefaults(fv))
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok {
			continue
		}
		if err := SetString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SetString sets the settable value v from its string representation.
// Types implementing [encoding.TextUnmarshaler] parse themselves.
func SetString(v reflect.Value, s string) error {
	if v.CanAddr() {
		if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return tu.UnmarshalText([]byte(s))
		}
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
		sl := reflect.MakeSlice(v.Type(), len(fields), len(fields))
		for i, fs := range fields {
			if err := SetString(sl.Index(i), fs); err != nil {
				return err
			}
		}
		v.Set(sl)
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}
