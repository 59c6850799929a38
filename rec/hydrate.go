package rec

import (
	"fmt"
	"reflect"
	"time"
)

// Pull reads every scalar binding of the entity from the platform into the
// corresponding Go struct field. Sublist and subrecord bindings are left
// untouched; access those through Sublist and Subrecord.
//
// The entity must be the record or line struct pointer itself, not its
// embedded base.
func Pull(entity Entity) error {
	v, info, err := entityStruct(entity)
	if err != nil {
		return err
	}
	for _, b := range info.Bindings {
		field := v.Field(b.FieldIndex)
		switch b.Kind {
		case KindText:
			s, err := entity.GetText(b.Name)
			if err != nil {
				return fmt.Errorf("pull %s: %w", b.Name, err)
			}
			if err := assignValue(field, s); err != nil {
				return fmt.Errorf("pull %s: %w", b.Name, err)
			}
		case KindValue, KindNumeric:
			val, err := entity.GetValue(b.Name)
			if err != nil {
				return fmt.Errorf("pull %s: %w", b.Name, err)
			}
			if val == nil {
				continue
			}
			if err := assignValue(field, val); err != nil {
				return fmt.Errorf("pull %s: %w", b.Name, err)
			}
		}
	}
	return nil
}

// Push writes every non-zero scalar struct field of the entity to the
// platform. Zero-valued fields are skipped so a partially filled struct
// only touches the fields it carries.
func Push(entity Entity) error {
	v, info, err := entityStruct(entity)
	if err != nil {
		return err
	}
	for _, b := range info.Bindings {
		field := v.Field(b.FieldIndex)
		switch b.Kind {
		case KindText:
			if field.IsZero() {
				continue
			}
			if err := entity.SetText(b.Name, textOf(field.Interface())); err != nil {
				return fmt.Errorf("push %s: %w", b.Name, err)
			}
		case KindValue, KindNumeric:
			if field.IsZero() {
				continue
			}
			if err := entity.SetValue(b.Name, field.Interface()); err != nil {
				return fmt.Errorf("push %s: %w", b.Name, err)
			}
		}
	}
	return nil
}

func entityStruct(entity Entity) (reflect.Value, *TypeInfo, error) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("rec: entity must be a non-nil struct pointer")
	}
	v = v.Elem()
	info := entity.typeInfo()
	if info == nil {
		return reflect.Value{}, nil, fmt.Errorf("rec: entity is not initialized")
	}
	if v.Type() != info.GoType {
		return reflect.Value{}, nil, fmt.Errorf("rec: pass the %s entity pointer, not its embedded base", info.GoType.Name())
	}
	return v, info, nil
}

// assignValue sets a struct field from a platform value, converting across
// the numeric, string, bool, and time representations the platform hands
// back.
func assignValue(field reflect.Value, val any) error {
	if field.Kind() == reflect.Ptr {
		ptr := reflect.New(field.Type().Elem())
		if err := assignValue(ptr.Elem(), val); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	rv := reflect.ValueOf(val)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(textOf(val))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toNumber(val)
		if err != nil {
			return err
		}
		field.SetInt(int64(n))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toNumber(val)
		if err != nil {
			return err
		}
		field.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		n, err := toNumber(val)
		if err != nil {
			return err
		}
		field.SetFloat(n)
		return nil
	case reflect.Bool:
		b, ok := val.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", val)
		}
		field.SetBool(b)
		return nil
	default:
		if field.Type() == reflect.TypeOf(time.Time{}) {
			t, err := toTime(val)
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(t))
			return nil
		}
		return fmt.Errorf("cannot assign %T to %s", val, field.Type())
	}
}

func toTime(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02",
		} {
			t, err := time.Parse(layout, v)
			if err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse time string: %q", v)
	default:
		return time.Time{}, fmt.Errorf("cannot coerce %T to time.Time", val)
	}
}
