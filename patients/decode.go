package patients

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

var (
	vitalsType = reflect.TypeOf(Vitals{})
	anyMapType = reflect.TypeOf(map[string]any{})
)

// DecodePatient builds a Patient out of a JSON object. An attribute with an unexpected
// type is left empty and reported in the returned error, the other attributes are kept.
func DecodePatient(raw map[string]any) (Patient, error) {
	patient := Patient{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decodeVitalsHook,
			decodeListHook,
			decodeBoolTextHook,
		),
		Result: &patient,
	})
	if err != nil {
		return Patient{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return patient, fmt.Errorf("unable to decode attributes of patient %v: %w", raw["id"], err)
	}
	return patient, nil
}

// UnmarshalJSON decodes a patient leniently, malformed attributes are left empty
func (p *Patient) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unable to decode patient: %w", err)
	}

	patient, _ := DecodePatient(raw)
	*p = patient
	return nil
}

func decodeVitalsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != vitalsType {
		return data, nil
	}
	if from != anyMapType {
		return nil, fmt.Errorf("vitals must be an object, got %s", from.Kind())
	}
	return vitalsFromMap(data.(map[string]any))
}

// decodeListHook keeps a scalar from being lifted into a one element list
func decodeListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || from.Kind() == reflect.Slice || from.Kind() == reflect.Array {
		return data, nil
	}
	return nil, fmt.Errorf("expected a list, got %s", from.Kind())
}

func decodeBoolTextHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() == reflect.String {
		return strconv.FormatBool(data.(bool)), nil
	}
	return data, nil
}
