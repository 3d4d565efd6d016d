package patients

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	StatusCurrent    = "Current"
	StatusNew        = "New"
	StatusDischarged = "Discharged"

	PriorityHigh = "High"
)

// Patient is a record as returned by the patient service. Records are treated as immutable
// once fetched and replaced wholesale when the collection is re-fetched.
type Patient struct {
	Id                 string             `json:"id"`
	Name               string             `json:"name"`
	Age                int                `json:"age,omitempty"`
	Gender             string             `json:"gender,omitempty"`
	Avatar             string             `json:"avatar,omitempty"`
	Reason             string             `json:"reason,omitempty"`
	Schedule           Schedule           `json:"schedule"`
	Status             string             `json:"status,omitempty"`
	Priority           string             `json:"priority,omitempty"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	AssignedDoctor     string             `json:"assignedDoctor,omitempty"`
	EmergencyContact   EmergencyContact   `json:"emergencyContact"`
	Vitals             Vitals             `json:"vitals,omitempty"`
	MedicalRecords     []MedicalRecord    `json:"medicalRecords,omitempty"`
	Medications        []Medication       `json:"medications,omitempty"`
	LabResults         []LabResult        `json:"labResults,omitempty"`
	AppointmentHistory []AppointmentEntry `json:"appointmentHistory,omitempty"`
}

type Schedule struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}

// String formats the schedule as "date, time", omitting missing parts
func (s Schedule) String() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{s.Date, s.Time} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type EmergencyContact struct {
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type MedicalRecord struct {
	Date      string `json:"date,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
}

type Medication struct {
	Name      string `json:"name,omitempty"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type LabResult struct {
	Date   string `json:"date,omitempty"`
	Test   string `json:"test,omitempty"`
	Result string `json:"result,omitempty"`
}

type AppointmentEntry struct {
	Date   string `json:"date,omitempty"`
	Doctor string `json:"doctor,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Vitals maps a measurement name (e.g. "bloodPressure") to its displayed value.
type Vitals map[string]string

type Vital struct {
	Key   string
	Label string
	Value string
}

// UnmarshalJSON accepts any scalar value for a measurement and keeps its textual form.
// Nested values are rendered with their JSON encoding, null values are dropped.
func (v *Vitals) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unable to decode vitals: %w", err)
	}

	vitals, err := vitalsFromMap(raw)
	if err != nil {
		return err
	}
	*v = vitals
	return nil
}

func vitalsFromMap(raw map[string]any) (Vitals, error) {
	vitals := make(Vitals, len(raw))
	for key, value := range raw {
		switch val := value.(type) {
		case nil:
			continue
		case string:
			vitals[key] = val
		case float64, bool:
			vitals[key] = fmt.Sprint(val)
		default:
			encoded, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			vitals[key] = string(encoded)
		}
	}
	return vitals, nil
}

// Entries returns the vitals ordered by key with human readable labels
func (v Vitals) Entries() []Vital {
	entries := make([]Vital, 0, len(v))
	for key, value := range v {
		entries = append(entries, Vital{
			Key:   key,
			Label: HumanizeKey(key),
			Value: value,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// HumanizeKey splits a camelCase key into capitalized words: "heartRate" -> "Heart Rate"
func HumanizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Ids returns the identifiers of the patients in collection order
func Ids(collection []Patient) []string {
	ids := make([]string, 0, len(collection))
	for _, p := range collection {
		ids = append(ids, p.Id)
	}
	return ids
}

// Find returns the patient with the given id, if present in the collection
func Find(collection []Patient, id string) (*Patient, bool) {
	for i := range collection {
		if collection[i].Id == id {
			return &collection[i], true
		}
	}
	return nil, false
}
