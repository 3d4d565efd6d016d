package test

import (
	"fmt"

	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/test"
)

var (
	statuses   = []string{patients.StatusCurrent, patients.StatusNew, patients.StatusDischarged, "Transferred"}
	priorities = []string{patients.PriorityHigh, "Medium", "Low"}
	genders    = []string{"Male", "Female"}
)

func RandomPatient() patients.Patient {
	return patients.Patient{
		Id:             fmt.Sprintf("P-%06d", test.Faker.IntBetween(1, 999999)),
		Name:           test.Faker.Person().Name(),
		Age:            test.Faker.IntBetween(1, 99),
		Gender:         test.Faker.RandomStringElement(genders),
		Reason:         test.Faker.Lorem().Sentence(4),
		Status:         test.Faker.RandomStringElement(statuses),
		Priority:       test.Faker.RandomStringElement(priorities),
		Email:          test.Faker.Internet().Email(),
		Phone:          test.Faker.Phone().Number(),
		AssignedDoctor: test.Faker.Person().Name(),
		Schedule: patients.Schedule{
			Date: "2024-03-12",
			Time: "10:30 AM",
		},
		EmergencyContact: patients.EmergencyContact{
			Name:     test.Faker.Person().Name(),
			Relation: "Sibling",
			Phone:    test.Faker.Phone().Number(),
		},
		Vitals: patients.Vitals{
			"bloodPressure": "120/80",
			"heartRate":     fmt.Sprint(test.Faker.IntBetween(55, 110)),
		},
		Medications: []patients.Medication{{
			Name:      test.Faker.Lorem().Word(),
			Dosage:    "10mg",
			Frequency: "Daily",
		}},
	}
}

// RandomPatients returns count patients with distinct ids
func RandomPatients(count int) []patients.Patient {
	list := make([]patients.Patient, 0, count)
	for i := 0; i < count; i++ {
		p := RandomPatient()
		p.Id = fmt.Sprintf("P-%04d", i+1)
		list = append(list, p)
	}
	return list
}

// Fixed returns the reference collection used across the dashboard tests
func Fixed() []patients.Patient {
	return []patients.Patient{
		{Id: "1", Name: "Alice", Status: patients.StatusCurrent},
		{Id: "2", Name: "Bob", Status: patients.StatusNew},
	}
}
