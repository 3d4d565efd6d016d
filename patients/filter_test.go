package patients_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medidesk/console/patients"
	patientsTest "github.com/medidesk/console/patients/test"
)

var _ = Describe("Filtering", func() {
	var collection []patients.Patient

	BeforeEach(func() {
		collection = patientsTest.Fixed()
	})

	Describe("Counts", func() {
		It("counts every known category", func() {
			Expect(patients.Counts(collection)).To(Equal([]patients.CategoryCount{
				{Id: patients.CategoryAll, Label: "All Patients", Count: 2},
				{Id: patients.CategoryCurrent, Label: "Current Patients", Count: 1},
				{Id: patients.CategoryNew, Label: "New Patients", Count: 1},
				{Id: patients.CategoryDischarged, Label: "Discharged Patients", Count: 0},
				{Id: patients.CategoryHighPriority, Label: "High Priority", Count: 0},
			}))
		})

		It("returns zero counts for an empty collection", func() {
			for _, c := range patients.Counts(nil) {
				Expect(c.Count).To(BeZero())
			}
		})

		It("matches the size of the filtered list for random collections", func() {
			random := patientsTest.RandomPatients(50)
			for _, c := range patients.Counts(random) {
				Expect(patients.Filter(random, c.Id, "")).To(HaveLen(c.Count))
			}
		})
	})

	Describe("MatchesText", func() {
		It("matches the name case-insensitively", func() {
			Expect(patients.MatchesText(collection[0], "ALI")).To(BeTrue())
			Expect(patients.MatchesText(collection[1], "ali")).To(BeFalse())
		})

		It("matches the id", func() {
			Expect(patients.MatchesText(patients.Patient{Id: "MRN-0042", Name: "Carol"}, "mrn-00")).To(BeTrue())
		})

		It("matches everything with an empty query", func() {
			Expect(patients.MatchesText(patients.Patient{}, "")).To(BeTrue())
		})

		It("folds non ascii case", func() {
			Expect(patients.MatchesText(patients.Patient{Id: "7", Name: "ÉLODIE Durand"}, "élodie")).To(BeTrue())
		})
	})

	Describe("Filter", func() {
		It("returns only alice when searching for ali", func() {
			Expect(patients.Filter(collection, patients.CategoryAll, "ali")).To(Equal([]patients.Patient{collection[0]}))
		})

		It("applies the category predicate", func() {
			Expect(patients.Ids(patients.Filter(collection, patients.CategoryNew, ""))).To(Equal([]string{"2"}))
			Expect(patients.Filter(collection, patients.CategoryDischarged, "")).To(BeEmpty())
		})

		It("uses the priority for the high priority tab", func() {
			collection = append(collection, patients.Patient{Id: "3", Name: "Carl", Status: patients.StatusNew, Priority: patients.PriorityHigh})
			Expect(patients.Ids(patients.Filter(collection, patients.CategoryHighPriority, ""))).To(Equal([]string{"3"}))
		})

		It("returns an empty list for an unknown category", func() {
			Expect(patients.Filter(collection, "archived", "")).To(BeEmpty())
		})

		It("combines search and category", func() {
			Expect(patients.Filter(collection, patients.CategoryCurrent, "bob")).To(BeEmpty())
		})

		It("only returns matching patients for random queries", func() {
			random := patientsTest.RandomPatients(30)
			query := strings.ToLower(random[7].Name[:2])
			for _, p := range patients.Filter(random, patients.CategoryAll, query) {
				Expect(strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.Id), query)).To(BeTrue())
			}
		})

		It("does not modify the collection", func() {
			before := patientsTest.Fixed()
			_ = patients.Filter(collection, patients.CategoryNew, "b")
			Expect(collection).To(Equal(before))
		})
	})
})
