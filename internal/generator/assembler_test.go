package generator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/platform/random"
	"github.com/miabis/bundlegen/internal/registry"
	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

func testConfig(donors, biobanks, collections int) *config.Config {
	return &config.Config{
		Donors:                 donors,
		Biobanks:               biobanks,
		Collections:            collections,
		SpecimensMin:           1,
		SpecimensMax:           3,
		ObservationProbability: 1,
	}
}

func assemble(t *testing.T, cfg *config.Config, seed int64) (*fhirmodels.Bundle, *Summary) {
	t.Helper()
	bundle, sum, err := New(cfg, random.New(seed), seed).Assemble()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bundle, sum
}

// extensionRefs pulls reference values out of an extension list.
func extensionRefs(ext []fhirmodels.Extension) []string {
	var out []string
	for _, e := range ext {
		if e.ValueReference != nil {
			out = append(out, e.ValueReference.Reference)
		}
	}
	return out
}

// resourceRefs returns every reference a record carries, in element order.
func resourceRefs(r fhirmodels.Resource) []string {
	var out []string
	switch v := r.(type) {
	case *fhirmodels.Organization:
		if v.PartOf != nil {
			out = append(out, v.PartOf.Reference)
		}
		out = append(out, extensionRefs(v.Extension)...)
	case *fhirmodels.Group:
		if v.ManagingEntity != nil {
			out = append(out, v.ManagingEntity.Reference)
		}
		out = append(out, extensionRefs(v.Extension)...)
	case *fhirmodels.Condition:
		out = append(out, v.Subject.Reference)
	case *fhirmodels.Specimen:
		out = append(out, v.Subject.Reference)
	case *fhirmodels.DiagnosticReport:
		out = append(out, v.Subject.Reference)
		for _, s := range v.Specimen {
			out = append(out, s.Reference)
		}
	case *fhirmodels.Observation:
		out = append(out, v.Subject.Reference)
		if v.Specimen != nil {
			out = append(out, v.Specimen.Reference)
		}
		for _, p := range v.Performer {
			out = append(out, p.Reference)
		}
	}
	return out
}

func TestAssembler_Deterministic(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	b1, _ := assemble(t, testConfig(10, 2, 3), 42)
	if err := Encode(&buf1, b1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b2, _ := assemble(t, testConfig(10, 2, 3), 42)
	if err := Encode(&buf2, b2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatal("identical seed and config must produce byte-identical output")
	}
}

func TestAssembler_DifferentSeedsDiverge(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	b1, _ := assemble(t, testConfig(10, 1, 1), 1)
	b2, _ := assemble(t, testConfig(10, 1, 1), 2)
	Encode(&buf1, b1)
	Encode(&buf2, b2)
	if bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Fatal("different seeds produced identical documents")
	}
}

func TestAssembler_ReferentialIntegrity(t *testing.T) {
	bundle, _ := assemble(t, testConfig(20, 3, 4), 7)

	seen := make(map[string]bool)
	for i, entry := range bundle.Entry {
		for _, ref := range resourceRefs(entry.Resource) {
			if !seen[ref] {
				t.Fatalf("entry %d (%s) holds forward or dangling reference %s",
					i, entry.Resource.Kind(), ref)
			}
		}
		seen[entry.FullURL] = true
	}
}

func TestAssembler_EntryEnvelopes(t *testing.T) {
	bundle, _ := assemble(t, testConfig(2, 1, 1), 42)
	if bundle.Type != "transaction" {
		t.Fatalf("expected transaction bundle, got %s", bundle.Type)
	}
	for i, entry := range bundle.Entry {
		if !strings.HasPrefix(entry.FullURL, "urn:uuid:") {
			t.Fatalf("entry %d fullUrl not urn:uuid: %s", i, entry.FullURL)
		}
		if entry.Request == nil || entry.Request.Method != "POST" {
			t.Fatalf("entry %d missing POST write intent", i)
		}
		if entry.Request.URL != entry.Resource.Kind() {
			t.Fatalf("entry %d request url %s does not match resource type %s",
				i, entry.Request.URL, entry.Resource.Kind())
		}
		if entry.FullURL != FullURL(entry.Resource.Kind(), entry.Resource.LogicalID()) {
			t.Fatalf("entry %d fullUrl does not match its resource", i)
		}
	}
}

func TestAssembler_DonorBranchCardinality(t *testing.T) {
	cfg := testConfig(15, 1, 1)
	cfg.SpecimensMin = 2
	cfg.SpecimensMax = 4
	bundle, sum := assemble(t, cfg, 42)

	if sum.Donors != 15 || sum.Conditions != 15 || sum.DiagnosticReports != 15 {
		t.Fatalf("expected 15 of donors/conditions/reports, got %d/%d/%d",
			sum.Donors, sum.Conditions, sum.DiagnosticReports)
	}

	// Specimen counts per donor must stay inside the configured band.
	perDonor := make(map[string]int)
	for _, entry := range bundle.Entry {
		if s, ok := entry.Resource.(*fhirmodels.Specimen); ok {
			perDonor[s.Subject.Reference]++
		}
	}
	if len(perDonor) != 15 {
		t.Fatalf("expected specimens for 15 donors, got %d", len(perDonor))
	}
	for donor, n := range perDonor {
		if n < 2 || n > 4 {
			t.Fatalf("donor %s has %d specimens outside [2,4]", donor, n)
		}
	}
}

func TestAssembler_ObservationProbabilityZero(t *testing.T) {
	cfg := testConfig(10, 1, 1)
	cfg.ObservationProbability = 0
	_, sum := assemble(t, cfg, 42)
	if sum.Observations != 0 {
		t.Fatalf("expected no observations at probability 0, got %d", sum.Observations)
	}
}

func TestAssembler_ObservationPerSpecimenAtProbabilityOne(t *testing.T) {
	_, sum := assemble(t, testConfig(10, 1, 1), 42)
	if sum.Observations != sum.Specimens {
		t.Fatalf("expected one observation per specimen, got %d observations for %d specimens",
			sum.Observations, sum.Specimens)
	}
}

func TestAssembler_CollectionCoverage(t *testing.T) {
	bundle, _ := assemble(t, testConfig(10, 2, 4), 42)

	// Every collection group must report at least one subject.
	for _, entry := range bundle.Entry {
		g, ok := entry.Resource.(*fhirmodels.Group)
		if !ok || !g.Actual {
			continue
		}
		for _, e := range g.Extension {
			if e.URL == fhirmodels.ExtNumberOfSubjects && *e.ValueInteger < 1 {
				t.Fatalf("collection %s has no subjects", g.ID)
			}
		}
	}

	// Every collection identifier must appear on at least one specimen.
	used := make(map[string]bool)
	for _, entry := range bundle.Entry {
		if s, ok := entry.Resource.(*fhirmodels.Specimen); ok {
			for _, e := range s.Extension {
				if e.ValueIdentifier != nil {
					used[e.ValueIdentifier.Value] = true
				}
			}
		}
	}
	if len(used) != 4 {
		t.Fatalf("expected specimens across 4 collections, got %d", len(used))
	}
}

func TestAssembler_FailFast(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"zero donors", testConfig(0, 1, 1)},
		{"negative donors", testConfig(-1, 1, 1)},
		{"collections exceed donors", testConfig(2, 1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, sum, err := New(tt.cfg, random.New(42), 42).Assemble()
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if !errors.Is(err, config.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			if bundle != nil || sum != nil {
				t.Fatal("no partial output may be produced on failure")
			}
		})
	}
}

func TestAssembler_ScenarioSeed42Donors10(t *testing.T) {
	bundle, sum := assemble(t, testConfig(10, 1, 1), 42)

	// 2 organizations (legal entity, biobank) + network org + collection org.
	if sum.Organizations != 4 {
		t.Fatalf("expected 4 organizations, got %d", sum.Organizations)
	}
	// Network group + collection group.
	if sum.Groups != 2 {
		t.Fatalf("expected 2 groups, got %d", sum.Groups)
	}
	if sum.Donors != 10 || sum.Conditions != 10 || sum.DiagnosticReports != 10 {
		t.Fatalf("expected 10 donors/conditions/reports, got %d/%d/%d",
			sum.Donors, sum.Conditions, sum.DiagnosticReports)
	}
	if sum.Specimens < 10 || sum.Specimens > 30 {
		t.Fatalf("specimen count %d outside [10,30]", sum.Specimens)
	}
	if sum.Observations < 0 || sum.Observations > sum.Specimens {
		t.Fatalf("observation count %d outside [0,%d]", sum.Observations, sum.Specimens)
	}
	if sum.TotalResources != len(bundle.Entry) {
		t.Fatalf("summary total %d does not match %d entries", sum.TotalResources, len(bundle.Entry))
	}
}

func TestAssembler_SameSeedSameDraws(t *testing.T) {
	b1, _ := assemble(t, testConfig(10, 1, 1), 42)
	b2, _ := assemble(t, testConfig(10, 1, 1), 42)

	if len(b1.Entry) != len(b2.Entry) {
		t.Fatalf("entry counts diverged: %d vs %d", len(b1.Entry), len(b2.Entry))
	}
	for i := range b1.Entry {
		r1, r2 := b1.Entry[i].Resource, b2.Entry[i].Resource
		if r1.Kind() != r2.Kind() || r1.LogicalID() != r2.LogicalID() {
			t.Fatalf("entry %d diverged: %s/%s vs %s/%s",
				i, r1.Kind(), r1.LogicalID(), r2.Kind(), r2.LogicalID())
		}
	}

	// Element-for-element coded value comparison on specimens.
	for i := range b1.Entry {
		s1, ok1 := b1.Entry[i].Resource.(*fhirmodels.Specimen)
		s2, ok2 := b2.Entry[i].Resource.(*fhirmodels.Specimen)
		if ok1 != ok2 {
			t.Fatalf("entry %d resource kinds diverged", i)
		}
		if ok1 && s1.Type.Coding[0].Code != s2.Type.Coding[0].Code {
			t.Fatalf("entry %d specimen types diverged: %s vs %s",
				i, s1.Type.Coding[0].Code, s2.Type.Coding[0].Code)
		}
	}
}

func TestAssembler_BuildOrderPhases(t *testing.T) {
	bundle, _ := assemble(t, testConfig(3, 1, 1), 42)

	kinds := make([]string, len(bundle.Entry))
	for i, e := range bundle.Entry {
		kinds[i] = e.Resource.Kind()
	}
	// Legal entity, biobank, network org, then the two groups around the
	// collection org, then donor branches.
	want := []string{"Organization", "Organization", "Organization", "Group", "Organization", "Group"}
	for i, k := range want {
		if kinds[i] != k {
			t.Fatalf("entry %d: expected %s, got %s (order %v)", i, k, kinds[i], kinds[:6])
		}
	}
	if kinds[6] != "Patient" {
		t.Fatalf("expected first donor at entry 6, got %s", kinds[6])
	}
}

func TestAssembler_CodedFieldsClosed(t *testing.T) {
	bundle, _ := assemble(t, testConfig(25, 2, 3), 99)

	for _, entry := range bundle.Entry {
		switch v := entry.Resource.(type) {
		case *fhirmodels.Condition:
			if !registry.Contains(registry.ICD10Diagnoses, v.Code.Coding[0].Code) {
				t.Fatalf("condition code %s not in value set", v.Code.Coding[0].Code)
			}
		case *fhirmodels.Specimen:
			if !registry.Contains(registry.SampleTypes, v.Type.Coding[0].Code) {
				t.Fatalf("specimen type %s not in value set", v.Type.Coding[0].Code)
			}
			site := v.Collection.BodySite.Coding[0].Code
			if !registry.Contains(registry.BodySites, site) {
				t.Fatalf("body site %s not in value set", site)
			}
		case *fhirmodels.Patient:
			if !registry.ContainsString(registry.Genders, v.Gender) {
				t.Fatalf("gender %s not in value set", v.Gender)
			}
		case *fhirmodels.Observation:
			if !registry.Contains(registry.ICD10Diagnoses, v.ValueCodeableConcept.Coding[0].Code) {
				t.Fatalf("observation value %s not in value set", v.ValueCodeableConcept.Coding[0].Code)
			}
		}
	}
}
