package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/miabis/bundlegen/internal/config"
	"github.com/miabis/bundlegen/internal/platform/random"
	"github.com/miabis/bundlegen/internal/registry"
	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

// Summary counts the records of one assembled bundle per resource type.
type Summary struct {
	Organizations     int           `json:"organizations"`
	Groups            int           `json:"groups"`
	Donors            int           `json:"donors"`
	Conditions        int           `json:"conditions"`
	Specimens         int           `json:"specimens"`
	DiagnosticReports int           `json:"diagnosticReports"`
	Observations      int           `json:"observations"`
	TotalResources    int           `json:"totalResources"`
	Seed              int64         `json:"seed"`
	Duration          time.Duration `json:"duration"`
}

// Assembler orchestrates the builders in dependency order, threading
// identifiers from parents to children. It owns the random provider for the
// duration of one run; every builder receives the same instance by reference
// so draw order is deterministic.
type Assembler struct {
	cfg  *config.Config
	p    *random.Provider
	seed int64
}

// New creates an Assembler over a validated-or-not config. The provider must
// have been seeded with seed.
func New(cfg *config.Config, p *random.Provider, seed int64) *Assembler {
	return &Assembler{cfg: cfg, p: p, seed: seed}
}

func makeEntry(r fhirmodels.Resource) fhirmodels.BundleEntry {
	return fhirmodels.BundleEntry{
		FullURL:  FullURL(r.Kind(), r.LogicalID()),
		Resource: r,
		Request:  &fhirmodels.BundleRequest{Method: "POST", URL: r.Kind()},
	}
}

// Assemble builds the full resource graph and returns it as a transaction
// bundle in strict build order: every reference in an entry resolves to the
// fullUrl of an earlier entry. Configuration is validated before any building
// starts; no partial output is ever produced.
func (a *Assembler) Assemble() (*fhirmodels.Bundle, *Summary, error) {
	start := time.Now()

	if err := a.cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var entries []fhirmodels.BundleEntry
	sum := &Summary{Seed: a.seed}

	add := func(r fhirmodels.Resource) {
		entries = append(entries, makeEntry(r))
		switch r.Kind() {
		case "Organization":
			sum.Organizations++
		case "Group":
			sum.Groups++
		case "Patient":
			sum.Donors++
		case "Condition":
			sum.Conditions++
		case "Specimen":
			sum.Specimens++
		case "DiagnosticReport":
			sum.DiagnosticReports++
		case "Observation":
			sum.Observations++
		}
	}

	// Phase 1: legal entities and their biobank facilities.
	base := random.Sample(a.p, registry.Countries, a.cfg.Biobanks)
	countries := make([]string, a.cfg.Biobanks)
	for i := range countries {
		countries[i] = base[i%len(base)]
	}

	juristicIDs := make([]string, a.cfg.Biobanks)
	biobankIDs := make([]string, a.cfg.Biobanks)
	biobankRefs := make([]fhirmodels.Reference, a.cfg.Biobanks)
	for i := 0; i < a.cfg.Biobanks; i++ {
		country := countries[i]
		city := random.Choice(a.p, registry.Cities[country])
		jpID := JuristicPersonID(country, i+1)
		bbID := BiobankID(country, i+1)

		juristicIDs[i] = jpID
		biobankIDs[i] = bbID
		biobankRefs[i] = Ref("Organization", bbID)

		add(BuildJuristicPerson(JuristicPersonContext{
			ID:      jpID,
			Name:    city + " University",
			Country: country,
			City:    city,
		}))
		add(BuildBiobank(a.p, BiobankContext{
			ID:             bbID,
			Name:           fmt.Sprintf("%s %s", city, random.Choice(a.p, registry.BiobankSuffixes)),
			Country:        country,
			City:           city,
			BBMRIID:        fmt.Sprintf("%s_%s", country, strings.ToUpper(bbID)),
			JuristicPerson: Ref("Organization", jpID),
		}))
	}

	// Phase 2: network organization and membership roster.
	add(BuildNetworkOrg(a.p, NetworkOrgContext{
		ID:             NetworkOrgID(),
		Name:           "BBMRI-ERIC Network Organization",
		Country:        countries[0],
		JuristicPerson: Ref("Organization", juristicIDs[0]),
	}))
	add(BuildNetwork(NetworkContext{
		ID:             NetworkID(),
		ManagingEntity: Ref("Organization", NetworkOrgID()),
		Members:        biobankRefs,
	}))

	// Phase 3: collection organizations, then collection groups. Donors are
	// distributed round-robin, so per-collection subject counts are known
	// before any donor is built.
	subjectCounts := make([]int, a.cfg.Collections)
	for d := 0; d < a.cfg.Donors; d++ {
		subjectCounts[d%a.cfg.Collections]++
	}

	collectionIdentifiers := make([]string, a.cfg.Collections)
	for i := 0; i < a.cfg.Collections; i++ {
		bbIdx := i % a.cfg.Biobanks
		colOrgID := CollectionOrgID(i + 1)
		colID := CollectionID(i + 1)
		collectionIdentifiers[i] = fmt.Sprintf("bbmri-eric:ID:%s:collection:%s", biobankIDs[bbIdx], colID)

		add(BuildCollectionOrg(a.p, CollectionOrgContext{
			ID:      colOrgID,
			Name:    registry.CollectionNames[i%len(registry.CollectionNames)],
			Country: countries[bbIdx],
			Biobank: biobankRefs[bbIdx],
		}))
	}
	for i := 0; i < a.cfg.Collections; i++ {
		add(BuildCollection(a.p, CollectionContext{
			ID:             CollectionID(i + 1),
			Name:           fmt.Sprintf("Collection %03d", i+1),
			ManagingEntity: Ref("Organization", CollectionOrgID(i+1)),
			NumSubjects:    subjectCounts[i],
		}))
	}

	// Phase 4: per-donor branches, each strictly ordered donor → diagnosis →
	// specimens → report → observations.
	for d := 0; d < a.cfg.Donors; d++ {
		donorID := DonorID(d + 1)
		donorRef := Ref("Patient", donorID)
		add(BuildDonor(a.p, DonorContext{ID: donorID}))

		diagnosis := random.Choice(a.p, registry.ICD10Diagnoses)
		add(BuildCondition(ConditionContext{
			ID:        ConditionID(d + 1),
			Donor:     donorRef,
			Diagnosis: diagnosis,
		}))

		prefix, _, _ := strings.Cut(diagnosis.Code, ".")
		bodySiteCode, ok := registry.ICD10BodySite[prefix]
		if !ok {
			bodySiteCode = "39607008"
		}
		bodySite := registry.Code{Code: bodySiteCode, Display: registry.Display(registry.BodySites, bodySiteCode)}

		colIdx := d % a.cfg.Collections
		numSpecimens := a.p.IntInRange(a.cfg.SpecimensMin, a.cfg.SpecimensMax)
		specimenRefs := make([]fhirmodels.Reference, 0, numSpecimens)
		for s := 0; s < numSpecimens; s++ {
			specID := SpecimenID(d+1, s+1)
			add(BuildSpecimen(a.p, SpecimenContext{
				ID:                   specID,
				Donor:                donorRef,
				BodySite:             bodySite,
				CollectionIdentifier: collectionIdentifiers[colIdx],
			}))
			specimenRefs = append(specimenRefs, Ref("Specimen", specID))
		}

		effectiveDate := a.p.Date(2018, 2025)
		add(BuildDiagnosticReport(ReportContext{
			ID:            ReportID(d + 1),
			Donor:         donorRef,
			Specimens:     specimenRefs,
			Diagnosis:     diagnosis,
			EffectiveDate: effectiveDate,
		}))

		performer := biobankRefs[d%a.cfg.Biobanks]
		for s, specRef := range specimenRefs {
			if !a.p.Bool(a.cfg.ObservationProbability) {
				continue
			}
			add(BuildObservation(ObservationContext{
				ID:            ObservationID(d+1, s+1),
				Donor:         donorRef,
				Specimen:      specRef,
				Performer:     performer,
				Diagnosis:     diagnosis,
				EffectiveDate: effectiveDate,
			}))
		}
	}

	sum.TotalResources = len(entries)
	sum.Duration = time.Since(start)

	bundle := &fhirmodels.Bundle{
		ResourceType: "Bundle",
		ID:           BundleID(a.seed, a.cfg.Donors, a.cfg.Biobanks, a.cfg.Collections),
		Type:         "transaction",
		Entry:        entries,
	}
	return bundle, sum, nil
}
