package generator

import (
	"fmt"
	"strings"

	"github.com/miabis/bundlegen/internal/platform/random"
	"github.com/miabis/bundlegen/internal/registry"
	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

// Each builder is a pure function of its context and the random provider. The
// context carries only identifiers of already-built ancestors; no builder
// touches shared mutable state.

func narrative(resourceType, id, summary string) *fhirmodels.Narrative {
	return &fhirmodels.Narrative{
		Status: "generated",
		Div:    fmt.Sprintf(`<div xmlns="http://www.w3.org/1999/xhtml"><p><b>%s/%s</b>: %s</p></div>`, resourceType, id, summary),
	}
}

func bbmriIdentifier(value string) []fhirmodels.Identifier {
	return []fhirmodels.Identifier{{
		System: fhirmodels.SystemBBMRIERIC,
		Value:  "bbmri-eric:ID:" + value,
	}}
}

func miabisCoding(system, code string) *fhirmodels.CodeableConcept {
	return &fhirmodels.CodeableConcept{Coding: []fhirmodels.Coding{{System: system, Code: code}}}
}

func randomContact(p *random.Provider, email string) fhirmodels.OrganizationContact {
	return fhirmodels.OrganizationContact{
		Name: &fhirmodels.HumanName{
			Family: random.Choice(p, registry.LastNames),
			Given:  []string{random.Choice(p, registry.FirstNames())},
		},
		Telecom: []fhirmodels.ContactPoint{{System: "email", Value: email}},
	}
}

// JuristicPersonContext feeds the top-level legal entity builder.
type JuristicPersonContext struct {
	ID      string
	Name    string
	Country string
	City    string
}

// BuildJuristicPerson builds the unprofiled owner organization of a biobank.
func BuildJuristicPerson(ctx JuristicPersonContext) *fhirmodels.Organization {
	return &fhirmodels.Organization{
		ResourceType: "Organization",
		ID:           ctx.ID,
		Text:         narrative("Organization", ctx.ID, fmt.Sprintf("%s, %s, %s", ctx.Name, ctx.City, ctx.Country)),
		Identifier:   bbmriIdentifier(ctx.ID),
		Name:         ctx.Name,
		Address:      []fhirmodels.Address{{City: ctx.City, Country: ctx.Country}},
	}
}

// BiobankContext feeds the biobank facility builder.
type BiobankContext struct {
	ID             string
	Name           string
	Country        string
	City           string
	BBMRIID        string
	JuristicPerson fhirmodels.Reference
}

// BuildBiobank builds a biobank facility organization with its capability,
// quality standard and description extensions.
func BuildBiobank(p *random.Provider, ctx BiobankContext) *fhirmodels.Organization {
	caps := random.Sample(p, registry.InfrastructuralCapabilities,
		p.IntInRange(1, len(registry.InfrastructuralCapabilities)))

	ext := make([]fhirmodels.Extension, 0, len(caps)+2)
	for _, c := range caps {
		ext = append(ext, fhirmodels.Extension{
			URL:                  fhirmodels.ExtInfrastructuralCapabilities,
			ValueCodeableConcept: miabisCoding(fhirmodels.CSInfrastructuralCapabilities, c),
		})
	}
	ext = append(ext,
		fhirmodels.Extension{
			URL:         fhirmodels.ExtQualityManagementStandard,
			ValueString: random.Choice(p, registry.QualityStandards),
		},
		fhirmodels.Extension{
			URL:         fhirmodels.ExtOrganizationDescription,
			ValueString: fmt.Sprintf("%s is a biobank facility providing high-quality biospecimens and data for research.", ctx.Name),
		},
	)

	jp := ctx.JuristicPerson
	return &fhirmodels.Organization{
		ResourceType: "Organization",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileBiobank}},
		Text: narrative("Organization", ctx.ID,
			fmt.Sprintf("%s, %s, %s. BBMRI-ERIC ID: %s.", ctx.Name, ctx.City, ctx.Country, ctx.BBMRIID)),
		Identifier: bbmriIdentifier(ctx.BBMRIID),
		Name:       ctx.Name,
		Alias:      []string{strings.ToUpper(ctx.ID)},
		Telecom:    []fhirmodels.ContactPoint{{System: "url", Value: "https://example.org/" + ctx.ID}},
		Address:    []fhirmodels.Address{{City: ctx.City, Country: ctx.Country}},
		Contact:    []fhirmodels.OrganizationContact{randomContact(p, fmt.Sprintf("contact@%s.example.org", ctx.ID))},
		PartOf:     &jp,
		Extension:  ext,
	}
}

// NetworkOrgContext feeds the network coordinating organization builder.
type NetworkOrgContext struct {
	ID             string
	Name           string
	Country        string
	JuristicPerson fhirmodels.Reference
}

// BuildNetworkOrg builds the organization that manages the biobank network.
func BuildNetworkOrg(p *random.Provider, ctx NetworkOrgContext) *fhirmodels.Organization {
	jp := ctx.JuristicPerson
	return &fhirmodels.Organization{
		ResourceType: "Organization",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileNetworkOrganization}},
		Text:         narrative("Organization", ctx.ID, ctx.Name),
		Identifier:   bbmriIdentifier(ctx.ID),
		Name:         ctx.Name,
		Telecom:      []fhirmodels.ContactPoint{{System: "url", Value: "https://example.org/network"}},
		Address:      []fhirmodels.Address{{Country: ctx.Country}},
		Contact:      []fhirmodels.OrganizationContact{randomContact(p, "network@example.org")},
		PartOf:       &jp,
		Extension: []fhirmodels.Extension{{
			URL:         fhirmodels.ExtOrganizationDescription,
			ValueString: fmt.Sprintf("%s coordinates biobank collaboration across multiple institutions.", ctx.Name),
		}},
	}
}

// NetworkContext feeds the network membership roster builder.
type NetworkContext struct {
	ID             string
	ManagingEntity fhirmodels.Reference
	Members        []fhirmodels.Reference
}

// BuildNetwork builds the network group whose members are the biobanks.
func BuildNetwork(ctx NetworkContext) *fhirmodels.Group {
	me := ctx.ManagingEntity
	ext := make([]fhirmodels.Extension, 0, len(ctx.Members))
	for _, m := range ctx.Members {
		member := m
		ext = append(ext, fhirmodels.Extension{
			URL:            fhirmodels.ExtGroupMemberEntity,
			ValueReference: &member,
		})
	}
	return &fhirmodels.Group{
		ResourceType:   "Group",
		ID:             ctx.ID,
		Meta:           &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileNetwork}},
		Text:           narrative("Group", ctx.ID, fmt.Sprintf("Network with %d biobanks.", len(ctx.Members))),
		Identifier:     bbmriIdentifier(ctx.ID),
		Active:         true,
		Type:           "person",
		Actual:         false,
		Name:           "BBMRI-ERIC Network",
		ManagingEntity: &me,
		Extension:      ext,
	}
}

// CollectionOrgContext feeds the collection organization builder.
type CollectionOrgContext struct {
	ID      string
	Name    string
	Country string
	Biobank fhirmodels.Reference
}

// BuildCollectionOrg builds the organization owning one sample collection,
// with its design, sample-source, dataset-type and access-condition
// extensions.
func BuildCollectionOrg(p *random.Provider, ctx CollectionOrgContext) *fhirmodels.Organization {
	bb := ctx.Biobank
	alias := strings.ToUpper(ctx.ID)
	if len(alias) > 10 {
		alias = alias[:10]
	}
	return &fhirmodels.Organization{
		ResourceType: "Organization",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileCollectionOrganization}},
		Text:         narrative("Organization", ctx.ID, fmt.Sprintf("%s, part of %s.", ctx.Name, bb.Reference)),
		Identifier:   bbmriIdentifier(ctx.ID),
		Name:         ctx.Name,
		Alias:        []string{alias},
		Active:       true,
		Telecom:      []fhirmodels.ContactPoint{{System: "url", Value: "https://example.org/" + ctx.ID}},
		Address:      []fhirmodels.Address{{Country: ctx.Country}},
		Contact:      []fhirmodels.OrganizationContact{randomContact(p, fmt.Sprintf("pi@%s.example.org", ctx.ID))},
		PartOf:       &bb,
		Extension: []fhirmodels.Extension{
			{
				URL:         fhirmodels.ExtOrganizationDescription,
				ValueString: fmt.Sprintf("Collection of biospecimens: %s.", ctx.Name),
			},
			{
				URL:                  fhirmodels.ExtCollectionDesign,
				ValueCodeableConcept: miabisCoding(fhirmodels.CSCollectionDesign, random.Choice(p, registry.CollectionDesigns)),
			},
			{
				URL:                  fhirmodels.ExtSampleSource,
				ValueCodeableConcept: miabisCoding(fhirmodels.CSSampleSource, "Human"),
			},
			{
				URL:                  fhirmodels.ExtCollectionDatasetType,
				ValueCodeableConcept: miabisCoding(fhirmodels.CSCollectionDatasetType, random.Choice(p, registry.CollectionDatasetTypes)),
			},
			{
				URL:                  fhirmodels.ExtUseAndAccessConditions,
				ValueCodeableConcept: miabisCoding(fhirmodels.CSUseAndAccessConditions, random.Choice(p, registry.UseAccessConditions)),
			},
		},
	}
}

// CollectionContext feeds the collection group builder.
type CollectionContext struct {
	ID             string
	Name           string
	ManagingEntity fhirmodels.Reference
	NumSubjects    int
}

func characteristic(code string, value *fhirmodels.CodeableConcept) fhirmodels.GroupCharacteristic {
	return fhirmodels.GroupCharacteristic{
		Code:                 fhirmodels.CodeableConcept{Coding: []fhirmodels.Coding{{System: fhirmodels.CSCharacteristic, Code: code}}},
		ValueCodeableConcept: value,
	}
}

// BuildCollection builds the collection group with its characteristic rows.
// The group carries no member references: membership of specimens is recorded
// on the specimen side, so every reference in the document points backwards.
func BuildCollection(p *random.Provider, ctx CollectionContext) *fhirmodels.Group {
	me := ctx.ManagingEntity
	numSubjects := ctx.NumSubjects

	chars := []fhirmodels.GroupCharacteristic{
		{
			Code: fhirmodels.CodeableConcept{Coding: []fhirmodels.Coding{{System: fhirmodels.CSCharacteristic, Code: "Age"}}},
			ValueRange: &fhirmodels.Range{
				Low:  &fhirmodels.Quantity{Value: 18, Unit: "years"},
				High: &fhirmodels.Quantity{Value: float64(p.IntInRange(75, 95)), Unit: "years"},
			},
		},
		characteristic("Sex", miabisCoding(fhirmodels.CSAdministrativeGender, "male")),
		characteristic("Sex", miabisCoding(fhirmodels.CSAdministrativeGender, "female")),
	}

	// Short-term storage codes only; LN and below are drawn, "Other" is not.
	temps := random.Sample(p, registry.StorageTemperatures[:5], 2)
	for _, st := range temps {
		chars = append(chars, characteristic("StorageTemperature", &fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSStorageTemperature, Code: st.Code, Display: st.Display}},
		}))
	}
	for _, mt := range random.Sample(p, registry.CollectionSampleTypes, 2) {
		chars = append(chars, characteristic("MaterialType", miabisCoding(fhirmodels.CSCollectionSampleType, mt)))
	}
	chars = append(chars, characteristic("Diagnosis", &fhirmodels.CodeableConcept{
		Coding: []fhirmodels.Coding{{System: fhirmodels.CSICD10, Code: "C00-C97", Display: "Malignant neoplasms"}},
	}))

	return &fhirmodels.Group{
		ResourceType:   "Group",
		ID:             ctx.ID,
		Meta:           &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileCollection}},
		Text:           narrative("Group", ctx.ID, fmt.Sprintf("Collection with %d subjects.", numSubjects)),
		Identifier:     bbmriIdentifier(ctx.ID),
		Active:         true,
		Type:           "person",
		Actual:         true,
		Name:           ctx.Name,
		ManagingEntity: &me,
		Characteristic: chars,
		Extension: []fhirmodels.Extension{
			{URL: fhirmodels.ExtNumberOfSubjects, ValueInteger: &numSubjects},
			{
				URL:                  fhirmodels.ExtInclusionCriteria,
				ValueCodeableConcept: miabisCoding(fhirmodels.CSInclusionCriteria, random.Choice(p, registry.InclusionCriteria)),
			},
		},
	}
}

// DonorContext feeds the sample donor builder.
type DonorContext struct {
	ID string
}

// BuildDonor builds a synthetic sample donor with dataset-type extensions and
// an occasional deceased date.
func BuildDonor(p *random.Provider, ctx DonorContext) *fhirmodels.Patient {
	gender := random.Choice(p, registry.Genders)
	birthDate := p.Date(1935, 2000)

	datasets := random.Sample(p, registry.DatasetTypes, p.IntInRange(1, 3))
	ext := make([]fhirmodels.Extension, 0, len(datasets))
	for _, dt := range datasets {
		ext = append(ext, fhirmodels.Extension{URL: fhirmodels.ExtDatasetType, ValueCode: dt})
	}

	deceased := ""
	if p.Bool(0.1) {
		deceased = p.Date(2020, 2025)
	}

	return &fhirmodels.Patient{
		ResourceType: "Patient",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileSampleDonor}},
		Text: narrative("Patient", ctx.ID,
			fmt.Sprintf("%s, born %s. Datasets: %s.", strings.ToUpper(gender[:1])+gender[1:], birthDate, strings.Join(datasets, ", "))),
		Identifier:       []fhirmodels.Identifier{{System: fhirmodels.SystemDonorIDs, Value: strings.ToUpper(ctx.ID)}},
		Gender:           gender,
		BirthDate:        birthDate,
		DeceasedDateTime: deceased,
		Extension:        ext,
	}
}

// ConditionContext feeds the diagnosis builder.
type ConditionContext struct {
	ID        string
	Donor     fhirmodels.Reference
	Diagnosis registry.Code
}

// BuildCondition builds the ICD-10 coded diagnosis of one donor.
func BuildCondition(ctx ConditionContext) *fhirmodels.Condition {
	return &fhirmodels.Condition{
		ResourceType: "Condition",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileCondition}},
		Text: narrative("Condition", ctx.ID,
			fmt.Sprintf("ICD-10 %s - %s. Subject: %s.", ctx.Diagnosis.Code, ctx.Diagnosis.Display, ctx.Donor.Reference)),
		Code: fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSICD10, Code: ctx.Diagnosis.Code, Display: ctx.Diagnosis.Display}},
		},
		Subject: ctx.Donor,
	}
}

// sampleTypeWeights skews the material draw toward tissue and blood
// derivatives; rarer materials keep weight 1.
var sampleTypeWeights = func() []random.Weighted[registry.Code] {
	weights := map[string]int{
		"TissueFreshFrozen": 5,
		"TissueFixed":       5,
		"WholeBlood":        4,
		"Plasma":            3,
		"Serum":             3,
		"DNA":               2,
	}
	out := make([]random.Weighted[registry.Code], len(registry.SampleTypes))
	for i, c := range registry.SampleTypes {
		w := weights[c.Code]
		if w == 0 {
			w = 1
		}
		out[i] = random.Weighted[registry.Code]{Value: c, Weight: w}
	}
	return out
}()

// SpecimenContext feeds the specimen builder.
type SpecimenContext struct {
	ID                   string
	Donor                fhirmodels.Reference
	BodySite             registry.Code
	CollectionIdentifier string
}

// BuildSpecimen builds one biological sample. The sample type is drawn here;
// its storage temperature follows the fixed type→temperature mapping.
func BuildSpecimen(p *random.Provider, ctx SpecimenContext) *fhirmodels.Specimen {
	sampleType := random.WeightedChoice(p, sampleTypeWeights)
	storageCode, ok := registry.SampleStorage[sampleType.Code]
	if !ok {
		storageCode = "Other"
	}
	storageDisplay := registry.Display(registry.StorageTemperatures, storageCode)
	collected := p.DateTime(2018, 2025)

	return &fhirmodels.Specimen{
		ResourceType: "Specimen",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileSample}},
		Text: narrative("Specimen", ctx.ID,
			fmt.Sprintf("%s, %s, from %s. Storage: %s.", sampleType.Display, ctx.BodySite.Display, ctx.Donor.Reference, storageDisplay)),
		Identifier: []fhirmodels.Identifier{{System: fhirmodels.SystemSampleIDs, Value: strings.ToUpper(ctx.ID)}},
		Type: &fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSDetailedSampleType, Code: sampleType.Code, Display: sampleType.Display}},
		},
		Subject: ctx.Donor,
		Collection: &fhirmodels.SpecimenCollection{
			CollectedDateTime: collected,
			BodySite: &fhirmodels.CodeableConcept{
				Coding: []fhirmodels.Coding{{System: fhirmodels.CSSnomed, Code: ctx.BodySite.Code, Display: ctx.BodySite.Display}},
			},
		},
		Processing: []fhirmodels.SpecimenProcessing{{
			Description: "Processed and stored at " + storageDisplay,
			Extension: []fhirmodels.Extension{{
				URL: fhirmodels.ExtSampleStorageTemperature,
				ValueCodeableConcept: &fhirmodels.CodeableConcept{
					Coding: []fhirmodels.Coding{{System: fhirmodels.CSStorageTemperature, Code: storageCode, Display: storageDisplay}},
				},
			}},
		}},
		Extension: []fhirmodels.Extension{{
			URL: fhirmodels.ExtSampleCollection,
			ValueIdentifier: &fhirmodels.Identifier{
				System: fhirmodels.SystemBBMRIDirectory,
				Value:  ctx.CollectionIdentifier,
			},
		}},
	}
}

// ReportContext feeds the pathology report builder.
type ReportContext struct {
	ID            string
	Donor         fhirmodels.Reference
	Specimens     []fhirmodels.Reference
	Diagnosis     registry.Code
	EffectiveDate string
}

// BuildDiagnosticReport builds the pathology-style report over a donor's
// specimens.
func BuildDiagnosticReport(ctx ReportContext) *fhirmodels.DiagnosticReport {
	conclusion := fmt.Sprintf("Histopathological examination consistent with %s (%s).", ctx.Diagnosis.Display, ctx.Diagnosis.Code)
	summary := conclusion
	if len(summary) > 80 {
		summary = summary[:80]
	}
	return &fhirmodels.DiagnosticReport{
		ResourceType: "DiagnosticReport",
		ID:           ctx.ID,
		Text:         narrative("DiagnosticReport", ctx.ID, fmt.Sprintf("Pathology report. %s.", summary)),
		Status:       "final",
		Code: fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSLoinc, Code: "22637-3", Display: "Pathology report final diagnosis Narrative"}},
		},
		Subject:           ctx.Donor,
		EffectiveDateTime: ctx.EffectiveDate,
		Specimen:          ctx.Specimens,
		Conclusion:        conclusion,
		ConclusionCode: []fhirmodels.CodeableConcept{{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSICD10, Code: ctx.Diagnosis.Code, Display: ctx.Diagnosis.Display}},
		}},
	}
}

// ObservationContext feeds the sample-level diagnosis annotation builder.
type ObservationContext struct {
	ID            string
	Donor         fhirmodels.Reference
	Specimen      fhirmodels.Reference
	Performer     fhirmodels.Reference
	Diagnosis     registry.Code
	EffectiveDate string
}

// BuildObservation builds the diagnosis annotation of one specimen.
func BuildObservation(ctx ObservationContext) *fhirmodels.Observation {
	specimen := ctx.Specimen
	return &fhirmodels.Observation{
		ResourceType: "Observation",
		ID:           ctx.ID,
		Meta:         &fhirmodels.Meta{Profile: []string{fhirmodels.ProfileObservation}},
		Text: narrative("Observation", ctx.ID,
			fmt.Sprintf("Diagnosis for %s: %s.", ctx.Specimen.Reference, ctx.Diagnosis.Code)),
		Status: "final",
		Code: fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSLoinc, Code: "52797-8"}},
		},
		Subject:           ctx.Donor,
		Specimen:          &specimen,
		EffectiveDateTime: ctx.EffectiveDate,
		ValueCodeableConcept: &fhirmodels.CodeableConcept{
			Coding: []fhirmodels.Coding{{System: fhirmodels.CSICD10, Code: ctx.Diagnosis.Code, Display: ctx.Diagnosis.Display}},
		},
		Performer: []fhirmodels.Reference{ctx.Performer},
	}
}
