package fhirmodels

// Base is the canonical base URL of the MIABIS on FHIR implementation guide.
const Base = "https://fhir.bbmri-eric.eu"

// Profile URIs for the profiled record kinds. Juristic-person organizations
// and diagnostic reports carry no profile.
const (
	ProfileBiobank                = Base + "/StructureDefinition/miabis-biobank"
	ProfileNetworkOrganization    = Base + "/StructureDefinition/miabis-network-organization"
	ProfileNetwork                = Base + "/StructureDefinition/miabis-network"
	ProfileCollectionOrganization = Base + "/StructureDefinition/miabis-collection-organization"
	ProfileCollection             = Base + "/StructureDefinition/miabis-collection"
	ProfileSampleDonor            = Base + "/StructureDefinition/miabis-sample-donor"
	ProfileCondition              = Base + "/StructureDefinition/miabis-condition"
	ProfileSample                 = Base + "/StructureDefinition/miabis-sample"
	ProfileObservation            = Base + "/StructureDefinition/miabis-observation"
)

// Extension URLs defined by the implementation guide.
const (
	ExtInfrastructuralCapabilities = Base + "/StructureDefinition/miabis-infrastructural-capabilities-extension"
	ExtQualityManagementStandard   = Base + "/StructureDefinition/miabis-quality-management-standard-extension"
	ExtOrganizationDescription     = Base + "/StructureDefinition/miabis-organization-description-extension"
	ExtCollectionDesign            = Base + "/StructureDefinition/miabis-collection-design-extension"
	ExtSampleSource                = Base + "/StructureDefinition/miabis-sample-source-extension"
	ExtCollectionDatasetType       = Base + "/StructureDefinition/miabis-collection-dataset-type-extension"
	ExtUseAndAccessConditions      = Base + "/StructureDefinition/miabis-use-and-access-conditions-extension"
	ExtNumberOfSubjects            = Base + "/StructureDefinition/miabis-number-of-subjects-extension"
	ExtInclusionCriteria           = Base + "/StructureDefinition/miabis-inclusion-criteria-extension"
	ExtDatasetType                 = Base + "/StructureDefinition/miabis-dataset-type-extension"
	ExtSampleStorageTemperature    = Base + "/StructureDefinition/miabis-sample-storage-temperature-extension"
	ExtSampleCollection            = Base + "/StructureDefinition/miabis-sample-collection-extension"
	ExtGroupMemberEntity           = "http://hl7.org/fhir/5.0/StructureDefinition/extension-Group.member.entity"
)

// Code system URIs.
const (
	CSInfrastructuralCapabilities = Base + "/CodeSystem/miabis-infrastructural-capabilities-cs"
	CSCollectionDesign            = Base + "/CodeSystem/miabis-collection-design-cs"
	CSSampleSource                = Base + "/CodeSystem/miabis-sample-source-cs"
	CSCollectionDatasetType       = Base + "/CodeSystem/miabis-collection-dataset-typeCS"
	CSUseAndAccessConditions      = Base + "/CodeSystem/miabis-use-and-access-conditions-cs"
	CSInclusionCriteria           = Base + "/CodeSystem/miabis-inclusion-criteria-cs"
	CSCharacteristic              = Base + "/CodeSystem/miabis-characteristicCS"
	CSStorageTemperature          = Base + "/CodeSystem/miabis-storage-temperature-cs"
	CSDetailedSampleType          = Base + "/CodeSystem/miabis-detailed-samply-type-cs"
	CSCollectionSampleType        = Base + "/CodeSystem/miabis-collection-sample-type-cs"

	CSICD10                = "http://hl7.org/fhir/sid/icd-10"
	CSSnomed               = "http://snomed.info/sct"
	CSLoinc                = "http://loinc.org"
	CSAdministrativeGender = "http://hl7.org/fhir/administrative-gender"

	SystemBBMRIERIC      = "http://www.bbmri-eric.eu/"
	SystemBBMRIDirectory = "https://directory.bbmri-eric.eu/"
	SystemDonorIDs       = "http://example.org/biobank/donor-ids"
	SystemSampleIDs      = "http://example.org/biobank/sample-ids"
)

// Organization models both juristic persons and the profiled biobank, network
// and collection organizations.
type Organization struct {
	ResourceType string                `json:"resourceType"`
	ID           string                `json:"id"`
	Meta         *Meta                 `json:"meta,omitempty"`
	Text         *Narrative            `json:"text,omitempty"`
	Identifier   []Identifier          `json:"identifier,omitempty"`
	Active       bool                  `json:"active,omitempty"`
	Name         string                `json:"name,omitempty"`
	Alias        []string              `json:"alias,omitempty"`
	Telecom      []ContactPoint        `json:"telecom,omitempty"`
	Address      []Address             `json:"address,omitempty"`
	Contact      []OrganizationContact `json:"contact,omitempty"`
	PartOf       *Reference            `json:"partOf,omitempty"`
	Extension    []Extension           `json:"extension,omitempty"`
}

func (o *Organization) Kind() string      { return "Organization" }
func (o *Organization) LogicalID() string { return o.ID }

// GroupCharacteristic is one characteristic row of a collection group.
type GroupCharacteristic struct {
	Code                 CodeableConcept  `json:"code"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	ValueRange           *Range           `json:"valueRange,omitempty"`
	Exclude              bool             `json:"exclude"`
}

// Group models networks and collections.
type Group struct {
	ResourceType   string                `json:"resourceType"`
	ID             string                `json:"id"`
	Meta           *Meta                 `json:"meta,omitempty"`
	Text           *Narrative            `json:"text,omitempty"`
	Identifier     []Identifier          `json:"identifier,omitempty"`
	Active         bool                  `json:"active,omitempty"`
	Type           string                `json:"type"`
	Actual         bool                  `json:"actual"`
	Name           string                `json:"name,omitempty"`
	ManagingEntity *Reference            `json:"managingEntity,omitempty"`
	Characteristic []GroupCharacteristic `json:"characteristic,omitempty"`
	Extension      []Extension           `json:"extension,omitempty"`
}

func (g *Group) Kind() string      { return "Group" }
func (g *Group) LogicalID() string { return g.ID }

// Patient models a sample donor.
type Patient struct {
	ResourceType     string       `json:"resourceType"`
	ID               string       `json:"id"`
	Meta             *Meta        `json:"meta,omitempty"`
	Text             *Narrative   `json:"text,omitempty"`
	Identifier       []Identifier `json:"identifier,omitempty"`
	Gender           string       `json:"gender,omitempty"`
	BirthDate        string       `json:"birthDate,omitempty"`
	DeceasedDateTime string       `json:"deceasedDateTime,omitempty"`
	Extension        []Extension  `json:"extension,omitempty"`
}

func (p *Patient) Kind() string      { return "Patient" }
func (p *Patient) LogicalID() string { return p.ID }

// Condition models an ICD-10 coded diagnosis of a donor.
type Condition struct {
	ResourceType string          `json:"resourceType"`
	ID           string          `json:"id"`
	Meta         *Meta           `json:"meta,omitempty"`
	Text         *Narrative      `json:"text,omitempty"`
	Code         CodeableConcept `json:"code"`
	Subject      Reference       `json:"subject"`
}

func (c *Condition) Kind() string      { return "Condition" }
func (c *Condition) LogicalID() string { return c.ID }

// SpecimenCollection holds when and where a sample was taken.
type SpecimenCollection struct {
	CollectedDateTime string           `json:"collectedDateTime,omitempty"`
	BodySite          *CodeableConcept `json:"bodySite,omitempty"`
}

// SpecimenProcessing describes one processing step of a sample.
type SpecimenProcessing struct {
	Description string      `json:"description,omitempty"`
	Extension   []Extension `json:"extension,omitempty"`
}

// Specimen models a biological sample.
type Specimen struct {
	ResourceType string               `json:"resourceType"`
	ID           string               `json:"id"`
	Meta         *Meta                `json:"meta,omitempty"`
	Text         *Narrative           `json:"text,omitempty"`
	Identifier   []Identifier         `json:"identifier,omitempty"`
	Type         *CodeableConcept     `json:"type,omitempty"`
	Subject      Reference            `json:"subject"`
	Collection   *SpecimenCollection  `json:"collection,omitempty"`
	Processing   []SpecimenProcessing `json:"processing,omitempty"`
	Extension    []Extension          `json:"extension,omitempty"`
}

func (s *Specimen) Kind() string      { return "Specimen" }
func (s *Specimen) LogicalID() string { return s.ID }

// DiagnosticReport models a pathology-style report over a donor's specimens.
type DiagnosticReport struct {
	ResourceType      string            `json:"resourceType"`
	ID                string            `json:"id"`
	Text              *Narrative        `json:"text,omitempty"`
	Status            string            `json:"status"`
	Code              CodeableConcept   `json:"code"`
	Subject           Reference         `json:"subject"`
	EffectiveDateTime string            `json:"effectiveDateTime,omitempty"`
	Specimen          []Reference       `json:"specimen,omitempty"`
	Conclusion        string            `json:"conclusion,omitempty"`
	ConclusionCode    []CodeableConcept `json:"conclusionCode,omitempty"`
}

func (d *DiagnosticReport) Kind() string      { return "DiagnosticReport" }
func (d *DiagnosticReport) LogicalID() string { return d.ID }

// Observation models a sample-level diagnosis annotation.
type Observation struct {
	ResourceType         string           `json:"resourceType"`
	ID                   string           `json:"id"`
	Meta                 *Meta            `json:"meta,omitempty"`
	Text                 *Narrative       `json:"text,omitempty"`
	Status               string           `json:"status"`
	Code                 CodeableConcept  `json:"code"`
	Subject              Reference        `json:"subject"`
	Specimen             *Reference       `json:"specimen,omitempty"`
	EffectiveDateTime    string           `json:"effectiveDateTime,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	Performer            []Reference      `json:"performer,omitempty"`
}

func (o *Observation) Kind() string      { return "Observation" }
func (o *Observation) LogicalID() string { return o.ID }
