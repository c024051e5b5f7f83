// Package fhirmodels defines the typed FHIR R4 datatypes and resources the
// bundle generator emits. Every record kind is an explicit struct variant with
// a fixed attribute set; the resourceType field selects the variant when
// serialized.
package fhirmodels

// Coding is a reference to a code defined by a terminology system.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// CodeableConcept is a concept, potentially coded in one or more systems.
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// Reference points at another resource, here always by urn:uuid fullUrl.
type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

// Identifier is a business identifier within a naming system.
type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Meta carries the profile claims of a resource.
type Meta struct {
	Profile []string `json:"profile,omitempty"`
}

// Narrative is the human-readable summary of a resource.
type Narrative struct {
	Status string `json:"status"`
	Div    string `json:"div"`
}

// HumanName represents a FHIR HumanName.
type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

// Address represents a FHIR Address.
type Address struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// ContactPoint represents a FHIR ContactPoint.
type ContactPoint struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

// OrganizationContact is a contact party for an organization.
type OrganizationContact struct {
	Name    *HumanName     `json:"name,omitempty"`
	Telecom []ContactPoint `json:"telecom,omitempty"`
}

// Quantity is a measured amount.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Range is a low/high bounded quantity pair.
type Range struct {
	Low  *Quantity `json:"low,omitempty"`
	High *Quantity `json:"high,omitempty"`
}

// Extension is a FHIR extension with exactly one value[x] populated.
type Extension struct {
	URL                  string           `json:"url"`
	ValueString          string           `json:"valueString,omitempty"`
	ValueCode            string           `json:"valueCode,omitempty"`
	ValueInteger         *int             `json:"valueInteger,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	ValueReference       *Reference       `json:"valueReference,omitempty"`
	ValueIdentifier      *Identifier      `json:"valueIdentifier,omitempty"`
}

// Bundle is the transaction-batch container holding all generated records.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type"`
	Entry        []BundleEntry `json:"entry"`
}

// BundleEntry is the envelope around one record: its self-reference URL, the
// record itself, and the intended write operation.
type BundleEntry struct {
	FullURL  string         `json:"fullUrl"`
	Resource Resource       `json:"resource"`
	Request  *BundleRequest `json:"request,omitempty"`
}

// BundleRequest carries the write-intent marker for a transaction entry.
type BundleRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// Resource is implemented by every generated record kind.
type Resource interface {
	// Kind returns the resourceType discriminator.
	Kind() string
	// LogicalID returns the per-run logical id of the record.
	LogicalID() string
}
