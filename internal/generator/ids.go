// Package generator builds the synthetic biobank resource graph: one builder
// per record kind, a hierarchy assembler that threads identifiers through the
// builders in dependency order, and a bundle emitter.
package generator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/miabis/bundlegen/pkg/fhirmodels"
)

// Logical ids are pure functions of record kind and ordinal (1-based), so
// cross-reference wiring never depends on mutable counters.

func JuristicPersonID(country string, ordinal int) string {
	return fmt.Sprintf("juristic-person-%s-%03d", country, ordinal)
}

func BiobankID(country string, ordinal int) string {
	return fmt.Sprintf("biobank-%s-%03d", country, ordinal)
}

func NetworkOrgID() string { return "network-org-001" }

func NetworkID() string { return "network-001" }

func CollectionOrgID(ordinal int) string {
	return fmt.Sprintf("col-org-%03d", ordinal)
}

func CollectionID(ordinal int) string {
	return fmt.Sprintf("collection-%03d", ordinal)
}

func DonorID(ordinal int) string {
	return fmt.Sprintf("donor-%06d", ordinal)
}

func ConditionID(ordinal int) string {
	return fmt.Sprintf("condition-%06d", ordinal)
}

func SpecimenID(donorOrdinal, specimenOrdinal int) string {
	return fmt.Sprintf("sample-%06d-%02d", donorOrdinal, specimenOrdinal)
}

func ReportID(ordinal int) string {
	return fmt.Sprintf("diagreport-%06d", ordinal)
}

func ObservationID(donorOrdinal, specimenOrdinal int) string {
	return fmt.Sprintf("obs-%06d-%02d", donorOrdinal, specimenOrdinal)
}

// FullURL derives the urn:uuid self-reference of a record from its kind and
// logical id. The derivation is a name-based UUID, so references stay stable
// across re-serialization and match the fullUrl of the referenced entry.
func FullURL(resourceType, id string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceDNS, []byte(resourceType+"/"+id)).String()
}

// Ref returns a reference pointing at the entry for kind/id.
func Ref(resourceType, id string) fhirmodels.Reference {
	return fhirmodels.Reference{Reference: FullURL(resourceType, id)}
}

// BundleID derives the container's own id from the seed and the configured
// counts, keeping the whole document byte-identical across reruns.
func BundleID(seed int64, donors, biobanks, collections int) string {
	name := fmt.Sprintf("Bundle/%d/%d/%d/%d", seed, donors, biobanks, collections)
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name)).String()
}
